package redis

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/stakeview/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
)

// PoolParam is the optional param for redis connection
type PoolParam struct {
	PoolMultiplier float64
	Retry          bool
}

// Connect dials uri and returns a pool once one connection answers PING
func Connect(uri, password string, param ...PoolParam) (*redis.Pool, error) {
	maxIdle := 16
	maxActive := 64
	retry := false
	if len(param) > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * param[0].PoolMultiplier / 4)
		maxActive = int(cpu * param[0].PoolMultiplier)
		retry = param[0].Retry
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if password != "" {
		opts = append(opts, redis.DialPassword(password))
	}
	p := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	retryCount := 0
	if retry {
		retryCount = 3
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var dialErr error
	for i := 0; i <= retryCount; i++ {
		if i > 0 {
			time.Sleep(time.Second + time.Duration(r.Float32()*1000)*time.Millisecond)
		}
		if dialErr = ping(p); dialErr == nil {
			break
		}
		log.Log().WithFields(log.Fields{
			"redisURI": uri,
			"err":      dialErr,
			"retry":    i,
		}).Error("fail to dial Redis")
	}
	if dialErr != nil {
		return nil, dialErr
	}

	log.Log().WithField("redisURI", uri).Info("redis connected")
	return p, nil
}

func ping(p *redis.Pool) error {
	c := p.Get()
	defer c.Close()
	_, err := c.Do("PING")
	return err
}
