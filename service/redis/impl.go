package redis

import (
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/metrics"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1
)

type redImpl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New redis service over pool
func New(name string, met metrics.Service, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		met:  met,
		pool: pool,
	}
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	timer := r.met.BumpTime("getconn.time", "cluster", r.name)
	conn, err := r.pool.GetContext(context)
	timer.End()
	if err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name)
		return nil, err
	}

	reply, err := redis.DoContext(conn, context, commandName, args...)

	// release the connection asap so the pool does not grow under load
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) tags(funcName, key string) []string {
	return []string{"func", funcName, "cluster", r.name, "prefix", prefixOf(key)}
}

func (r *redImpl) Ping(context ctx.Ctx) error {
	defer r.met.BumpTime("time", "func", "ping", "cluster", r.name).End()
	_, err := r.connDo(context, "PING")
	return err
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err = r.connDo(context, "SET", key, val)
	} else {
		r.met.BumpAvg("ttl", expire.Seconds(), tags...)
		_, err = r.connDo(context, "SET", key, val, "PX", int(expire/time.Millisecond))
	}
	if err != nil {
		context.WithField("err", err).Error("set redis failed")
	}
	return err
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, nil
	}
	defer r.met.BumpTime("time", "func", "del", "cluster", r.name).End()

	args := make([]interface{}, 0, len(ks))
	for _, k := range ks {
		args = append(args, k)
	}
	n, err := redis.Int(r.connDo(context, "DEL", args...))
	if err != nil {
		context.WithField("err", err).Error("del redis failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) Exists(context ctx.Ctx, key string) (bool, error) {
	defer r.met.BumpTime("time", r.tags("exists", key)...).End()
	return redis.Bool(r.connDo(context, "EXISTS", key))
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int, error) {
	defer r.met.BumpTime("time", r.tags("ttl", key)...).End()
	res, err := redis.Int(r.connDo(context, "TTL", key))
	if err != nil {
		context.WithField("err", err).Error("TTL redis failed")
		return 0, err
	}

	if res == retTTLNoKey {
		return res, ErrNotFound
	} else if res == retTTLNoExpire {
		return res, ErrNoTTL
	}
	return res, nil
}

// prefixOf returns the first component of a redis key for metric tags
func prefixOf(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}
