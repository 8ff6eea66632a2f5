/*
Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/x-xyz/stakeview/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	// withPodName means send metrics with pod name or not
	// default: true
	withPodName bool
}

// WithoutPodName means the metrics sent by the Service will not contain pod name
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	ddTags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"env:" + firstNonEmpty(viper.GetString("env_name"), env.EnvName()),
		"app:" + firstNonEmpty(viper.GetString("app_name"), env.AppName()),
	}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+env.PodName())
	}

	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{
			ddTags: ddTags,
		},
	}
}

// Metrics prefixes every key with the package name and guards against panics of the vendor client.
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

// bumpSumPanic handles panics for all metrics vendor.
func (mt *Metrics) bumpSumPanic(key, tag string) {
	mt.datadog.BumpSum(key, 1, 1, "tag", tag)
}

func (mt *Metrics) recoverAs(kind, key string, tags []string) {
	if err := recover(); err != nil {
		mt.bumpSumPanic(kind+".panic", mt.pkgName+`.`+key+"#"+strings.Join(tags, "#"))
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverAs("bumpavg", key, tags)
	mt.datadog.BumpAvg(mt.pkgName+`.`+key, val, ddRate, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverAs("bumpsum", key, tags)
	mt.datadog.BumpSum(mt.pkgName+`.`+key, val, ddRate, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverAs("bumphistogram", key, tags)
	mt.datadog.BumpHistogram(mt.pkgName+`.`+key, val, ddRate, tags...)
}

// BumpTime starts a timer and returns a value on which End() records the
// elapsed time:
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		ddEnd: mt.datadog.BumpTime(mt.pkgName+`.`+key, ddRate, tags...),
		panicHandler: func() {
			mt.bumpSumPanic("bumptime.panic", mt.pkgName+`.`+key+"#"+strings.Join(tags, "#"))
		},
	}
}

type timeTracker struct {
	ddEnd        Ender
	panicHandler func()
}

func (t *timeTracker) End() {
	defer func() {
		if err := recover(); err != nil {
			t.panicHandler()
		}
	}()
	t.ddEnd.End()
}

// NewNop returns a Service dropping every metric, used by tests
func NewNop() Service {
	return nop{}
}

type nop struct{}

func (nop) BumpAvg(string, float64, ...string)       {}
func (nop) BumpSum(string, float64, ...string)       {}
func (nop) BumpHistogram(string, float64, ...string) {}
func (nop) BumpTime(string, ...string) Ender         { return nop{} }
func (nop) End()                                     {}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
