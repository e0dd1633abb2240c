package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator counting processed messages per module and result
// code, together with the handler latency.
type Metrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var _ lockbox.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lockbox",
			Subsystem: "handler",
			Name:      "calls_total",
			Help:      "Processed messages segmented by call, module and result code.",
		}, []string{"call", "module", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lockbox",
			Subsystem: "handler",
			Name:      "duration_seconds",
			Help:      "Latency distribution of message handlers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"call", "module"}),
	}
	for _, c := range []prometheus.Collector{m.calls, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrHuman, "register collector: %s", err)
		}
	}
	return m, nil
}

// Check implements lockbox.Decorator.
func (m *Metrics) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver implements lockbox.Decorator.
func (m *Metrics) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(call string, tx lockbox.Tx, start time.Time, err error) {
	module := x.ModuleName(lockbox.GetPath(tx))
	code, _ := errors.Info(err, false)
	m.calls.WithLabelValues(call, module, strconv.FormatUint(uint64(code), 10)).Inc()
	m.latency.WithLabelValues(call, module).Observe(time.Since(start).Seconds())
}
