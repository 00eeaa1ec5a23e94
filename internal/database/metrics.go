package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type poolStats interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
	MaxConns() int32
	AcquireCount() int64
	EmptyAcquireCount() int64
}

// PoolCollector exports pgx pool statistics as Prometheus metrics.
type PoolCollector struct {
	stat func() poolStats

	acquired     *prometheus.Desc
	idle         *prometheus.Desc
	total        *prometheus.Desc
	max          *prometheus.Desc
	acquireCount *prometheus.Desc
	emptyAcquire *prometheus.Desc
}

func NewPoolCollector(pool *pgxpool.Pool) *PoolCollector {
	return newPoolCollector(func() poolStats { return pool.Stat() })
}

func newPoolCollector(stat func() poolStats) *PoolCollector {
	return &PoolCollector{
		stat:         stat,
		acquired:     prometheus.NewDesc("tripshare_db_pool_acquired_conns", "Connections currently checked out of the pool.", nil, nil),
		idle:         prometheus.NewDesc("tripshare_db_pool_idle_conns", "Idle connections in the pool.", nil, nil),
		total:        prometheus.NewDesc("tripshare_db_pool_total_conns", "Total connections in the pool.", nil, nil),
		max:          prometheus.NewDesc("tripshare_db_pool_max_conns", "Configured maximum pool size.", nil, nil),
		acquireCount: prometheus.NewDesc("tripshare_db_pool_acquires_total", "Successful connection acquisitions.", nil, nil),
		emptyAcquire: prometheus.NewDesc("tripshare_db_pool_empty_acquires_total", "Acquisitions that had to wait for a connection.", nil, nil),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.acquireCount
	ch <- c.emptyAcquire
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(s.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.acquireCount, prometheus.CounterValue, float64(s.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.emptyAcquire, prometheus.CounterValue, float64(s.EmptyAcquireCount()))
}
