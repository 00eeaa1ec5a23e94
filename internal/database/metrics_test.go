package database

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakePoolStats struct{}

func (fakePoolStats) AcquiredConns() int32     { return 3 }
func (fakePoolStats) IdleConns() int32         { return 2 }
func (fakePoolStats) TotalConns() int32        { return 5 }
func (fakePoolStats) MaxConns() int32          { return 25 }
func (fakePoolStats) AcquireCount() int64      { return 100 }
func (fakePoolStats) EmptyAcquireCount() int64 { return 7 }

func TestPoolCollector_ExportsStats(t *testing.T) {
	c := newPoolCollector(func() poolStats { return fakePoolStats{} })

	if n := testutil.CollectAndCount(c); n != 6 {
		t.Fatalf("expected 6 metrics, got %d", n)
	}

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	want := map[string]float64{
		"tripshare_db_pool_acquired_conns":       3,
		"tripshare_db_pool_idle_conns":           2,
		"tripshare_db_pool_total_conns":          5,
		"tripshare_db_pool_max_conns":            25,
		"tripshare_db_pool_acquires_total":       100,
		"tripshare_db_pool_empty_acquires_total": 7,
	}
	for _, mf := range families {
		expected, ok := want[mf.GetName()]
		if !ok {
			t.Errorf("unexpected metric %s", mf.GetName())
			continue
		}
		m := mf.GetMetric()[0]
		var got float64
		if m.GetGauge() != nil {
			got = m.GetGauge().GetValue()
		} else {
			got = m.GetCounter().GetValue()
		}
		if got != expected {
			t.Errorf("%s = %v, want %v", mf.GetName(), got, expected)
		}
		delete(want, mf.GetName())
	}
	if len(want) != 0 {
		t.Errorf("missing metrics: %v", want)
	}
}
