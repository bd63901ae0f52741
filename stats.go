package lru

import gometrics "github.com/rcrowley/go-metrics"

// Stats is a point-in-time view of the cache counters.
type Stats[W Weight] struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Weight    W
	Len       int
}

// HitRatio returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats[W]) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type instruments struct {
	hits      gometrics.Counter
	misses    gometrics.Counter
	evictions gometrics.Counter
	weight    gometrics.Gauge
	len       gometrics.Gauge
}

// newInstruments registers the cache instruments under prefix. Instruments
// already present in r are shared, so caches with the same name report together.
func newInstruments(r gometrics.Registry, prefix string) *instruments {
	return &instruments{
		hits:      r.GetOrRegister(prefix+".hits", gometrics.NewCounter).(gometrics.Counter),
		misses:    r.GetOrRegister(prefix+".misses", gometrics.NewCounter).(gometrics.Counter),
		evictions: r.GetOrRegister(prefix+".evictions", gometrics.NewCounter).(gometrics.Counter),
		weight:    r.GetOrRegister(prefix+".weight", gometrics.NewGauge).(gometrics.Gauge),
		len:       r.GetOrRegister(prefix+".len", gometrics.NewGauge).(gometrics.Gauge),
	}
}

func (m *instruments) update(weight uint64, n int) {
	m.weight.Update(int64(weight))
	m.len.Update(int64(n))
}
