package main

import (
	"errors"
	"io"

	hlru "github.com/hashicorp/golang-lru"
	"github.com/mcheviron/lru"
	"github.com/mcheviron/lru/internal/trace"
	"github.com/sirupsen/logrus"
)

// report summarizes a replayed trace.
type report struct {
	Events        int
	Rejected      int
	Disagreements int
	Stats         lru.Stats[uint64]
}

// simulator replays trace events into a cache whose values are the entry
// weights. When oracle is set, the same events are replayed into it and every
// lookup whose outcome differs is counted.
type simulator struct {
	cache         *lru.Cache[string, uint64, uint64]
	oracle        *hlru.Cache
	defaultWeight uint64
	log           *logrus.Entry
}

func (s *simulator) replay(r *trace.Reader) (report, error) {
	var rep report
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rep, err
		}
		rep.Events++

		if err := s.apply(ev, &rep); err != nil {
			return rep, err
		}
	}
	rep.Stats = s.cache.Stats()
	return rep, nil
}

func (s *simulator) apply(ev trace.Event, rep *report) error {
	switch ev.Op {
	case trace.OpAdd:
		weight := s.defaultWeight
		if ev.HasWeight {
			weight = ev.Weight
		}
		if err := s.cache.AddWeight(ev.Key, weight, weight); err != nil {
			if !errors.Is(err, lru.ErrItemTooLarge) {
				return err
			}
			rep.Rejected++
			s.log.WithFields(logrus.Fields{
				"line": ev.Line,
				"key":  ev.Key,
			}).Debug(err)
			return nil
		}
		if s.oracle != nil {
			s.oracle.Add(ev.Key, weight)
		}
	case trace.OpGet:
		_, ok := s.cache.Get(ev.Key)
		if s.diverges(ev, ok) {
			rep.Disagreements++
		}
	case trace.OpTouch:
		if s.diverges(ev, s.cache.Touch(ev.Key)) {
			rep.Disagreements++
		}
	case trace.OpRemove:
		s.cache.Remove(ev.Key)
		if s.oracle != nil {
			s.oracle.Remove(ev.Key)
		}
	case trace.OpReset:
		s.cache.Reset()
		if s.oracle != nil {
			s.oracle.Purge()
		}
	}
	return nil
}

// diverges looks ev.Key up in the oracle, which also refreshes its recency,
// and reports whether the oracle disagrees with hit.
func (s *simulator) diverges(ev trace.Event, hit bool) bool {
	if s.oracle == nil {
		return false
	}
	_, ok := s.oracle.Get(ev.Key)
	if ok == hit {
		return false
	}
	s.log.WithFields(logrus.Fields{
		"line":   ev.Line,
		"key":    ev.Key,
		"cache":  hit,
		"oracle": ok,
	}).Debug("Lookup outcome differs")
	return true
}
