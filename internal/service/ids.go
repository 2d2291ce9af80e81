package service

import "time"

// idSequence hands out millisecond timestamps, bumped past the previous value
// when the clock has not advanced. Callers serialize access.
type idSequence struct {
	now  func() time.Time
	last int64
}

func newIDSequence(now func() time.Time, floor int64) *idSequence {
	if now == nil {
		now = time.Now
	}
	return &idSequence{now: now, last: floor}
}

func (s *idSequence) next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
