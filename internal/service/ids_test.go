package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDSequence_Next(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name  string
		floor int64
		ticks []time.Time
		want  []int64
	}{
		{
			name:  "clock advances",
			ticks: []time.Time{base, base.Add(5 * time.Millisecond)},
			want:  []int64{1_700_000_000_000, 1_700_000_000_005},
		},
		{
			name:  "same millisecond",
			ticks: []time.Time{base, base, base.Add(500 * time.Microsecond)},
			want:  []int64{1_700_000_000_000, 1_700_000_000_001, 1_700_000_000_002},
		},
		{
			name:  "clock goes backwards",
			ticks: []time.Time{base, base.Add(-time.Second)},
			want:  []int64{1_700_000_000_000, 1_700_000_000_001},
		},
		{
			name:  "floor above clock",
			floor: 1_800_000_000_000,
			ticks: []time.Time{base},
			want:  []int64{1_800_000_000_001},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := 0
			seq := newIDSequence(func() time.Time {
				now := tt.ticks[i]
				i++
				return now
			}, tt.floor)

			got := make([]int64, 0, len(tt.want))
			for range tt.want {
				got = append(got, seq.next())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIDSequence_DefaultClock(t *testing.T) {
	seq := newIDSequence(nil, 0)
	before := time.Now().UnixMilli()
	id := seq.next()
	assert.GreaterOrEqual(t, id, before)
}
