// Package progress implements the leveling mechanic: discrete level
// advancement gated by a per-level cooldown and a fee.
package progress

import "fmt"

// Schedule maps a token's current level to the cooldown, in ticks, that
// must elapse since its last progression before the next level-up.
// Intervals are non-decreasing; levels beyond the last configured entry
// reuse the final interval.
type Schedule struct {
	intervals []uint64
}

// NewSchedule builds a schedule from per-level intervals, starting at
// level 1. It rejects empty and decreasing inputs.
func NewSchedule(intervals ...uint64) (Schedule, error) {
	if len(intervals) == 0 {
		return Schedule{}, fmt.Errorf("schedule needs at least one interval")
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i] < intervals[i-1] {
			return Schedule{}, fmt.Errorf("schedule must be non-decreasing: interval %d (%d) < interval %d (%d)",
				i+1, intervals[i], i, intervals[i-1])
		}
	}
	out := make([]uint64, len(intervals))
	copy(out, intervals)
	return Schedule{intervals: out}, nil
}

// Linear builds a schedule of `levels` entries growing by step from base.
func Linear(base, step uint64, levels int) Schedule {
	intervals := make([]uint64, levels)
	for i := range intervals {
		intervals[i] = base + step*uint64(i)
	}
	return Schedule{intervals: intervals}
}

// DefaultSchedule returns the stock tiering: 400 ticks to leave level 1,
// growing by 100 per level through level 10, flat afterwards.
func DefaultSchedule() Schedule {
	return Linear(400, 100, 10)
}

// Cooldown returns the interval required at the given level. Levels
// below 1 are treated as level 1.
func (s Schedule) Cooldown(level uint32) uint64 {
	if len(s.intervals) == 0 {
		return 0
	}
	idx := int(level) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.intervals) {
		idx = len(s.intervals) - 1
	}
	return s.intervals[idx]
}

// Levels returns the number of explicitly configured tiers.
func (s Schedule) Levels() int {
	return len(s.intervals)
}
