package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2026-10-19 is a Monday.
func at(day, hour, min int) time.Time {
	return time.Date(2026, 10, day, hour, min, 0, 0, Location)
}

func TestStartOfWeek(t *testing.T) {
	monday := at(19, 6, 30)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"monday at start", at(19, 6, 30), monday},
		{"monday afternoon", at(19, 15, 0), monday},
		{"wednesday", at(21, 10, 0), monday},
		{"sunday night", at(25, 23, 59), monday},
		{"monday before start", at(26, 6, 29), monday},
		{"next monday", at(26, 6, 30), at(26, 6, 30)},
		{"monday before start belongs to previous week", at(19, 5, 0), at(12, 6, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(StartOfWeek(tt.now)), "got %v", StartOfWeek(tt.now))
		})
	}
}

func TestStartOfWeek_ConvertsFromUTC(t *testing.T) {
	// 05:45 UTC on Monday is 06:45 plant time.
	now := time.Date(2026, 10, 19, 5, 45, 0, 0, time.UTC)
	assert.True(t, at(19, 6, 30).Equal(StartOfWeek(now)))
}

func TestCurrentShiftInfo(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		label   string
		elapsed float64
	}{
		{"monday morning", at(19, 8, 0), LabelMorning, 0.5},
		{"monday evening", at(19, 15, 0), LabelEvening, 1.5},
		{"monday evening after midnight", at(20, 0, 5), LabelEvening, 1.5},
		{"tuesday before start", at(20, 3, 0), LabelOff, 2},
		{"wednesday morning", at(21, 6, 30), LabelMorning, 4.5},
		{"thursday evening", at(22, 20, 0), LabelEvening, 7.5},
		{"friday before start", at(23, 5, 0), LabelOff, 8},
		{"friday morning", at(23, 15, 0), LabelFridayMorning, 8.5},
		{"friday after shift", at(23, 16, 0), LabelOff, 9},
		{"saturday", at(24, 12, 0), LabelOff, 9},
		{"sunday", at(25, 12, 0), LabelOff, 9},
		{"monday before week start", at(26, 5, 0), LabelOff, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := CurrentShiftInfo(tt.now)
			assert.Equal(t, tt.label, info.Label)
			assert.Equal(t, tt.elapsed, info.Elapsed)
		})
	}
}

func TestCurrentShiftInfo_Boundaries(t *testing.T) {
	assert.Equal(t, LabelEvening, CurrentShiftInfo(at(19, 14, 50)).Label)
	assert.Equal(t, 1.5, CurrentShiftInfo(at(19, 14, 50)).Elapsed)

	last := CurrentShiftInfo(at(20, 0, 9))
	assert.Equal(t, LabelEvening, last.Label, "00:09 still belongs to the evening shift")
	assert.Equal(t, 1.5, last.Elapsed)

	after := CurrentShiftInfo(at(20, 0, 9).Add(time.Second))
	assert.Equal(t, LabelOff, after.Label)
	assert.Equal(t, 2.0, after.Elapsed)

	assert.Equal(t, LabelMorning, CurrentShiftInfo(at(19, 14, 49)).Label)
}

func TestCurrentShiftInfo_NeverExceedsWeek(t *testing.T) {
	for h := 0; h < 7*24; h++ {
		now := at(19, 6, 30).Add(time.Duration(h) * time.Hour)
		info := CurrentShiftInfo(now)
		assert.GreaterOrEqual(t, info.Elapsed, 0.0)
		assert.LessOrEqual(t, info.Elapsed, TotalShifts)
	}
}
