// Package pacing compares production against the weekly target.
package pacing

import "shopfloor/internal/shift"

// ExpectedRate is the number of units per shift needed to hit target.
func ExpectedRate(target int) float64 {
	return float64(target) / shift.TotalShifts
}

// Delta is positive when ahead of pace, negative when behind.
func Delta(target int, elapsedShifts float64, count int) float64 {
	return float64(count) - elapsedShifts*ExpectedRate(target)
}

// WhatIf replaces the real count and clock with hypothetical values.
type WhatIf struct {
	Count         int      `json:"count"`
	ElapsedShifts *float64 `json:"elapsed_shifts,omitempty"`
}

type Pace struct {
	Target       int     `json:"target"`
	Count        int     `json:"count"`
	Elapsed      float64 `json:"elapsed_shifts"`
	ExpectedRate float64 `json:"expected_rate"`
	Expected     float64 `json:"expected"`
	Delta        float64 `json:"delta"`
	Ahead        bool    `json:"ahead"`
	Simulated    bool    `json:"simulated"`
}

// Evaluate computes the pace from the realized count, or from what-if
// values when given. Without a hypothetical elapsed value the real shift
// clock is kept.
func Evaluate(target int, elapsedShifts float64, count int, whatIf *WhatIf) Pace {
	p := Pace{Target: target, Count: count, Elapsed: elapsedShifts}

	if whatIf != nil {
		p.Simulated = true
		p.Count = whatIf.Count
		if whatIf.ElapsedShifts != nil {
			p.Elapsed = *whatIf.ElapsedShifts
		}
	}

	p.ExpectedRate = ExpectedRate(target)
	p.Expected = p.Elapsed * p.ExpectedRate
	p.Delta = Delta(target, p.Elapsed, p.Count)
	p.Ahead = p.Delta >= 0

	return p
}
