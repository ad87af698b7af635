package pacing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelta_BehindPace(t *testing.T) {
	assert.InDelta(t, 3.8888, ExpectedRate(35), 0.0001)
	assert.InDelta(t, -2.5, Delta(35, 4.5, 15), 1e-9)
}

func TestDelta_Monotonic(t *testing.T) {
	for count := 0; count < 40; count++ {
		assert.LessOrEqual(t, Delta(35, 4.5, count), Delta(35, 4.5, count+1))
	}
	for e := 0.0; e < 9; e += 0.5 {
		assert.GreaterOrEqual(t, Delta(35, e, 10), Delta(35, e+0.5, 10))
	}
}

func TestEvaluate(t *testing.T) {
	p := Evaluate(35, 4.5, 15, nil)
	assert.False(t, p.Simulated)
	assert.False(t, p.Ahead)
	assert.InDelta(t, 17.5, p.Expected, 1e-9)
	assert.InDelta(t, -2.5, p.Delta, 1e-9)

	assert.True(t, Evaluate(35, 0, 0, nil).Ahead)
}

func TestEvaluate_WhatIf(t *testing.T) {
	p := Evaluate(35, 4.5, 15, &WhatIf{Count: 20})
	assert.True(t, p.Simulated)
	assert.Equal(t, 20, p.Count)
	assert.Equal(t, 4.5, p.Elapsed)
	assert.InDelta(t, 2.5, p.Delta, 1e-9)
	assert.True(t, p.Ahead)

	elapsed := 9.0
	p = Evaluate(35, 4.5, 15, &WhatIf{Count: 30, ElapsedShifts: &elapsed})
	assert.Equal(t, 9.0, p.Elapsed)
	assert.InDelta(t, -5, p.Delta, 1e-9)
	assert.Equal(t, Delta(35, 9, 30), p.Delta)
}
