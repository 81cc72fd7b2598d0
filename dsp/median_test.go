package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedianFilterTimeAxisRemovesImpulse(t *testing.T) {
	m := [][]float64{{1}, {9}, {1}, {1}}
	out := MedianFilter(m, AxisTime, 3)
	assert.Equal(t, [][]float64{{1}, {1}, {1}, {1}}, out)
}

func TestMedianFilterFreqAxisRemovesSpike(t *testing.T) {
	m := [][]float64{{1, 9, 1, 1}}
	out := MedianFilter(m, AxisFreq, 3)
	assert.Equal(t, [][]float64{{1, 1, 1, 1}}, out)
}

func TestMedianFilterPassesConstantRegions(t *testing.T) {
	m := [][]float64{{4, 4}, {4, 4}, {4, 4}}
	out := MedianFilter(m, AxisTime, 17)
	assert.Equal(t, m, out)
}

func TestMedianFilterDoesNotMutateInput(t *testing.T) {
	m := [][]float64{{1}, {9}, {1}}
	MedianFilter(m, AxisTime, 3)
	assert.Equal(t, [][]float64{{1}, {9}, {1}}, m)
}

func TestMedianFilterKernelLargerThanInput(t *testing.T) {
	m := [][]float64{{1}, {2}, {3}}
	out := MedianFilter(m, AxisTime, 17)
	// every window is the whole (truncated) column
	assert.Equal(t, [][]float64{{2}, {2}, {2}}, out)
}
