package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Perfect(t *testing.T) {
	m := Score([]int{0, 1, 2, 1}, []int{0, 1, 2, 1})
	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 1.0, m.Precision)
	assert.Equal(t, 1.0, m.Recall)
	assert.Equal(t, 1.0, m.F1Score)
}

func TestScore_Weighted(t *testing.T) {
	// label 0: support 2, predicted 3 times, tp 2 -> p=2/3 r=1 f1=0.8
	// label 1: support 2, predicted 1 time, tp 1 -> p=1 r=0.5 f1=2/3
	m := Score([]int{0, 0, 1, 1}, []int{0, 0, 0, 1})
	assert.InDelta(t, 0.75, m.Accuracy, 1e-9)
	assert.InDelta(t, 0.5*(2.0/3.0)+0.5*1, m.Precision, 1e-9)
	assert.InDelta(t, 0.75, m.Recall, 1e-9)
	assert.InDelta(t, 0.5*0.8+0.5*(2.0/3.0), m.F1Score, 1e-9)
}

func TestScore_ZeroDivisionCountsAsZero(t *testing.T) {
	// label 1 is never predicted, label 5 never occurs in truth
	m := Score([]int{1}, []int{5})
	assert.Equal(t, 0.0, m.Accuracy)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1Score)
}

func TestScore_Empty(t *testing.T) {
	assert.Zero(t, Score(nil, nil))
}
