package category

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Bands(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Label
	}{
		{"zero", 0, Good},
		{"upper good boundary", 50, Good},
		{"just above good", 51, Satisfactory},
		{"upper satisfactory boundary", 100, Satisfactory},
		{"just above satisfactory", 101, Moderate},
		{"upper moderate boundary", 200, Moderate},
		{"just above moderate", 201, Poor},
		{"upper poor boundary", 300, Poor},
		{"just above poor", 301, VeryPoor},
		{"upper very poor boundary", 400, VeryPoor},
		{"just above very poor", 401, Severe},
		{"extreme", 999, Severe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.value)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_BoundariesAreInclusiveOnLowerBand(t *testing.T) {
	for _, threshold := range []float64{50, 100, 200, 300, 400} {
		at, _ := Classify(threshold)
		below, _ := Classify(threshold - 0.001)
		assert.Equal(t, below, at, "threshold %v must stay in the lower band", threshold)

		above, _ := Classify(threshold + 1)
		assert.NotEqual(t, at, above, "threshold+1 must move to the next band")
	}
}

func TestClassify_MissingValueHasNoBand(t *testing.T) {
	label, ok := Classify(math.NaN())
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestColor_KnownForEveryBand(t *testing.T) {
	for _, l := range Labels() {
		assert.NotEmpty(t, Color(l))
	}
}
