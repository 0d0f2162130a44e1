package stability

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected Category
	}{
		{25, CategoryNormal},
		{10.0, CategoryNormal},
		{9.999, CategoryMarginal},
		{5.0, CategoryMarginal},
		{4.999, CategoryDryEye},
		{0, CategoryDryEye},
		{-3, CategoryDryEye},
		{math.NaN(), CategoryDryEye},
	}

	for _, test := range tests {
		result := Classify(test.seconds)
		assert.Equal(t, test.expected, result.Category, "seconds %v", test.seconds)
		assert.Equal(t, test.expected.Description(), result.Description)
		assert.GreaterOrEqual(t, result.Seconds, 0.0)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	assert.Equal(t, Classify(7.342), Classify(7.342))
	assert.Equal(t, 7.342, Classify(7.342).Seconds)
	assert.NotEmpty(t, CategoryNormal.Description())
	assert.NotEqual(t, CategoryMarginal.Description(), CategoryDryEye.Description())
}
