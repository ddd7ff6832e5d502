// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTransformStandardizes(t *testing.T) {
	vectors := [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	}

	params, err := Fit(vectors)
	require.NoError(t, err)

	transformed, err := TransformAll(vectors, params)
	require.NoError(t, err)

	// Transforming the fitted population yields mean 0 / variance 1 per column.
	for col := 0; col < 2; col++ {
		var mean, variance float64
		for _, v := range transformed {
			mean += v[col]
		}
		mean /= float64(len(transformed))
		for _, v := range transformed {
			d := v[col] - mean
			variance += d * d
		}
		variance /= float64(len(transformed))

		assert.InDelta(t, 0.0, mean, 1e-9, "column %d mean", col)
		assert.InDelta(t, 1.0, variance, 1e-9, "column %d variance", col)
	}
}

func TestFitFloorsConstantColumns(t *testing.T) {
	vectors := [][]float64{
		{5, 1},
		{5, 2},
		{5, 3},
	}

	params, err := Fit(vectors)
	require.NoError(t, err)
	assert.Equal(t, StdDevFloor, params.StdDev[0])

	// A constant column becomes uniformly zero after transform.
	transformed, err := TransformAll(vectors, params)
	require.NoError(t, err)
	for _, v := range transformed {
		assert.Equal(t, 0.0, v[0])
	}
}

func TestFitEmptyPopulation(t *testing.T) {
	_, err := Fit(nil)
	assert.ErrorIs(t, err, ErrNoVectors)
}

func TestFitRaggedInput(t *testing.T) {
	_, err := Fit([][]float64{{1, 2}, {1}})

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 2, inputErr.Want)
	assert.Equal(t, 1, inputErr.Got)
}

func TestTransformDimensionMismatch(t *testing.T) {
	params, err := Fit([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = Transform([]float64{1, 2, 3}, params)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 2, inputErr.Want)
	assert.Equal(t, 3, inputErr.Got)
}

func TestTransformReusesSameParams(t *testing.T) {
	population := [][]float64{{0, 0}, {10, 100}}
	params, err := Fit(population)
	require.NoError(t, err)

	// A later vector in the same run uses the population params, never a re-fit.
	v, err := Transform([]float64{5, 50}, params)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v[0], 1e-9)
	assert.InDelta(t, 0.0, v[1], 1e-9)
}
