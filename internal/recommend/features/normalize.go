// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package features

import (
	"errors"
	"fmt"
	"math"
)

// StdDevFloor replaces a zero standard deviation on constant columns.
// Combined with the mean subtraction this maps such columns to uniform
// zero instead of dividing by zero.
const StdDevFloor = 1e-9

// ErrNoVectors indicates Fit was called on an empty population.
var ErrNoVectors = errors.New("cannot fit normalization params on zero vectors")

// InputError reports a malformed feature vector, typically a
// dimensionality mismatch against fitted normalization params.
type InputError struct {
	Want int
	Got  int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("feature vector has %d columns, params expect %d", e.Got, e.Want)
}

// Params holds the per-column standardization transform fitted on one
// population. Fit once per population per run and reuse the same params
// for every vector evaluated in that run.
type Params struct {
	Mean   []float64 `json:"mean"`
	StdDev []float64 `json:"std_dev"`
}

// Dim returns the column count the params were fitted on.
func (p *Params) Dim() int {
	return len(p.Mean)
}

// Fit computes column-wise mean and population standard deviation over
// the full set of vectors. All vectors must share the same width.
func Fit(vectors [][]float64) (Params, error) {
	if len(vectors) == 0 {
		return Params{}, ErrNoVectors
	}

	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return Params{}, &InputError{Want: dim, Got: len(v)}
		}
	}

	n := float64(len(vectors))
	mean := make([]float64, dim)
	for _, v := range vectors {
		for j, x := range v {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	stddev := make([]float64, dim)
	for _, v := range vectors {
		for j, x := range v {
			d := x - mean[j]
			stddev[j] += d * d
		}
	}
	for j := range stddev {
		stddev[j] = math.Sqrt(stddev[j] / n)
		if stddev[j] < StdDevFloor {
			stddev[j] = StdDevFloor
		}
	}

	return Params{Mean: mean, StdDev: stddev}, nil
}

// Transform standardizes a vector with previously fitted params:
// subtract the column mean, divide by the column standard deviation.
func Transform(v []float64, p Params) ([]float64, error) {
	if len(v) != p.Dim() {
		return nil, &InputError{Want: p.Dim(), Got: len(v)}
	}

	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - p.Mean[j]) / p.StdDev[j]
	}
	return out, nil
}

// TransformAll standardizes a batch of vectors with shared params.
func TransformAll(vectors [][]float64, p Params) ([][]float64, error) {
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		t, err := Transform(v, p)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
