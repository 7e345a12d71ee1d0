// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package pool

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// TopKSum returns the sum of the k largest values. k is clamped to
// [0, len(values)]. The input is not modified.
func TopKSum(values []float64, k int) float64 {
	if k <= 0 || len(values) == 0 {
		return 0
	}
	if k > len(values) {
		k = len(values)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return floats.Sum(sorted[len(sorted)-k:])
}

// ColumnHeadrooms returns TopKSum of every event column.
func (p *CandidatePool) ColumnHeadrooms(k int) []float64 {
	out := make([]float64, p.V())
	col := make([]float64, p.N())
	for v := range out {
		out[v] = TopKSum(colInto(col, p, v), k)
	}
	return out
}

// ValueModelHeadroom returns TopKSum of the value-model scores.
func (p *CandidatePool) ValueModelHeadroom(k int) float64 {
	return TopKSum(p.ValueModel, k)
}

func colInto(dst []float64, p *CandidatePool, v int) []float64 {
	for i := range dst {
		dst[i] = p.Events.At(i, v)
	}
	return dst
}
