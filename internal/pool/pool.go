// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package pool

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidConfig is returned (wrapped) for any input that violates the pool
// or page-length invariants. Callers should test with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrInvalidPage is returned when a page violates the page postcondition.
var ErrInvalidPage = errors.New("invalid page")

// Page is an ordered selection of item IDs.
type Page []int

// CandidatePool is the set of candidate items and the intent coefficients
// used to combine their scores. Fields must not be mutated after New.
type CandidatePool struct {
	// ItemIDs holds the caller-facing identifier of each row of Events.
	ItemIDs []int

	// Events is the N x V event-score matrix.
	Events *mat.Dense

	// ValueModel is the combined score of each item (length N).
	ValueModel []float64

	// Coefficients are the per-intent combination weights c = w / m (length V).
	Coefficients []float64

	// MaxVals are the per-intent normalizers m (length V).
	MaxVals []float64

	// RawWeights are the un-normalized intent importances w (length V).
	RawWeights []float64
}

// New validates its inputs and builds a pool. The slices and the matrix are
// copied, so later changes by the caller do not leak into the pool.
func New(itemIDs []int, events *mat.Dense, valueModel, coefficients, maxVals, rawWeights []float64) (*CandidatePool, error) {
	if events == nil {
		return nil, fmt.Errorf("%w: event matrix is required", ErrInvalidConfig)
	}
	n, v := events.Dims()

	if len(itemIDs) != n {
		return nil, fmt.Errorf("%w: %d item ids for %d event rows", ErrInvalidConfig, len(itemIDs), n)
	}
	if len(valueModel) != n {
		return nil, fmt.Errorf("%w: %d value-model scores for %d items", ErrInvalidConfig, len(valueModel), n)
	}
	if len(coefficients) != v {
		return nil, fmt.Errorf("%w: %d coefficients for %d intents", ErrInvalidConfig, len(coefficients), v)
	}
	if len(maxVals) != v {
		return nil, fmt.Errorf("%w: %d normalizers for %d intents", ErrInvalidConfig, len(maxVals), v)
	}
	if len(rawWeights) != v {
		return nil, fmt.Errorf("%w: %d raw weights for %d intents", ErrInvalidConfig, len(rawWeights), v)
	}

	seen := make(map[int]struct{}, n)
	for _, id := range itemIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %d", ErrInvalidConfig, id)
		}
		seen[id] = struct{}{}
	}

	for i := 0; i < n; i++ {
		if err := checkNonNegative(fmt.Sprintf("event score row %d", i), events.RawRowView(i)); err != nil {
			return nil, err
		}
	}
	if err := checkNonNegative("value-model score", valueModel); err != nil {
		return nil, err
	}
	if err := checkNonNegative("coefficient", coefficients); err != nil {
		return nil, err
	}
	if err := checkNonNegative("raw weight", rawWeights); err != nil {
		return nil, err
	}
	for j, m := range maxVals {
		// Also rejects NaN.
		if !(m > 0) {
			return nil, fmt.Errorf("%w: normalizer for intent %d must be positive, got %v", ErrInvalidConfig, j, m)
		}
	}

	if floats.Sum(coefficients) == 0 {
		return nil, fmt.Errorf("%w: coefficients sum to zero", ErrInvalidConfig)
	}
	if floats.Sum(rawWeights) == 0 {
		return nil, fmt.Errorf("%w: raw weights sum to zero", ErrInvalidConfig)
	}

	return &CandidatePool{
		ItemIDs:      append([]int(nil), itemIDs...),
		Events:       mat.DenseCopyOf(events),
		ValueModel:   append([]float64(nil), valueModel...),
		Coefficients: append([]float64(nil), coefficients...),
		MaxVals:      append([]float64(nil), maxVals...),
		RawWeights:   append([]float64(nil), rawWeights...),
	}, nil
}

// FromRows is a convenience constructor taking the event matrix as rows.
// Item IDs default to 0..N-1 when itemIDs is nil.
func FromRows(itemIDs []int, rows [][]float64, valueModel, coefficients, maxVals, rawWeights []float64) (*CandidatePool, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: pool needs at least one item", ErrInvalidConfig)
	}
	v := len(rows[0])
	if v == 0 {
		return nil, fmt.Errorf("%w: pool needs at least one intent", ErrInvalidConfig)
	}
	data := make([]float64, 0, len(rows)*v)
	for i, row := range rows {
		if len(row) != v {
			return nil, fmt.Errorf("%w: event row %d has %d intents, want %d", ErrInvalidConfig, i, len(row), v)
		}
		data = append(data, row...)
	}
	if itemIDs == nil {
		itemIDs = SequentialIDs(len(rows))
	}
	return New(itemIDs, mat.NewDense(len(rows), v, data), valueModel, coefficients, maxVals, rawWeights)
}

// SequentialIDs returns the ids 0..n-1.
func SequentialIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// N returns the number of candidate items.
func (p *CandidatePool) N() int {
	n, _ := p.Events.Dims()
	return n
}

// V returns the number of intents.
func (p *CandidatePool) V() int {
	_, v := p.Events.Dims()
	return v
}

// EventColumn returns a copy of the event scores for intent v.
func (p *CandidatePool) EventColumn(v int) []float64 {
	return mat.Col(nil, v, p.Events)
}

// Clone returns private copies of the event matrix and value-model vector.
// Orderers that consume scores destructively work on these.
func (p *CandidatePool) Clone() (*mat.Dense, []float64) {
	return mat.DenseCopyOf(p.Events), append([]float64(nil), p.ValueModel...)
}

// ValidatePageLen checks 0 <= pagelen <= N.
func (p *CandidatePool) ValidatePageLen(pagelen int) error {
	if pagelen < 0 {
		return fmt.Errorf("%w: page length must be non-negative, got %d", ErrInvalidConfig, pagelen)
	}
	if pagelen > p.N() {
		return fmt.Errorf("%w: page length %d exceeds pool size %d", ErrInvalidConfig, pagelen, p.N())
	}
	return nil
}

// ValidatePage checks that page holds exactly pagelen distinct ids drawn
// from the pool. It returns the row index of each page entry.
func (p *CandidatePool) ValidatePage(page Page, pagelen int) ([]int, error) {
	if len(page) != pagelen {
		return nil, fmt.Errorf("%w: page has %d items, want %d", ErrInvalidPage, len(page), pagelen)
	}
	rowOf := make(map[int]int, len(p.ItemIDs))
	for i, id := range p.ItemIDs {
		rowOf[id] = i
	}
	rows := make([]int, len(page))
	seen := make(map[int]struct{}, len(page))
	for k, id := range page {
		row, ok := rowOf[id]
		if !ok {
			return nil, fmt.Errorf("%w: position %d: unknown item id %d", ErrInvalidPage, k, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: position %d: item id %d repeated", ErrInvalidPage, k, id)
		}
		seen[id] = struct{}{}
		rows[k] = row
	}
	return rows, nil
}

func checkNonNegative(what string, values []float64) error {
	for i, x := range values {
		if x < 0 || math.IsNaN(x) {
			return fmt.Errorf("%w: %s %d must be non-negative, got %v", ErrInvalidConfig, what, i, x)
		}
	}
	return nil
}
