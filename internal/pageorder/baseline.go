// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package pageorder

import (
	"context"
	"sort"

	"github.com/tomtom215/intentpage/internal/pool"
)

// TopK returns the first pagelen items in pool order.
type TopK struct{}

// NewTopK creates a truncation orderer.
func NewTopK() *TopK {
	return &TopK{}
}

// Name returns the orderer identifier.
func (t *TopK) Name() string {
	return NameTopK
}

// Order returns the first pagelen item ids.
func (t *TopK) Order(_ context.Context, p *pool.CandidatePool, pagelen int) (pool.Page, error) {
	if err := checkInput(p, pagelen); err != nil {
		return nil, err
	}
	return append(pool.Page(nil), p.ItemIDs[:pagelen]...), nil
}

// ValueModelSort ranks items by value-model score, highest first. Items with
// equal scores keep their pool order.
type ValueModelSort struct{}

// NewValueModelSort creates a value-model sorting orderer.
func NewValueModelSort() *ValueModelSort {
	return &ValueModelSort{}
}

// Name returns the orderer identifier.
func (s *ValueModelSort) Name() string {
	return NameValueModelSort
}

// Order returns the pagelen items with the highest value-model scores.
func (s *ValueModelSort) Order(_ context.Context, p *pool.CandidatePool, pagelen int) (pool.Page, error) {
	if err := checkInput(p, pagelen); err != nil {
		return nil, err
	}

	rows := pool.SequentialIDs(p.N())
	sort.SliceStable(rows, func(a, b int) bool {
		return p.ValueModel[rows[a]] > p.ValueModel[rows[b]]
	})

	page := make(pool.Page, pagelen)
	for k := range page {
		page[k] = p.ItemIDs[rows[k]]
	}
	return page, nil
}

// Ensure baselines implement the interface.
var (
	_ Orderer = (*TopK)(nil)
	_ Orderer = (*ValueModelSort)(nil)
)
