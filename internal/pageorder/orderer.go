// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package pageorder

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/intentpage/internal/pool"
)

// Strategy names accepted by New.
const (
	NameTopK            = "topk"
	NameValueModelSort  = "vm_sort"
	NameIntentDiversity = "intent_diversity"
)

// Orderer maps a candidate pool and a page length to an ordered page.
type Orderer interface {
	// Name returns the strategy identifier (e.g., "topk", "intent_diversity").
	Name() string

	// Order returns exactly pagelen distinct item ids from p.ItemIDs.
	// It returns an error wrapping pool.ErrInvalidConfig when pagelen is
	// outside [0, N].
	Order(ctx context.Context, p *pool.CandidatePool, pagelen int) (pool.Page, error)
}

// Names returns the known strategy names in sorted order.
func Names() []string {
	names := []string{NameTopK, NameValueModelSort, NameIntentDiversity}
	sort.Strings(names)
	return names
}

// New builds the strategy registered under name. cfg is only used by the
// intent diversity strategy.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(name string, cfg GreedyConfig, logger zerolog.Logger) (Orderer, error) {
	switch name {
	case NameTopK:
		return NewTopK(), nil
	case NameValueModelSort:
		return NewValueModelSort(), nil
	case NameIntentDiversity:
		return NewIntentDiversityGreedy(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown page orderer %q (known: %v)", name, Names())
	}
}

func checkInput(p *pool.CandidatePool, pagelen int) error {
	if p == nil {
		return fmt.Errorf("%w: candidate pool is required", pool.ErrInvalidConfig)
	}
	return p.ValidatePageLen(pagelen)
}
