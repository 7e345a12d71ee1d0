// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package pageorder implements strategies that choose an ordered page of
// items from a candidate pool.
//
// # Overview
//
// Every strategy implements Orderer:
//
//	type Orderer interface {
//	    Name() string
//	    Order(ctx context.Context, p *pool.CandidatePool, pagelen int) (pool.Page, error)
//	}
//
// The pool carries the event matrix, the value-model vector, the intent
// coefficients, the normalizers and the raw weights, so all strategies share
// one signature and the evaluation harness stays strategy-agnostic.
//
// # Available Strategies
//
//   - topk: the first pagelen items in pool order
//   - vm_sort: items sorted by value-model score, descending, stable on ties
//   - intent_diversity: greedy intent reweighting (IntentDiversityGreedy)
//
// # Intent Diversity Greedy
//
// The greedy strategy follows the reweighting heuristic of
// https://arxiv.org/abs/2405.12327. It keeps a per-intent weight cwt,
// initialized to c / sum(c), and repeatedly picks
//
//	argmax_i vm[i] * sum_v e[i, v] * cwt[v]
//
// After each pick it shrinks the weight of intents whose headroom (the sum
// of their top-pagelen scores over the whole pool) is being consumed faster
// than the value-model headroom:
//
//	denom   = max((vmHeadroom - vm[i*]) / vmHeadroom, 1e-6)
//	cwt[v] *= ((esHeadroom[v] - e[i*, v]) / esHeadroom[v]) / denom
//
// Ties go to the lowest row index. Picked rows are zeroed in a private copy
// of the pool, so the pool itself is never modified.
//
// # Headroom Policies
//
// The value-model ratio is floored; the per-intent ratio is not. When an
// intent's headroom reaches zero its ratio is 0/0 and cwt[v] becomes NaN.
// HeadroomPropagate (the default) keeps that behavior. HeadroomFloor floors
// every ratio at 1e-6, NaN included. Rounding can also leave a headroom a
// few ulps below zero; both policies reproduce that deterministically.
//
// # Thread Safety
//
// All orderers are stateless between calls and safe for concurrent use,
// provided a configured StepObserver is itself safe for concurrent use.
package pageorder
