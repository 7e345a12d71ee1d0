// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package pool defines the candidate pool that page orderers select from.
//
// # Data Model
//
// A pool holds N candidate items scored against V latent intents:
//
//   - Events: an N x V matrix of non-negative event scores, e[i, v]
//   - ValueModel: the combined score vm[i] = sum_v e[i, v] * c[v]
//   - Coefficients: c[v] = w[v] / m[v], the per-intent combination weights
//   - MaxVals: the per-intent normalizers m[v] (strictly positive)
//   - RawWeights: the un-normalized intent importances w[v]
//
// The value model is precomputed by whoever builds the pool and is never
// recomputed here. A pool is read-only once constructed; orderers that need
// scratch state must clone the matrix (see Clone).
//
// # Validation
//
// New and FromRows fail fast with an error wrapping ErrInvalidConfig when
// shapes disagree, any score or weight is negative, a normalizer is not
// strictly positive, item IDs repeat, or the coefficient/weight mass is zero.
//
// # Headroom
//
// TopKSum is the shared primitive behind every headroom and oracle value:
// the sum of the k largest entries of a column.
package pool
