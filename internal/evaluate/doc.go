// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package evaluate scores page orderers against an oracle.
//
// One evaluation draws an intent v in proportion to the pool's raw weights
// (or its coefficients, see WithSampleWeights), asks the orderer for a page,
// and reports how much of the best achievable event mass for v the page
// captured. An orderer that knew v in advance would score 1.
//
// Randomness comes from an injected math/rand/v2 source, so a fixed seed
// reproduces every draw.
package evaluate
