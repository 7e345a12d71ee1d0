// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package datagen

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/intentpage/internal/pool"
)

func newTestGenerator(t *testing.T, seed uint64) *Generator {
	t.Helper()
	g, err := NewGenerator(rand.NewPCG(seed, 0), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func relClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

func TestNewGenerator_NilSource(t *testing.T) {
	if _, err := NewGenerator(nil, zerolog.Nop()); !errors.Is(err, ErrNilSource) {
		t.Errorf("NewGenerator(nil) error = %v, want ErrNilSource", err)
	}
}

func TestAlpha(t *testing.T) {
	if got := math.Pow(Alpha, HalfLife); math.Abs(got-0.5) > 1e-15 {
		t.Errorf("Alpha^%d = %v, want 0.5", HalfLife, got)
	}
}

func TestGenerate_Contract(t *testing.T) {
	g := newTestGenerator(t, 1)

	p, err := g.Generate(40, 5, false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if p.N() != 40 || p.V() != 5 {
		t.Fatalf("shape = %dx%d, want 40x5", p.N(), p.V())
	}

	for v := 0; v < p.V(); v++ {
		m := p.MaxVals[v]
		if m > 0.1 || m < math.Pow(10, -3.5) {
			t.Errorf("maxval[%d] = %v, want within [10^-3.5, 0.1]", v, m)
		}
		if w := p.RawWeights[v]; w < 0.3 || w > 3 {
			t.Errorf("raw weight[%d] = %v, want within [0.3, 3]", v, w)
		}
		if !relClose(p.Coefficients[v]*m, p.RawWeights[v]) {
			t.Errorf("c[%d] * maxval = %v, want raw weight %v", v, p.Coefficients[v]*m, p.RawWeights[v])
		}

		// Each column is a permutation of maxval * alpha^i.
		col := p.EventColumn(v)
		sort.Sort(sort.Reverse(sort.Float64Slice(col)))
		for i, e := range col {
			if want := m * math.Pow(Alpha, float64(i)); e != want {
				t.Fatalf("sorted column %d entry %d = %v, want %v", v, i, e, want)
			}
		}
	}

	for i := 0; i < p.N(); i++ {
		want := 0.0
		for v := 0; v < p.V(); v++ {
			want += p.Events.At(i, v) * p.Coefficients[v]
		}
		if !relClose(p.ValueModel[i], want) {
			t.Errorf("vm[%d] = %v, want %v", i, p.ValueModel[i], want)
		}
	}

	for i, id := range p.ItemIDs {
		if id != i {
			t.Fatalf("ItemIDs[%d] = %d, want %d", i, id, i)
		}
	}
}

func TestGenerate_EqualIntentWeights(t *testing.T) {
	p, err := newTestGenerator(t, 2).Generate(10, 3, true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for v, w := range p.RawWeights {
		if w != 1 {
			t.Errorf("raw weight[%d] = %v, want 1", v, w)
		}
		if !relClose(p.Coefficients[v], 1/p.MaxVals[v]) {
			t.Errorf("c[%d] = %v, want 1/maxval", v, p.Coefficients[v])
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := newTestGenerator(t, 77).Generate(25, 4, false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := newTestGenerator(t, 77).Generate(25, 4, false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i := 0; i < a.N(); i++ {
		if a.ValueModel[i] != b.ValueModel[i] {
			t.Fatalf("vm[%d] differs across runs with one seed", i)
		}
	}

	c, err := newTestGenerator(t, 78).Generate(25, 4, false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	same := true
	for i := 0; i < a.N(); i++ {
		if a.ValueModel[i] != c.ValueModel[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical pools")
	}
}

func TestGenerate_InvalidSizes(t *testing.T) {
	g := newTestGenerator(t, 3)
	tests := []struct {
		name    string
		n, v    int
		wantErr bool
	}{
		{"zero candidates", 0, 3, true},
		{"negative intents", 5, -1, true},
		{"single item single intent", 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.n, tt.v, false)
			if tt.wantErr && !errors.Is(err, pool.ErrInvalidConfig) {
				t.Errorf("Generate(%d, %d) error = %v, want ErrInvalidConfig", tt.n, tt.v, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Generate(%d, %d) error = %v", tt.n, tt.v, err)
			}
		})
	}
}
