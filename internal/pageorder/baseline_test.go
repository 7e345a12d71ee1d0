// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package pageorder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/intentpage/internal/pool"
)

func TestTopK_Order(t *testing.T) {
	rows := [][]float64{{1}, {2}, {3}, {4}}
	p, err := pool.FromRows([]int{40, 30, 20, 10}, rows, []float64{1, 2, 3, 4}, []float64{1}, []float64{1}, []float64{1})
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}

	page, err := NewTopK().Order(context.Background(), p, 3)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	assertPage(t, page, 40, 30, 20)

	// The returned page must not alias the pool.
	page[0] = -1
	if p.ItemIDs[0] != 40 {
		t.Error("TopK page aliases pool.ItemIDs")
	}
}

func TestValueModelSort_Order(t *testing.T) {
	tests := []struct {
		name    string
		vm      []float64
		pagelen int
		want    []int
	}{
		{"descending", []float64{0.1, 0.9, 0.5, 0.7}, 4, []int{1, 3, 2, 0}},
		{"truncated", []float64{0.1, 0.9, 0.5, 0.7}, 2, []int{1, 3}},
		{"stable ties", []float64{0.5, 0.9, 0.5, 0.5}, 3, []int{1, 0, 2}},
		{"empty page", []float64{0.5, 0.9, 0.5, 0.5}, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]float64, len(tt.vm))
			for i := range rows {
				rows[i] = []float64{1}
			}
			p := mustPool(t, rows, tt.vm, []float64{1})

			page, err := NewValueModelSort().Order(context.Background(), p, tt.pagelen)
			if err != nil {
				t.Fatalf("Order() error = %v", err)
			}
			assertPage(t, page, tt.want...)
		})
	}
}

func TestBaselines_InvalidPageLen(t *testing.T) {
	p := mustPool(t, [][]float64{{1}, {2}}, []float64{1, 2}, []float64{1})
	for _, o := range []Orderer{NewTopK(), NewValueModelSort()} {
		t.Run(o.Name(), func(t *testing.T) {
			if _, err := o.Order(context.Background(), p, 3); !errors.Is(err, pool.ErrInvalidConfig) {
				t.Errorf("Order(pagelen=3) error = %v, want ErrInvalidConfig", err)
			}
			if _, err := o.Order(context.Background(), nil, 0); !errors.Is(err, pool.ErrInvalidConfig) {
				t.Errorf("Order(nil) error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			o, err := New(name, GreedyConfig{HeadroomPolicy: HeadroomFloor}, zerolog.Nop())
			if err != nil {
				t.Fatalf("New(%q) error = %v", name, err)
			}
			if o.Name() != name {
				t.Errorf("Name() = %q, want %q", o.Name(), name)
			}
			if g, ok := o.(*IntentDiversityGreedy); ok && g.Policy() != HeadroomFloor {
				t.Errorf("Policy() = %v, want floor", g.Policy())
			}
		})
	}

	_, err := New("random", GreedyConfig{}, zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "random") {
		t.Errorf("New(random) error = %v, want unknown orderer error", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	want := []string{"intent_diversity", "topk", "vm_sort"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}
