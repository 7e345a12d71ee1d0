// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/intentpage/internal/output"
	"github.com/tomtom215/intentpage/internal/pageorder"
)

var strategyDescriptions = map[string]string{
	pageorder.NameTopK:            "first pagelen candidates in pool order",
	pageorder.NameValueModelSort:  "candidates sorted by aggregate value, descending",
	pageorder.NameIntentDiversity: "greedy picks reweighted by remaining per-intent headroom",
}

func newStrategiesCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available page-ordering strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := output.NewTable(cmd.OutOrStdout(), []string{"Name", "Description"})
			for _, name := range pageorder.Names() {
				t.AddRow([]string{name, strategyDescriptions[name]})
			}
			return t.Render()
		},
	}
}
