// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dep

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/m-renaud/cabal/pkg/dependency"
	"github.com/m-renaud/cabal/pkg/diagnostics"
	"github.com/m-renaud/cabal/pkg/specversion"
)

func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "work with single dependency declarations",
	}
	cmd.AddCommand(parseCmd())
	cmd.AddCommand(grammarCmd())
	return cmd
}

func parseCmd() *cobra.Command {
	var specVersion string
	var explain, simplify bool

	cmd := &cobra.Command{
		Use:   "parse <dependency>",
		Short: "parse a dependency declaration and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sv, err := specversion.Parse(specVersion)
			if err != nil {
				return err
			}

			var diags diagnostics.Collector
			d, err := dependency.Parse(args[0], sv, &diags)
			if err != nil {
				return err
			}
			if simplify {
				d = d.Simplify()
			}

			for _, a := range diags.All() {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", a.Message)
			}
			if explain {
				fmt.Fprintln(cmd.OutOrStdout(), explainTable(d))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&specVersion, "spec-version", specversion.LibrarySyntaxMin.String(),
		"specification version declared by the enclosing package")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the parsed fields instead of the canonical form")
	cmd.Flags().BoolVar(&simplify, "simplify", false, "simplify the version range before printing")
	return cmd
}

func grammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "print the dependency grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), dependency.Describe().String())
			return nil
		},
	}
}

func explainTable(d dependency.Dependency) string {
	libraries := lo.Map(d.Libraries().Selectors(), func(sel dependency.LibrarySelector, _ int) string {
		if sub, ok := sel.Sub(); ok {
			return sub.String()
		}
		return d.Package().String() + " (main library)"
	})

	bold := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Rows(
			[]string{bold.Render("package"), d.Package().String()},
			[]string{bold.Render("range"), d.Range().String()},
			[]string{bold.Render("libraries"), strings.Join(libraries, ", ")},
		).
		String()
}
