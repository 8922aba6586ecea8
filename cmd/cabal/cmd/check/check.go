// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/m-renaud/cabal/pkg/projectfile"
)

func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <project-file>",
		Short: "validate a project file and its dependency declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectfile.Read(args[0])
			if err != nil {
				return err
			}

			for _, a := range p.Advisories() {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", a.Message)
			}

			ok := lipgloss.NewStyle().
				Foreground(lipgloss.Color("2")).
				Bold(true).
				Render("ok")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s declares %d dependencies\n", ok, p.Name, len(p.ParsedDependencies()))
			for _, d := range p.ParsedDependencies() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d.String())
			}
			return nil
		},
	}
}
