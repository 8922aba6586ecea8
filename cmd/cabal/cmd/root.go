// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/m-renaud/cabal/cmd/cabal/cmd/check"
	"github.com/m-renaud/cabal/cmd/cabal/cmd/dep"
	"github.com/m-renaud/cabal/pkg/logging"
)

func RootCmd() (*cobra.Command, error) {
	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:           "cabal",
		Short:         "inspect and validate package dependency declarations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(dep.Cmd())
	cmd.AddCommand(check.Cmd())
	return cmd, nil
}
