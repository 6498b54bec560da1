// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/sphgrid/internal/provenance"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the code and remap file versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := provenance.Collect(os.Args)
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "sphgrid %s (grid_version %s)\n", a.CodeVersion, a.GridVersion)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
