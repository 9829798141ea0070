package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vendas",
		Short: "Validate and submit sales spreadsheets",
		Long: `vendas runs sales workbooks (.xlsx or .csv) through the same validation as
the dashboard upload, writes the import template and submits validated
batches to the sales API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newValidateCmd(),
		newSubmitCmd(),
		newTemplateCmd(),
	)

	return root
}
