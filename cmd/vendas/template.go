package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [path]",
		Short: "Write the import template workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := sheet.TemplateFileName
			if len(args) == 1 {
				path = args[0]
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create template: %w", err)
			}

			if err := sheet.WriteTemplate(f); err != nil {
				f.Close()
				return err
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("close template: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "modelo gravado em", path)

			return nil
		},
	}
}
