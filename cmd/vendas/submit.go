package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vendas/internal/client"
	"github.com/MrJamesThe3rd/vendas/internal/config"
)

func newSubmitCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Validate a sales spreadsheet and submit it to the API",
		Long: `submit validates the spreadsheet and, only if every row is valid, sends the
batch to $API_URL. Pass the key printed by a failed run with --key to retry
without risking a duplicate import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cfg.Client.Token == "" {
				return errors.New("API_TOKEN is required")
			}

			outcome, err := validateFile(args[0], cfg.Client.CompanyID)
			if err != nil {
				return err
			}

			if !outcome.OK() || len(outcome.Records) == 0 {
				return report(cmd.OutOrStdout(), outcome, false)
			}

			if key == "" {
				key = uuid.NewString()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Client.Timeout)
			defer cancel()

			api := client.New(cfg.Client.APIURL, cfg.Client.Token, cfg.Client.Timeout)

			imp, err := api.CreateSales(ctx, key, outcome.Records)
			if err != nil {
				return fmt.Errorf("submit (retry with --key %s): %w", key, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d vendas importadas de %s (importação %s)\n", imp.RecordCount, imp.FileName, imp.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "idempotency key of an earlier attempt")

	return cmd
}
