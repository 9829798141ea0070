package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vendas/internal/config"
	"github.com/MrJamesThe3rd/vendas/internal/importer"
	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

// errRowsRejected makes the command exit 1 after the errors were printed.
var errRowsRejected = errors.New("spreadsheet has invalid rows")

type validateOptions struct {
	companyID string
	asJSON    bool
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a sales spreadsheet without submitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("company") {
				cfg, err := config.Load()
				if err != nil {
					return err
				}

				opts.companyID = cfg.Client.CompanyID
			}

			outcome, err := validateFile(args[0], opts.companyID)
			if err != nil {
				return err
			}

			return report(cmd.OutOrStdout(), outcome, opts.asJSON)
		},
	}

	cmd.Flags().StringVar(&opts.companyID, "company", "", "company stamped on the records (default $COMPANY_ID)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the outcome as JSON")

	return cmd
}

func validateFile(path, companyID string) (*importer.Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	src := importer.Source{CompanyID: companyID, FileName: filepath.Base(path)}

	return importer.NewService().Import(src, f)
}

type jsonOutcome struct {
	Errors  []string    `json:"errors,omitempty"`
	Records []sale.Sale `json:"records,omitempty"`
}

// report prints the outcome and returns errRowsRejected if any row failed.
func report(w io.Writer, o *importer.Outcome, asJSON bool) error {
	if asJSON {
		out := jsonOutcome{Errors: o.Messages()}
		if o.OK() {
			out.Records = o.Records
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode outcome: %w", err)
		}
	} else {
		for _, line := range o.Messages() {
			fmt.Fprintln(w, line)
		}

		if o.OK() {
			fmt.Fprintf(w, "%d vendas válidas\n", len(o.Records))
		}
	}

	if !o.OK() {
		return errRowsRejected
	}

	return nil
}
