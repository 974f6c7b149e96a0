package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/extract"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [pdf-file]",
		Short: "Read claimed deductions from a Form 16 or investment proof PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			ex, err := extract.NewExtractor().FromPDF(data)
			if err != nil {
				return fmt.Errorf("failed to extract deductions from %s: %w", args[0], err)
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			switch strings.ToLower(outputFormat) {
			case "table", "":
				fmt.Fprint(out, formatExtraction(ex))
			case "json":
				b, err := json.MarshalIndent(ex, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
			case "yaml":
				// ready to paste under taxpayer:
				b, err := yaml.Marshal(map[string]domain.DeductionSet{"deductions": ex.Deductions})
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(b))
			default:
				return fmt.Errorf("unknown format %q (table, json, yaml)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
	return cmd
}

func formatExtraction(ex *extract.Extraction) string {
	var sb strings.Builder
	sb.WriteString("EXTRACTED DEDUCTIONS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	if len(ex.Deductions) == 0 {
		sb.WriteString("No deduction sections found\n")
		return sb.String()
	}
	for _, k := range domain.SortedKeys(ex.Deductions) {
		sb.WriteString(fmt.Sprintf("%-20s %20s\n", k, output.FormatCurrency(ex.Deductions[k])))
	}
	sb.WriteString("\nSOURCE LINES\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, m := range ex.Matches {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", m.Category, m.Line))
	}
	return sb.String()
}
