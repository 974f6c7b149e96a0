package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [input-file]",
		Short: "Write a report for the taxpayer and scenarios to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			rules := config.ResolveRules(cfg)
			inputs := config.Inputs(cfg)
			results, err := newEngine(cmd, rules).EvaluateAll(inputs)
			if err != nil {
				return err
			}

			outFile, _ := cmd.Flags().GetString("output")
			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat == "" {
				outputFormat = formatFromExt(outFile)
			}
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			report := output.NewReport(rules, inputs, results)
			if outFile == "" {
				ext := f.Name()
				if strings.HasPrefix(ext, "console") {
					ext = "txt"
				}
				outFile, err = output.WriteFormatted(f, report, ext)
				if err != nil {
					return err
				}
			} else if err := output.WriteFormattedTo(f, report, outFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: tax_report_<timestamp>.<ext>)")
	cmd.Flags().StringP("format", "f", "", "Report format (pdf, html, json, csv, console); default from the output extension, else pdf")
	return cmd
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".txt":
		return "console-lite"
	}
	return "pdf"
}
