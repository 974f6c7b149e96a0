package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/extract"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/rgehrsitz/itrgo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the old and new regimes",
		Long: "Compare both regimes for the taxpayer (and any scenarios) in an input file, " +
			"or for a taxpayer described with flags when no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rules  domain.RegulatoryConfig
				inputs []domain.TaxInput
			)

			if len(args) == 1 {
				cfg, err := loadConfig(cmd, args[0])
				if err != nil {
					return err
				}
				rules = config.ResolveRules(cfg)
				inputs = config.Inputs(cfg)
			} else {
				if !cmd.Flags().Changed("income") {
					return fmt.Errorf("either an input file or --income is required")
				}
				var err error
				if rules, err = loadRules(cmd); err != nil {
					return err
				}
				input, err := inputFromFlags(cmd)
				if err != nil {
					return err
				}
				inputs = []domain.TaxInput{input}
			}

			results, err := newEngine(cmd, rules).EvaluateAll(inputs)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", outputFormat,
					strings.Join(append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...), ", "))
			}
			data, err := f.Format(output.NewReport(rules, inputs, results))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, html)")
	cmd.Flags().String("income", "", "Annual income")
	cmd.Flags().Bool("std", true, "Claim the standard deduction")
	cmd.Flags().String("rent", "", "Monthly rent paid")
	cmd.Flags().String("hra", "", "Monthly HRA received")
	cmd.Flags().String("basic", "", "Monthly basic salary")
	cmd.Flags().StringToString("deduction", nil, "Deductions as category=amount (e.g. 80C=150000,80D=25000)")
	return cmd
}

// inputFromFlags assembles a TaxInput from compare's inline flags
func inputFromFlags(cmd *cobra.Command) (domain.TaxInput, error) {
	input := domain.TaxInput{Name: "command line", Deductions: domain.DeductionSet{}}
	input.StandardDeduction, _ = cmd.Flags().GetBool("std")

	var err error
	if input.Income, err = decimalFlag(cmd, "income"); err != nil {
		return input, err
	}
	if input.RentPaid, err = decimalFlag(cmd, "rent"); err != nil {
		return input, err
	}
	if input.HRAReceived, err = decimalFlag(cmd, "hra"); err != nil {
		return input, err
	}
	if input.BasicSalary, err = decimalFlag(cmd, "basic"); err != nil {
		return input, err
	}

	pairs, _ := cmd.Flags().GetStringToString("deduction")
	for category, raw := range pairs {
		v, ok := extract.ParseAmount(raw)
		if !ok {
			return input, fmt.Errorf("invalid --deduction %s=%q", category, raw)
		}
		input.Deductions[category] = v
	}
	return input, nil
}

func scenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios [input-file]",
		Short: "Compare what-if scenarios against the base taxpayer",
		Long: "Compare the scenarios in an input file against its base taxpayer. " +
			"--with adds what-ifs from built-in templates (see --list-templates) " +
			"or transform specs such as set_deduction:category=80CCD1B,amount=50000.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				return listTemplates(cmd, domain.DefaultDeductionCatalog())
			}
			if len(args) == 0 {
				return fmt.Errorf("an input file is required")
			}

			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			rules := config.ResolveRules(cfg)

			withs, _ := cmd.Flags().GetStringArray("with")
			whatIfs, err := resolveWhatIfs(config.Inputs(cfg)[0], withs, rules.Deductions)
			if err != nil {
				return err
			}

			names, _ := cmd.Flags().GetStringSlice("only")
			engine := compare.NewCompareEngine(newEngine(cmd, rules))
			compSet, err := engine.Compare(context.Background(), cfg, compare.CompareOptions{
				Scenarios:  names,
				ConfigPath: args[0],
				WhatIfs:    whatIfs,
			})
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(outputFormat) {
			case "table", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unknown format %q (table, compact, csv, json)", outputFormat)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().StringSlice("only", nil, "Comma-separated scenario names to include (default: all)")
	cmd.Flags().StringArray("with", nil, "What-if template or transform spec (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List built-in what-if templates and transforms")
	return cmd
}

// resolveWhatIfs applies each template or transform spec to the base input
func resolveWhatIfs(base domain.TaxInput, withs []string, catalog domain.DeductionCatalog) ([]compare.WhatIf, error) {
	templates := transform.CreateBuiltInTemplates(catalog)
	transforms := transform.NewTransformRegistry(catalog)

	var out []compare.WhatIf
	for _, w := range withs {
		input, desc, err := transform.Resolve(base, w, templates, transforms)
		if err != nil {
			return nil, err
		}
		out = append(out, compare.WhatIf{Input: input, Description: desc})
	}
	return out, nil
}

func listTemplates(cmd *cobra.Command, catalog domain.DeductionCatalog) error {
	templates := transform.CreateBuiltInTemplates(catalog)
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Templates:")
	for _, name := range templates.List() {
		t, _ := templates.Get(name)
		fmt.Fprintf(w, "  %-14s %s\n", t.Name, t.Description)
	}

	fmt.Fprintln(w, "Transforms (name:key=value,...):")
	for _, name := range transform.NewTransformRegistry(catalog).List() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}
