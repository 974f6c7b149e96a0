package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the deductions at which the old regime becomes cheaper",
		Long: "Solve for the smallest total of HRA exemption and itemized deductions at which the old regime " +
			"beats the new one. Uses the base taxpayer of an input file, --income, or a --from/--to/--step sweep.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			outputFormat, _ := cmd.Flags().GetString("format")
			standard, _ := cmd.Flags().GetBool("std")

			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				rules, err := loadRules(cmd)
				if err != nil {
					return err
				}
				solver := breakeven.NewDefaultSolver(newEngine(cmd, rules))

				from, err := decimalFlag(cmd, "from")
				if err != nil {
					return err
				}
				to, err := decimalFlag(cmd, "to")
				if err != nil {
					return err
				}
				step, err := decimalFlag(cmd, "step")
				if err != nil {
					return err
				}

				sweep, err := solver.Sweep(ctx, from, to, step, standard)
				if err != nil {
					return err
				}
				return printBreakEven(cmd, outputFormat, func(tf *breakeven.TableFormatter) string {
					return tf.FormatSweep(sweep)
				}, func(jf *breakeven.JSONFormatter) (string, error) {
					return jf.FormatSweep(sweep)
				})
			}

			var req breakeven.Request
			var solver *breakeven.Solver
			switch {
			case len(args) == 1:
				cfg, err := loadConfig(cmd, args[0])
				if err != nil {
					return err
				}
				solver = breakeven.NewDefaultSolver(newEngine(cmd, config.ResolveRules(cfg)))
				req = solver.RequestFor(config.Inputs(cfg)[0])
			case cmd.Flags().Changed("income"):
				rules, err := loadRules(cmd)
				if err != nil {
					return err
				}
				solver = breakeven.NewDefaultSolver(newEngine(cmd, rules))
				income, err := decimalFlag(cmd, "income")
				if err != nil {
					return err
				}
				req = breakeven.Request{Income: income, StandardDeduction: standard}
			default:
				return fmt.Errorf("an input file, --income, or --from/--to is required")
			}

			result, err := solver.Solve(ctx, req)
			if err != nil {
				return err
			}
			return printBreakEven(cmd, outputFormat, func(tf *breakeven.TableFormatter) string {
				return tf.Format(result)
			}, func(jf *breakeven.JSONFormatter) (string, error) {
				return jf.Format(result)
			})
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("income", "", "Annual income")
	cmd.Flags().Bool("std", true, "Claim the standard deduction")
	cmd.Flags().String("from", "", "Sweep: lowest income")
	cmd.Flags().String("to", "", "Sweep: highest income")
	cmd.Flags().String("step", "100000", "Sweep: income step")
	return cmd
}

func printBreakEven(cmd *cobra.Command, format string,
	table func(*breakeven.TableFormatter) string,
	asJSON func(*breakeven.JSONFormatter) (string, error)) error {

	switch strings.ToLower(format) {
	case "table", "":
		fmt.Fprint(cmd.OutOrStdout(), table(&breakeven.TableFormatter{}))
		return nil
	case "json":
		out, err := asJSON(&breakeven.JSONFormatter{Pretty: true})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	return fmt.Errorf("unknown format %q (table, json)", format)
}
