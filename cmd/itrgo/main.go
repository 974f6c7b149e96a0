package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itrgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// newRootCmd builds the command tree; tests get a fresh tree per run
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "itrgo",
		Short: "Income tax regime comparison CLI",
		Long: "Compare the old and new Indian income-tax regimes for a salaried taxpayer: " +
			"HRA exemption, capped deductions, slab tax, break-even deductions and reports.",
		SilenceUsage: true,
	}

	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	root.PersistentFlags().String("regulatory-config", "", "Path to regulatory rules file (slabs, caps, HRA factors)")

	root.AddCommand(compareCmd())
	root.AddCommand(scenariosCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(breakEvenCmd())
	root.AddCommand(extractCmd())
	root.AddCommand(adviseCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a taxpayer input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenario(s))\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

// loadConfig reads a taxpayer file, swapping in --regulatory-config rules
// when given
func loadConfig(cmd *cobra.Command, path string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
	if regulatoryFile != "" {
		return parser.LoadFromFileWithRegulatory(path, regulatoryFile)
	}
	return parser.LoadFromFile(path)
}

// loadRules returns --regulatory-config rules or the defaults
func loadRules(cmd *cobra.Command) (domain.RegulatoryConfig, error) {
	regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
	if regulatoryFile == "" {
		return domain.DefaultRegulatoryConfig(), nil
	}
	rules, err := config.NewInputParser().LoadRegulatory(regulatoryFile)
	if err != nil {
		return domain.RegulatoryConfig{}, err
	}
	return *rules, nil
}

// newEngine builds a calculation engine honouring --debug
func newEngine(cmd *cobra.Command, rules domain.RegulatoryConfig) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithConfig(rules)
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode
	return engine
}

// decimalFlag parses a string flag as a rupee amount; empty means zero
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return v, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
