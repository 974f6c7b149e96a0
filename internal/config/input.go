package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer input and regulatory files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a taxpayer configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a taxpayer configuration
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.Rules != nil {
		rules, err := decodeRulesOverDefaults(data)
		if err != nil {
			return nil, err
		}
		config.Rules = rules
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// decodeRulesOverDefaults decodes the inline rules block on top of the default
// rules, so the block only needs the sections it changes
func decodeRulesOverDefaults(data []byte) (*domain.RegulatoryConfig, error) {
	var doc struct {
		Rules yaml.Node `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	rules := domain.DefaultRegulatoryConfig()
	if err := doc.Rules.Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return &rules, nil
}

// LoadFromFileWithRegulatory loads a taxpayer configuration and replaces its
// rules with those from a regulatory file
func (ip *InputParser) LoadFromFileWithRegulatory(filename, regulatoryFile string) (*domain.Configuration, error) {
	config, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}

	rules, err := ip.LoadRegulatory(regulatoryFile)
	if err != nil {
		return nil, err
	}
	config.Rules = rules
	return config, nil
}

// LoadRegulatory loads regulatory rules, starting from the defaults so a file
// only needs the sections it changes
func (ip *InputParser) LoadRegulatory(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", filename, err)
	}

	rules := domain.DefaultRegulatoryConfig()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}
	return &rules, nil
}

// ResolveRules returns the rules a configuration should be computed with
func ResolveRules(config *domain.Configuration) domain.RegulatoryConfig {
	if config != nil && config.Rules != nil {
		return *config.Rules
	}
	return domain.DefaultRegulatoryConfig()
}

// Inputs expands a configuration into the base input followed by each scenario
func Inputs(config *domain.Configuration) []domain.TaxInput {
	base := config.Taxpayer
	if base.Name == "" {
		base.Name = "base"
	}
	inputs := []domain.TaxInput{base}
	for _, s := range config.Scenarios {
		inputs = append(inputs, s.Apply(base))
	}
	return inputs
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := calculation.ValidateInput(config.Taxpayer); err != nil {
		return fmt.Errorf("taxpayer: %w", err)
	}

	seen := map[string]bool{}
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario, config.Taxpayer); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name: %s", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	if config.Rules != nil {
		if err := ip.ValidateRules(config.Rules); err != nil {
			return fmt.Errorf("rules validation failed: %w", err)
		}
	}
	return nil
}

// validateScenario validates a what-if scenario against the base input
func (ip *InputParser) validateScenario(scenario *domain.ScenarioOverride, base domain.TaxInput) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if err := calculation.ValidateInput(scenario.Apply(base)); err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return nil
}

// ValidateRules checks that slab schedules are contiguous and rates and caps
// are sensible
func (ip *InputParser) ValidateRules(rules *domain.RegulatoryConfig) error {
	if rules.StandardDeduction.IsNegative() {
		return fmt.Errorf("standard deduction cannot be negative")
	}
	if err := validateSchedule("old_regime", rules.OldRegime); err != nil {
		return err
	}
	if err := validateSchedule("new_regime", rules.NewRegime); err != nil {
		return err
	}

	if rules.HRA.SalaryShare.IsNegative() || rules.HRA.SalaryShare.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("hra salary_share must be between 0 and 1")
	}
	if rules.HRA.RentExcessShare.IsNegative() || rules.HRA.RentExcessShare.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("hra rent_excess_share must be between 0 and 1")
	}

	groups := map[string]bool{}
	for _, g := range rules.Deductions.Groups {
		if g.Key == "" {
			return fmt.Errorf("deduction group key is required")
		}
		if g.Cap.IsNegative() {
			return fmt.Errorf("deduction group %s: cap cannot be negative", g.Key)
		}
		groups[g.Key] = true
	}
	for _, c := range rules.Deductions.Categories {
		if c.Key == "" {
			return fmt.Errorf("deduction category key is required")
		}
		if c.Cap != nil && c.Cap.IsNegative() {
			return fmt.Errorf("deduction category %s: cap cannot be negative", c.Key)
		}
		if c.Group != "" && !groups[c.Group] {
			return fmt.Errorf("deduction category %s references unknown group %s", c.Key, c.Group)
		}
	}
	return nil
}

var errEmptySchedule = errors.New("schedule has no slabs")

func validateSchedule(name string, schedule domain.SlabSchedule) error {
	slabs := schedule.Slabs
	if len(slabs) == 0 {
		return fmt.Errorf("%s: %w", name, errEmptySchedule)
	}
	if !slabs[0].Min.IsZero() {
		return fmt.Errorf("%s: first slab must start at 0", name)
	}
	for i, s := range slabs {
		if s.Rate.IsNegative() || s.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s: slab %d rate must be between 0 and 1", name, i)
		}
		last := i == len(slabs)-1
		if s.Max == nil {
			if !last {
				return fmt.Errorf("%s: only the last slab may be open-ended", name)
			}
			continue
		}
		if s.Max.LessThanOrEqual(s.Min) {
			return fmt.Errorf("%s: slab %d max must exceed min", name, i)
		}
		if !last && !s.Max.Equal(slabs[i+1].Min) {
			return fmt.Errorf("%s: slab %d does not end where slab %d starts", name, i, i+1)
		}
	}
	return nil
}
