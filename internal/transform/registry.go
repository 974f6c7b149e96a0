package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	catalog   domain.DeductionCatalog
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a registry with the built-in transforms.
// The catalog supplies caps for max_deduction.
func NewTransformRegistry(catalog domain.DeductionCatalog) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		catalog:   catalog,
	}

	registry.Register("set_income", createSetIncome)
	registry.Register("raise_income", createRaiseIncome)
	registry.Register("standard_deduction", createSetStandardDeduction)
	registry.Register("set_rent", createSetRent)
	registry.Register("set_deduction", registry.createSetDeduction)
	registry.Register("remove_deduction", registry.createRemoveDeduction)
	registry.Register("clear_deductions", func(map[string]string) (InputTransform, error) {
		return &ClearDeductions{}, nil
	})
	registry.Register("max_deduction", registry.createMaxOutDeduction)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_deduction:category=80CCD1B,amount=50000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetIncome(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createRaiseIncome(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("raise_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &RaiseIncome{Percent: pct}, nil
}

func createSetStandardDeduction(params map[string]string) (InputTransform, error) {
	raw, err := requireParam("standard_deduction", params, "enabled")
	if err != nil {
		return nil, err
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid enabled value: %w", err)
	}
	return &SetStandardDeduction{Enabled: enabled}, nil
}

func createSetRent(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_rent", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetRent{Monthly: amount}, nil
}

func (r *TransformRegistry) createSetDeduction(params map[string]string) (InputTransform, error) {
	category, err := requireParam("set_deduction", params, "category")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("set_deduction", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetDeduction{Category: category, Amount: amount, Catalog: r.catalog}, nil
}

func (r *TransformRegistry) createRemoveDeduction(params map[string]string) (InputTransform, error) {
	category, err := requireParam("remove_deduction", params, "category")
	if err != nil {
		return nil, err
	}
	return &RemoveDeduction{Category: category, Catalog: r.catalog}, nil
}

func (r *TransformRegistry) createMaxOutDeduction(params map[string]string) (InputTransform, error) {
	category, err := requireParam("max_deduction", params, "category")
	if err != nil {
		return nil, err
	}
	return &MaxOutDeduction{Category: category, Catalog: r.catalog}, nil
}
