package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry of common what-if scenarios
func CreateBuiltInTemplates(catalog domain.DeductionCatalog) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Invest up to the full 80C limit",
		Transforms:  []InputTransform{&MaxOutDeduction{Category: "80C", Catalog: catalog}},
	})

	registry.Register(Template{
		Name:        "add_nps",
		Description: "Contribute the full additional NPS amount under 80CCD(1B)",
		Transforms:  []InputTransform{&MaxOutDeduction{Category: "80CCD1B", Catalog: catalog}},
	})

	registry.Register(Template{
		Name:        "max_health",
		Description: "Take health insurance up to the 80D limit",
		Transforms:  []InputTransform{&MaxOutDeduction{Category: "80D", Catalog: catalog}},
	})

	registry.Register(Template{
		Name:        "max_all",
		Description: "Use the 80C, 80CCD(1B) and 80D limits in full",
		Transforms: []InputTransform{
			&MaxOutDeduction{Category: "80C", Catalog: catalog},
			&MaxOutDeduction{Category: "80CCD1B", Catalog: catalog},
			&MaxOutDeduction{Category: "80D", Catalog: catalog},
		},
	})

	registry.Register(Template{
		Name:        "no_itemized",
		Description: "Drop every itemized deduction",
		Transforms:  []InputTransform{&ClearDeductions{}},
	})

	registry.Register(Template{
		Name:        "stop_renting",
		Description: "Move out of rented housing (no HRA exemption)",
		Transforms:  []InputTransform{&SetRent{Monthly: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "no_home_loan",
		Description: "Close the home loan",
		Transforms:  []InputTransform{&RemoveDeduction{Category: "HomeLoanInterest", Catalog: catalog}},
	})

	for _, pct := range []int64{10, 20} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%dpct", pct),
			Description: fmt.Sprintf("Salary rises by %d%%", pct),
			Transforms:  []InputTransform{&RaiseIncome{Percent: decimal.NewFromInt(pct)}},
		})
	}

	return registry
}

// Resolve turns a template name or a transform spec into a named what-if
// input derived from base
func Resolve(base domain.TaxInput, nameOrSpec string, templates *TemplateRegistry, transforms *TransformRegistry) (domain.TaxInput, string, error) {
	if t, ok := templates.Get(nameOrSpec); ok {
		out, err := ApplyTransforms(base, t.Transforms)
		if err != nil {
			return domain.TaxInput{}, "", err
		}
		out.Name = t.Name
		return out, t.Description, nil
	}

	tr, err := transforms.ParseTransformSpec(nameOrSpec)
	if err != nil {
		return domain.TaxInput{}, "", fmt.Errorf("%q is neither a template nor a transform spec: %w", nameOrSpec, err)
	}
	out, err := ApplyTransforms(base, []InputTransform{tr})
	if err != nil {
		return domain.TaxInput{}, "", err
	}
	out.Name = nameOrSpec
	return out, tr.Description(), nil
}
