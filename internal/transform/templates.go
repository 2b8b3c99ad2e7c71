package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ParamsTransform
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

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func childrenPtr(n int) *int {
	return &n
}

// CreateBuiltInTemplates creates a template registry with common what-if situations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Region templates
	for _, c := range domain.AllCommunities() {
		registry.Register(Template{
			Name:        "move_" + string(c),
			Description: fmt.Sprintf("Move tax residence to %s", c.DisplayName()),
			Transforms:  []ParamsTransform{&SetCommunity{Community: c}},
		})
	}

	// Family templates
	registry.Register(Template{
		Name:        "family_married",
		Description: "File jointly as a married couple",
		Transforms: []ParamsTransform{
			&SetMaritalStatus{Status: domain.MaritalMarried},
		},
	})

	registry.Register(Template{
		Name:        "family_married_2_children",
		Description: "Married couple with two children, joint filing",
		Transforms: []ParamsTransform{
			&SetMaritalStatus{Status: domain.MaritalMarried, Children: childrenPtr(2)},
		},
	})

	registry.Register(Template{
		Name:        "family_single_parent",
		Description: "Single parent with one child, joint filing",
		Transforms: []ParamsTransform{
			&SetMaritalStatus{Status: domain.MaritalSingleParent, Children: childrenPtr(1)},
		},
	})

	registry.Register(Template{
		Name:        "family_add_child",
		Description: "One more child",
		Transforms: []ParamsTransform{
			&AdjustChildren{Delta: 1},
		},
	})

	// Income templates
	registry.Register(Template{
		Name:        "income_plus_20",
		Description: "Revenue 20% higher",
		Transforms: []ParamsTransform{
			&ScaleRevenue{Factor: decimal.NewFromFloat(1.2)},
		},
	})

	registry.Register(Template{
		Name:        "income_minus_20",
		Description: "Revenue 20% lower",
		Transforms: []ParamsTransform{
			&ScaleRevenue{Factor: decimal.NewFromFloat(0.8)},
		},
	})

	registry.Register(Template{
		Name:        "income_double",
		Description: "Revenue doubled",
		Transforms: []ParamsTransform{
			&ScaleRevenue{Factor: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "income_no_expenses",
		Description: "No deductible expenses",
		Transforms: []ParamsTransform{
			&SetExpenses{Monthly: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "income_high_expenses",
		Description: "Deductible expenses of 2,500€/month",
		Transforms: []ParamsTransform{
			&SetExpenses{Monthly: decimal.NewFromInt(2500)},
		},
	})

	// Company templates
	registry.Register(Template{
		Name:        "company_year_5",
		Description: "Company in its fifth year (startup reduced rate expired)",
		Transforms: []ParamsTransform{
			&SetCompanyAge{Years: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base parameters
func ApplyTemplate(base *domain.CalculatorParams, template Template) (*domain.CalculatorParams, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Region", "Family", "Income", "Company"}
	prefixes := map[string]string{
		"move_":    "Region",
		"family_":  "Family",
		"income_":  "Income",
		"company_": "Company",
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		category := "Other"
		for prefix, c := range prefixes {
			if strings.HasPrefix(name, prefix) {
				category = c
				break
			}
		}
		categories[category] = append(categories[category], template)
	}

	for _, category := range append(order, "Other") {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  esnet compare input.yaml --with move_catalunya,family_married\n")
	sb.WriteString("  esnet compare --regimes all --with income_plus_20 --base autonomo_regular\n")

	return sb.String()
}
