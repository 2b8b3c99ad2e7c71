package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ParamsTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_community", createSetCommunity)
	registry.Register("set_marital_status", createSetMaritalStatus)
	registry.Register("adjust_children", createAdjustChildren)
	registry.Register("set_revenue", createSetRevenue)
	registry.Register("scale_revenue", createScaleRevenue)
	registry.Register("set_expenses", createSetExpenses)
	registry.Register("set_company_age", createSetCompanyAge)
	registry.Register("set_beckham_year", createSetBeckhamYear)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ParamsTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
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
// Example: "set_marital_status:status=casado,children=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ParamsTransform, error) {
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

func requireParam(params map[string]string, transform, key string) (string, error) {
	value, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return value, nil
}

func createSetCommunity(params map[string]string) (ParamsTransform, error) {
	community, err := requireParam(params, "set_community", "community")
	if err != nil {
		return nil, err
	}
	return &SetCommunity{Community: domain.Community(strings.ToLower(community))}, nil
}

func createSetMaritalStatus(params map[string]string) (ParamsTransform, error) {
	status, err := requireParam(params, "set_marital_status", "status")
	if err != nil {
		return nil, err
	}

	t := &SetMaritalStatus{Status: domain.MaritalStatus(strings.ToLower(status))}
	if childrenStr, ok := params["children"]; ok {
		children, err := strconv.Atoi(childrenStr)
		if err != nil {
			return nil, fmt.Errorf("invalid children value: %w", err)
		}
		t.Children = &children
	}
	return t, nil
}

func createAdjustChildren(params map[string]string) (ParamsTransform, error) {
	deltaStr, err := requireParam(params, "adjust_children", "delta")
	if err != nil {
		return nil, err
	}
	delta, err := strconv.Atoi(deltaStr)
	if err != nil {
		return nil, fmt.Errorf("invalid delta value: %w", err)
	}
	return &AdjustChildren{Delta: delta}, nil
}

func createSetRevenue(params map[string]string) (ParamsTransform, error) {
	amountStr, err := requireParam(params, "set_revenue", "amount")
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}
	return &SetRevenue{Amount: amount}, nil
}

func createScaleRevenue(params map[string]string) (ParamsTransform, error) {
	factorStr, err := requireParam(params, "scale_revenue", "factor")
	if err != nil {
		return nil, err
	}
	factor, err := decimal.NewFromString(factorStr)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %w", err)
	}
	return &ScaleRevenue{Factor: factor}, nil
}

func createSetExpenses(params map[string]string) (ParamsTransform, error) {
	monthlyStr, err := requireParam(params, "set_expenses", "monthly")
	if err != nil {
		return nil, err
	}
	monthly, err := decimal.NewFromString(monthlyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly value: %w", err)
	}
	return &SetExpenses{Monthly: monthly}, nil
}

func createSetCompanyAge(params map[string]string) (ParamsTransform, error) {
	yearsStr, err := requireParam(params, "set_company_age", "years")
	if err != nil {
		return nil, err
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &SetCompanyAge{Years: years}, nil
}

func createSetBeckhamYear(params map[string]string) (ParamsTransform, error) {
	yearStr, err := requireParam(params, "set_beckham_year", "year")
	if err != nil {
		return nil, err
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("invalid year value: %w", err)
	}
	return &SetBeckhamYear{Year: year}, nil
}
