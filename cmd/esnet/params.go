package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/config"
	"github.com/rgehrsitz/esnet/internal/domain"
)

// addParamFlags registers the flags that override calculator input
func addParamFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("regimes", "", "Comma-separated regimes to calculate, or \"all\"")
	flags.String("community", "", "Autonomous community (madrid, catalunya, valencia)")
	flags.String("status", "", "Marital status (soltero, casado, con_hijos)")
	flags.Int("children", 0, "Number of dependent children")
	flags.String("revenue", "", "Annual gross revenue in euros")
	flags.String("expenses", "", "Deductible expenses per month in euros")
	flags.Int("company-age", 0, "Years since the company was incorporated")
	flags.Int("beckham-year", 0, "Year within the Beckham regime (1 to the tables' max_years)")
	flags.String("constants", "", "YAML file overriding the built-in tax tables")
}

// resolveParams loads the input file when given, otherwise the defaults, and
// applies every flag the user set
func resolveParams(cmd *cobra.Command, args []string) (*domain.CalculatorParams, error) {
	parser, err := paramsParser(cmd)
	if err != nil {
		return nil, err
	}

	params := domain.DefaultParams()
	if len(args) > 0 {
		loaded, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		params = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("regimes") {
		list, _ := flags.GetString("regimes")
		regimes, err := domain.ParseRegimeList(list)
		if err != nil {
			return nil, err
		}
		params.Regimes = regimes
	}
	if flags.Changed("community") {
		community, _ := flags.GetString("community")
		params.Community = domain.Community(community)
	}
	if flags.Changed("status") {
		status, _ := flags.GetString("status")
		params.MaritalStatus = domain.MaritalStatus(status)
	}
	if flags.Changed("children") {
		params.Children, _ = flags.GetInt("children")
	}
	if flags.Changed("revenue") {
		revenue, err := decimalFlag(cmd, "revenue")
		if err != nil {
			return nil, err
		}
		params.AnnualRevenue = revenue
	}
	if flags.Changed("expenses") {
		expenses, err := decimalFlag(cmd, "expenses")
		if err != nil {
			return nil, err
		}
		params.MonthlyExpenses = expenses
	}
	if flags.Changed("company-age") {
		age, _ := flags.GetInt("company-age")
		params.CompanyAge = &age
	}
	if flags.Changed("beckham-year") {
		year, _ := flags.GetInt("beckham-year")
		params.BeckhamYear = &year
	}

	if err := parser.ValidateParams(&params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return &params, nil
}

// loadConstants returns the --constants tables, or the 2025 defaults
func loadConstants(cmd *cobra.Command) (*domain.TaxConstants, error) {
	constantsFile, _ := cmd.Flags().GetString("constants")
	if constantsFile == "" {
		return calculation.DefaultConstants(), nil
	}
	return config.NewInputParser().LoadConstantsFromFile(constantsFile)
}

// paramsParser validates against the same tables the engine will use
func paramsParser(cmd *cobra.Command) (*config.InputParser, error) {
	constants, err := loadConstants(cmd)
	if err != nil {
		return nil, err
	}
	return config.NewInputParserWithConstants(constants), nil
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}
