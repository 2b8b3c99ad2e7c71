package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/esnet/internal/compare"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/rgehrsitz/esnet/internal/transform"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Rank regimes and compare them against a base regime",
		Long: `Rank the requested regimes by net income and measure each one, plus any
what-if template, against a base regime.

Examples:
  esnet compare --regimes all
  esnet compare input.yaml --base empleado --with income_plus_20,family_married_2_children
  esnet compare --regimes all --transform set_community:community=valencia --format csv
  esnet templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, args)
			if err != nil {
				return err
			}

			specs, _ := cmd.Flags().GetStringArray("transform")
			if len(specs) > 0 {
				params, err = applyTransformSpecs(params, specs)
				if err != nil {
					return err
				}
				parser, err := paramsParser(cmd)
				if err != nil {
					return err
				}
				if err := parser.ValidateParams(params); err != nil {
					return fmt.Errorf("invalid parameters after --transform: %w", err)
				}
			}

			engine, err := a.newEngine(cmd)
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			var base domain.Regime
			if baseName != "" {
				r, ok := domain.ParseRegime(baseName)
				if !ok {
					return fmt.Errorf("unknown base regime %q", baseName)
				}
				base = r
			}
			templatesStr, _ := cmd.Flags().GetString("with")

			options := compare.CompareOptions{
				BaseRegime: base,
				Templates:  transform.ParseTemplateList(templatesStr),
			}
			if len(args) > 0 {
				options.ConfigPath = args[0]
			}

			a.logger.Debug("comparing",
				zap.Int("regimes", len(params.Regimes)),
				zap.String("base", string(base)),
				zap.Strings("templates", options.Templates))

			comparisonSet, err := compare.NewCompareEngine(engine).Compare(context.Background(), *params, options)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			var out string
			switch format := a.outputFormat(cmd); format {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(comparisonSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(comparisonSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(comparisonSet) + "\n"
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	addParamFlags(cmd)
	cmd.Flags().String("base", "", "Base regime to compare against (default: the best ranked)")
	cmd.Flags().String("with", "", "Comma-separated what-if templates evaluated for the base regime")
	cmd.Flags().StringArray("transform", nil, "Transform applied before comparing, as name:key=value,... (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

// applyTransformSpecs parses each spec with the transform registry and applies
// them in order
func applyTransformSpecs(params *domain.CalculatorParams, specs []string) (*domain.CalculatorParams, error) {
	registry := transform.NewTransformRegistry()
	transforms := make([]transform.ParamsTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid --transform %q: %w", spec, err)
		}
		transforms = append(transforms, t)
	}
	return transform.ApplyTransforms(params, transforms)
}
