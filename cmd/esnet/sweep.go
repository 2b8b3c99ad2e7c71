package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/esnet/internal/breakeven"
	"github.com/rgehrsitz/esnet/internal/output"
)

// addRangeFlags registers the revenue range shared by sweep and crossover
func addRangeFlags(cmd *cobra.Command) {
	defaults := breakeven.DefaultSweepOptions()
	cmd.Flags().String("from", defaults.From.String(), "First annual revenue of the range")
	cmd.Flags().String("to", defaults.To.String(), "Last annual revenue of the range")
	cmd.Flags().String("step", defaults.Step.String(), "Revenue increment between points")
}

func sweepOptions(cmd *cobra.Command) (breakeven.SweepOptions, error) {
	var opts breakeven.SweepOptions
	for name, target := range map[string]*decimal.Decimal{"from": &opts.From, "to": &opts.To, "step": &opts.Step} {
		d, err := decimalFlag(cmd, name)
		if err != nil {
			return opts, err
		}
		*target = d
	}
	return opts, opts.Validate()
}

func (a *app) sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [input-file]",
		Short: "Net monthly income of each regime across a revenue range",
		Long: `Evaluate every requested regime at each revenue of a range and print the
net monthly income series.

Examples:
  esnet sweep --regimes all
  esnet sweep --regimes empleado,sl_micro --from 20000 --to 120000 --step 2500 --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, args)
			if err != nil {
				return err
			}
			opts, err := sweepOptions(cmd)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cmd)
			if err != nil {
				return err
			}

			a.logger.Debug("sweeping", zap.Int("points", opts.Points()), zap.Int("regimes", len(params.Regimes)))

			points, err := breakeven.NewDefaultSolver(engine).Sweep(context.Background(), *params, opts)
			if err != nil {
				return err
			}

			format := a.outputFormat(cmd)
			if format == "table" || format == "console" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatSweep(points, params.Regimes))
				return err
			}

			formatter, err := output.SweepFormatterFor(format)
			if err != nil {
				return err
			}
			data, err := formatter.FormatSweep(points, params.Regimes)
			if err != nil {
				return fmt.Errorf("%s formatter failed: %w", formatter.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addParamFlags(cmd)
	addRangeFlags(cmd)
	cmd.Flags().StringP("format", "f", "csv", "Output format (table, csv, json)")
	return cmd
}

func (a *app) crossoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crossover [input-file]",
		Short: "Find the revenues where two regimes leave the same net income",
		Long: `Sweep a revenue range and locate, for every pair of requested regimes, the
revenues where their net annual income is equal.

Examples:
  esnet crossover --regimes all
  esnet crossover --regimes empleado,sl_micro --expenses 0 --from 10000 --to 100000 --step 1000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, args)
			if err != nil {
				return err
			}
			opts, err := sweepOptions(cmd)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cmd)
			if err != nil {
				return err
			}

			crossovers, err := breakeven.NewDefaultSolver(engine).FindCrossovers(context.Background(), *params, opts)
			if err != nil {
				return err
			}
			a.logger.Debug("crossovers found", zap.Int("count", len(crossovers)))

			var out string
			switch format := a.outputFormat(cmd); format {
			case "json":
				out, err = (&breakeven.JSONFormatter{Pretty: true}).FormatCrossovers(crossovers, opts)
				if err != nil {
					return err
				}
			case "table", "console":
				out = (&breakeven.TableFormatter{}).FormatCrossovers(crossovers, opts)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	addParamFlags(cmd)
	addRangeFlags(cmd)
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
