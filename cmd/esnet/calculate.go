package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/esnet/internal/output"
)

func (a *app) calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate net income under each requested regime",
		Long: `Calculate the taxes, contributions and net income of each regime.

Without an input file the defaults are used (75.000 € revenue, 1.000 €/month
expenses, single in Madrid). Flags override values from the file.

Examples:
  esnet calculate --regimes all --revenue 90000
  esnet calculate input.yaml --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, args)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cmd)
			if err != nil {
				return err
			}

			format := a.outputFormat(cmd)
			if format == "table" {
				format = "console"
			}
			formatter, err := output.FormatterFor(format)
			if err != nil {
				return err
			}

			a.logger.Debug("calculating",
				zap.Int("regimes", len(params.Regimes)),
				zap.String("revenue", params.AnnualRevenue.String()),
				zap.String("format", formatter.Name()))

			results, err := engine.CalculateAll(*params)
			if err != nil {
				return err
			}

			report := output.NewReport(*params, results, engine.Constants)
			return output.WriteFormatted(cmd.OutOrStdout(), formatter, report)
		},
	}

	addParamFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	return cmd
}
