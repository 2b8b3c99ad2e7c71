package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/esnet/internal/config"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/rgehrsitz/esnet/internal/transform"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid (%d regimes, %s, revenue %s €)\n",
				args[0], len(params.Regimes), params.Community.DisplayName(), params.AnnualRevenue.StringFixed(2))
			return nil
		},
	}
}

func regimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regimes",
		Short: "List the supported regimes, communities and marital statuses",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "REGIME\tNAME")
			for _, r := range domain.AllRegimes() {
				fmt.Fprintf(w, "%s\t%s\n", r, r.DisplayName())
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "COMMUNITY\tNAME")
			for _, c := range domain.AllCommunities() {
				fmt.Fprintf(w, "%s\t%s\n", c, c.DisplayName())
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "STATUS\tNAME")
			for _, s := range domain.AllMaritalStatuses() {
				fmt.Fprintf(w, "%s\t%s\n", s, s.DisplayName())
			}
			_ = w.Flush()
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the what-if templates and transforms available to compare",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Transforms (--transform name:key=value,...):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
