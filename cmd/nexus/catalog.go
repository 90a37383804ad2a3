package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(cat.Tools, "", "  ")
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTATUS\tVERSION\tLINK")
			for _, t := range cat.Tools {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, statusColor(t.Status).Sprint(t.Status.Label()), t.Version, t.Link)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusActive:
		return color.New(color.FgGreen)
	case models.StatusInactive:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}
