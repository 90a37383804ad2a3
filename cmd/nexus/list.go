package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phronesis/nexus-go/pkg/nexus"
	"github.com/phronesis/nexus-go/pkg/nexus/output"
)

func newListCmd(a *app) *cobra.Command {
	var workbook, tool string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the feedback recorded for a tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store().ReadSheet(cmd.Context(), a.workbookPath(workbook), tool)
			if err != nil && !errors.Is(err, nexus.ErrSheetNotFound) && !errors.Is(err, nexus.ErrWorkbookNotFound) {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				data, err := output.EntriesToJSON(entries, true)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			if len(entries) == 0 {
				color.New(color.FgYellow).Fprintf(w, "No feedback for %s yet.\n", tool)
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTIME\tCATEGORY\tFEEDBACK")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Time, e.Category.Label(), e.Text)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&workbook, "workbook", "", "Feedback workbook (default: workbook.path)")
	cmd.Flags().StringVar(&tool, "tool", "", "Tool (sheet) name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}

func newSheetsCmd(a *app) *cobra.Command {
	var workbook string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List the sheets of the feedback workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.store().Sheets(cmd.Context(), a.workbookPath(workbook))
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workbook, "workbook", "", "Feedback workbook (default: workbook.path)")
	return cmd
}
