package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phronesis/nexus-go/pkg/nexus"
	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

func newSubmitCmd(a *app) *cobra.Command {
	var workbook, tool, name, category, text string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a feedback entry for a tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			if _, ok := cat.Lookup(tool); !ok {
				return fmt.Errorf("unknown tool %q (run `nexus catalog` for the list)", tool)
			}

			c, ok := models.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}

			entry := nexus.NewEntry(name, c, text, time.Now())
			if err := nexus.ValidateEntry(entry); err != nil {
				return errors.New(nexus.UserMessage(err))
			}

			path := a.workbookPath(workbook)
			if err := a.store().Submit(cmd.Context(), path, tool, entry); err != nil {
				a.logger.Debug("submit failed", "error", err)
				return errors.New(nexus.UserMessage(err))
			}

			w := cmd.OutOrStdout()
			color.New(color.FgGreen).Fprint(w, "✔ ")
			fmt.Fprintf(w, "Thank you for your feedback on %s!", tool)
			color.New(color.FgHiBlack).Fprintf(w, " (%s)\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&workbook, "workbook", "", "Feedback workbook (default: workbook.path)")
	cmd.Flags().StringVar(&tool, "tool", "", "Tool name as listed in the catalog")
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&category, "category", string(models.CategoryGeneral), "Category code or label")
	cmd.Flags().StringVar(&text, "text", "", "Feedback text")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}
