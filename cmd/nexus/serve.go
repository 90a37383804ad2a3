package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phronesis/nexus-go/internal/portal"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, workbook string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portal web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.HTTPAddr
			}
			path := a.workbookPath(workbook)

			cat, err := a.catalog()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			p := a.cfg.Portal
			srv, err := portal.New(portal.Config{
				Title:        p.Title,
				Quote:        p.Quote,
				QuoteAuthor:  p.QuoteAuthor,
				Footer:       p.Footer,
				LogoPath:     p.LogoPath,
				IconsDir:     p.IconsDir,
				Columns:      p.Columns,
				WorkbookPath: path,
			}, cat, a.store(), a.logger)
			if err != nil {
				return fmt.Errorf("creating portal: %w", err)
			}

			w := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan)
			green := color.New(color.FgGreen)
			gray := color.New(color.FgHiBlack)

			cyan.Fprintf(w, "    %s\n\n", p.Title)
			green.Fprint(w, "    ▶ ")
			fmt.Fprintf(w, "HTTP:      %s\n", addr)
			green.Fprint(w, "    ▶ ")
			fmt.Fprintf(w, "Workbook:  %s\n", path)
			green.Fprint(w, "    ▶ ")
			fmt.Fprintf(w, "Tools:     %d", len(cat.Tools))
			gray.Fprintf(w, " (lock timeout %s)\n\n", a.cfg.Workbook.LockTimeout)

			a.logger.Info("starting nexus portal",
				"http_addr", addr,
				"workbook", path,
				"tools", len(cat.Tools),
			)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.http_addr)")
	cmd.Flags().StringVar(&workbook, "workbook", "", "Feedback workbook (default: workbook.path)")
	return cmd
}
