package portal

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

// card is a catalog tool prepared for the page.
type card struct {
	Name          string
	Description   string
	Version       string
	Link          string
	Icon          string
	StatusLabel   string
	StatusClass   string
	Documentation template.HTML
	Feedback      template.HTML
}

func (s *Server) newCard(t models.ToolRecord) card {
	c := card{
		Name:          t.Name,
		Description:   t.Description,
		Version:       t.Version,
		Link:          t.Link,
		StatusLabel:   t.Status.Label(),
		StatusClass:   statusClass(t.Status),
		Documentation: s.renderMarkdown(t.Documentation),
		Feedback:      s.renderMarkdown(t.Feedback),
	}
	if c.Link == "" {
		c.Link = "#"
	}
	if c.Version == "" {
		c.Version = "N/A"
	}
	if s.cfg.IconsDir != "" && t.Image != "" {
		c.Icon = "/icons/" + (&url.URL{Path: strings.TrimPrefix(t.Image, "icons/")}).EscapedPath()
	}
	return c
}

func statusClass(st models.Status) string {
	switch st {
	case models.StatusActive:
		return "active"
	case models.StatusInactive:
		return "inactive"
	case models.StatusComingSoon:
		return "coming-soon"
	}
	return "unknown"
}

// renderMarkdown converts a catalog markdown snippet to HTML. goldmark
// escapes raw HTML by default, so the result is safe to embed.
func (s *Server) renderMarkdown(md string) template.HTML {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		s.logger.Error("failed to convert markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// loadLogo returns the logo as a data URI, or "" when the file is unreadable
// and the page should show the placeholder.
func (s *Server) loadLogo() template.URL {
	if s.cfg.LogoPath == "" {
		return ""
	}
	data, err := os.ReadFile(s.cfg.LogoPath)
	if err != nil {
		s.logger.Warn("logo file not readable, using placeholder", "path", s.cfg.LogoPath, "error", err)
		return ""
	}
	uri := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
	return template.URL(uri)
}

// splitColumns deals cards round-robin into n columns.
func splitColumns(cards []card, n int) [][]card {
	cols := make([][]card, n)
	for i, c := range cards {
		cols[i%n] = append(cols[i%n], c)
	}
	return cols
}
