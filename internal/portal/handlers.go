package portal

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/phronesis/nexus-go/pkg/nexus"
	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

// Flash kinds, also used as CSS classes.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashError   = "error"
)

type flash struct {
	Kind    string
	Message string
}

// formValues echoes the submitted form back into the page.
type formValues struct {
	Name     string
	Tool     string
	Category string
	Feedback string
}

type categoryOption struct {
	Value string
	Label string
}

type pageData struct {
	Title       string
	Quote       string
	QuoteAuthor string
	Footer      string
	Logo        template.URL
	Columns     [][]card
	Tools       []string
	Categories  []categoryOption
	Form        formValues
	Flash       *flash
	FormOpen    bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, formValues{}, nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, formValues{}, &flash{Kind: flashError, Message: "Could not read the submitted form."})
		return
	}

	form := formValues{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Tool:     r.PostFormValue("tool"),
		Category: r.PostFormValue("category"),
		Feedback: strings.TrimSpace(r.PostFormValue("feedback")),
	}

	id := uuid.New().String()
	logger := s.logger.With("submission_id", id, "tool", form.Tool)

	entry := nexus.NewEntry(form.Name, "", form.Feedback, s.now())
	if err := nexus.ValidateEntry(entry); err != nil {
		logger.Debug("feedback rejected", "error", err)
		s.render(w, http.StatusUnprocessableEntity, form, &flash{Kind: flashWarning, Message: nexus.UserMessage(err)})
		return
	}

	tool, ok := s.catalog.Lookup(form.Tool)
	if !ok {
		logger.Warn("feedback for unknown tool")
		s.render(w, http.StatusBadRequest, form, &flash{Kind: flashError, Message: fmt.Sprintf("Unknown tool %q.", form.Tool)})
		return
	}

	category, ok := models.ParseCategory(form.Category)
	if !ok {
		logger.Warn("feedback with unknown category", "category", form.Category)
		s.render(w, http.StatusBadRequest, form, &flash{Kind: flashError, Message: fmt.Sprintf("Unknown feedback category %q.", form.Category)})
		return
	}
	entry.Category = category
	form.Category = string(category)

	if err := s.store.Submit(r.Context(), s.cfg.WorkbookPath, tool.Name, entry); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, nexus.ErrPermission) {
			status = http.StatusConflict
		}
		logger.Error("storing feedback failed", "error", err)
		s.render(w, status, form, &flash{Kind: flashError, Message: nexus.UserMessage(err)})
		return
	}

	logger.Info("feedback submitted", "category", string(category))
	form.Feedback = ""
	s.render(w, http.StatusOK, form, &flash{
		Kind:    flashSuccess,
		Message: fmt.Sprintf("Thank you for your feedback on %s!", tool.Name),
	})
}

// render executes the page into a buffer first so a template failure still
// produces a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, form formValues, fl *flash) {
	data := pageData{
		Title:       s.cfg.Title,
		Quote:       s.cfg.Quote,
		QuoteAuthor: s.cfg.QuoteAuthor,
		Footer:      s.cfg.Footer,
		Columns:     s.columns,
		Tools:       s.catalog.Names(),
		Categories:  categoryOptions(),
		Form:        form,
		Flash:       fl,
		Logo:        s.logo,
		FormOpen:    fl != nil,
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func categoryOptions() []categoryOption {
	cats := models.Categories()
	opts := make([]categoryOption, len(cats))
	for i, c := range cats {
		opts[i] = categoryOption{Value: string(c), Label: c.Label()}
	}
	return opts
}
