package portal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phronesis/nexus-go/internal/catalog"
	"github.com/phronesis/nexus-go/pkg/nexus"
	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

type submission struct {
	path  string
	sheet string
	entry models.FeedbackEntry
}

type fakeStore struct {
	mu    sync.Mutex
	calls []submission
	err   error
}

func (f *fakeStore) Submit(_ context.Context, path, sheetName string, entry models.FeedbackEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, submission{path: path, sheet: sheetName, entry: entry})
	return f.err
}

var fixedNow = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, store Submitter, mutate func(*Config)) *Server {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	cfg := Config{
		Title:        "Phronesis Nexus",
		Quote:        "Tools, not mandates.",
		QuoteAuthor:  "Someone",
		Footer:       "footer text",
		Columns:      2,
		WorkbookPath: filepath.Join(t.TempDir(), "feedback.xlsx"),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	s, err := New(cfg, cat, store, discardLogger())
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func postFeedback(t *testing.T, s *Server, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"name":     {"  Alice  "},
		"tool":     {"UID Generator"},
		"category": {"URGENT_FIX"},
		"feedback": {"IDs collide on bulk runs"},
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, &fakeStore{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	for _, name := range []string{"Phronesis Pulse 2.0", "Database Search Engine", "UID Generator", "Database Updater"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, `href="http://192.168.4.126:9001" target="_blank"`)
	assert.Contains(t, body, `title="Use unique Yahoo Finance Tickers to extract company profile and financial details"`)
	assert.Contains(t, body, `<a href="http://example.com/doc1">Documentation</a>`)
	assert.Contains(t, body, `class="card-status coming-soon"`)
	assert.Contains(t, body, "Pre-Beta")
	assert.Contains(t, body, "logo-placeholder")
	assert.Contains(t, body, "Tools, not mandates.")
	assert.Contains(t, body, "footer text")
	assert.Contains(t, body, `<option value="FEATURE_REQUEST">New features request</option>`)
	assert.Equal(t, 2, strings.Count(body, `class="card-column"`))
	assert.NotContains(t, body, "<details class=\"feedback\" open>")
}

func TestIndex_UnknownPath(t *testing.T) {
	s := newTestServer(t, &fakeStore{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndex_Logo(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("\x89PNG\r\n\x1a\n0000"), 0o644))

	s := newTestServer(t, &fakeStore{}, func(c *Config) { c.LogoPath = logo })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="data:image/png;base64,`)
	assert.NotContains(t, rec.Body.String(), "logo-placeholder")
}

func TestFeedback_Success(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store, nil)

	rec := postFeedback(t, s, validForm())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your feedback on UID Generator!")
	assert.Contains(t, rec.Body.String(), `class="alert success"`)

	require.Len(t, store.calls, 1)
	call := store.calls[0]
	assert.Equal(t, s.cfg.WorkbookPath, call.path)
	assert.Equal(t, "UID Generator", call.sheet)
	assert.Equal(t, models.FeedbackEntry{
		Name:     "Alice",
		Time:     "2025-04-02 09:30:00",
		Category: models.CategoryUrgentFix,
		Text:     "IDs collide on bulk runs",
	}, call.entry)
}

func TestFeedback_AcceptsCategoryLabel(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store, nil)

	form := validForm()
	form.Set("category", "General feedback")
	rec := postFeedback(t, s, form)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.calls, 1)
	assert.Equal(t, models.CategoryGeneral, store.calls[0].entry.Category)
}

func TestFeedback_MissingFields(t *testing.T) {
	for _, field := range []string{"name", "feedback"} {
		t.Run(field, func(t *testing.T) {
			store := &fakeStore{}
			s := newTestServer(t, store, nil)

			form := validForm()
			form.Set(field, "   ")
			rec := postFeedback(t, s, form)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), "Please fill in all fields.")
			assert.Contains(t, rec.Body.String(), "<details class=\"feedback\" open>")
			assert.Empty(t, store.calls)
		})
	}
}

func TestFeedback_KeepsFormValuesOnFailure(t *testing.T) {
	s := newTestServer(t, &fakeStore{}, nil)

	form := validForm()
	form.Set("feedback", "")
	rec := postFeedback(t, s, form)

	body := rec.Body.String()
	assert.Contains(t, body, `value="Alice"`)
	assert.Contains(t, body, `<option value="UID Generator" selected>`)
	assert.Contains(t, body, `<option value="URGENT_FIX" selected>`)
}

func TestFeedback_UnknownToolOrCategory(t *testing.T) {
	tests := map[string]func(url.Values){
		"tool":     func(v url.Values) { v.Set("tool", "Time Machine") },
		"category": func(v url.Values) { v.Set("category", "PRAISE") },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{}
			s := newTestServer(t, store, nil)

			form := validForm()
			mutate(form)
			rec := postFeedback(t, s, form)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `class="alert error"`)
			assert.Empty(t, store.calls)
		})
	}
}

func TestFeedback_StoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		kind       error
		wantStatus int
		wantText   string
	}{
		{"locked", nexus.ErrPermission, http.StatusConflict, "Permission denied: Could not write to"},
		{"corrupt", nexus.ErrCorruptWorkbook, http.StatusInternalServerError, "is not a valid workbook"},
		{"other", nexus.ErrUnknownIO, http.StatusInternalServerError, "An error occurred saving feedback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			s := newTestServer(t, store, nil)
			store.err = nexus.NewStoreError(nexus.OpSubmit, s.cfg.WorkbookPath, "UID Generator", tt.kind, errors.New("boom"))

			rec := postFeedback(t, s, validForm())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantText)
			assert.Contains(t, rec.Body.String(), "IDs collide on bulk runs", "form text is kept")
		})
	}
}

func TestFeedback_WritesWorkbook(t *testing.T) {
	store := nexus.NewStore(nexus.DefaultOptions())
	s := newTestServer(t, store, nil)

	first := validForm()
	second := validForm()
	second.Set("name", "Bob")
	second.Set("category", "GENERAL")

	require.Equal(t, http.StatusOK, postFeedback(t, s, first).Code)
	require.Equal(t, http.StatusOK, postFeedback(t, s, second).Code)

	entries, err := store.ReadSheet(context.Background(), s.cfg.WorkbookPath, "UID Generator")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, "Bob", entries[1].Name)
	assert.Equal(t, models.CategoryGeneral, entries[1].Category)
}

func TestHealthAndStatic(t *testing.T) {
	iconsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(iconsDir, "uid_icon.png"), []byte("icon"), 0o644))

	s := newTestServer(t, &fakeStore{}, func(c *Config) { c.IconsDir = iconsDir })
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--accent: #cd669b")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/icons/uid_icon.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "icon", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), `src="/icons/uid_icon.png"`)
}

func TestNew_RequiresDependencies(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	_, err = New(Config{WorkbookPath: "x.xlsx"}, nil, &fakeStore{}, nil)
	assert.Error(t, err)
	_, err = New(Config{WorkbookPath: "x.xlsx"}, cat, nil, nil)
	assert.Error(t, err)
	_, err = New(Config{}, cat, &fakeStore{}, nil)
	assert.Error(t, err)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, &fakeStore{}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
