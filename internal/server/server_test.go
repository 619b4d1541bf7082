package server_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gauthierbraillon/ytf/internal/aggregator"
	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/server"
	"github.com/gauthierbraillon/ytf/internal/service"
	"github.com/gauthierbraillon/ytf/internal/storage"
	"github.com/gauthierbraillon/ytf/internal/store"
)

// --- Helpers ---

type readOnlyBackend struct {
	*storage.Memory
}

func (readOnlyBackend) Put(...storage.Record) error { return errors.New("disk full") }

func newServer(t *testing.T, backend storage.Backend) *server.Server {
	t.Helper()
	feedback := store.NewFeedback(backend)
	later := store.NewWatchLater(backend)
	if err := feedback.Load(); err != nil {
		t.Fatal(err)
	}
	if err := later.Load(); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return server.New(service.New(feedback, later), logger)
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

// --- Tests ---

func TestHealth(t *testing.T) {
	rec := do(t, newServer(t, storage.NewMemory()), http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateFeedback_ReturnsEntryWithID(t *testing.T) {
	srv := newServer(t, storage.NewMemory())

	rec := do(t, srv, http.MethodPost, "/api/feedback",
		`{"videoUrl":"https://youtu.be/abc?t=30","emoji":"🔥","comment":"so good"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[entry.Feedback](t, rec)
	if got.ID != 1 || got.VideoOffsetSeconds != 30 || got.Emoji != entry.EmojiGreat {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestCreateFeedback_ValidationIs400(t *testing.T) {
	srv := newServer(t, storage.NewMemory())

	rec := do(t, srv, http.MethodPost, "/api/feedback", `{"videoUrl":"","emoji":"🔥"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please enter a video URL") {
		t.Errorf("user should see the validation message, got %s", rec.Body.String())
	}
}

func TestCreateFeedback_MalformedBodyIs400(t *testing.T) {
	rec := do(t, newServer(t, storage.NewMemory()), http.MethodPost, "/api/feedback", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateFeedback_PersistenceFailureEchoesEntry(t *testing.T) {
	srv := newServer(t, readOnlyBackend{storage.NewMemory()})

	rec := do(t, srv, http.MethodPost, "/api/feedback", `{"videoUrl":"https://youtu.be/a","emoji":"💤"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "could not be saved") || !strings.Contains(body, `"id":1`) {
		t.Errorf("response should explain the failure and echo the entry, got %s", body)
	}
}

func TestListFeedback_FiltersByEmoji(t *testing.T) {
	srv := newServer(t, storage.NewMemory())
	for _, e := range []string{"🔥", "❌", "fire"} {
		rec := do(t, srv, http.MethodPost, "/api/feedback", `{"videoUrl":"https://youtu.be/a","emoji":"`+e+`"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := do(t, srv, http.MethodGet, "/api/feedback?emoji=great", "")

	got := decode[[]entry.Feedback](t, rec)
	if len(got) != 2 {
		t.Errorf("expected 2 great entries, got %d", len(got))
	}
}

func TestListFeedback_RejectsUnknownPlatform(t *testing.T) {
	rec := do(t, newServer(t, storage.NewMemory()), http.MethodGet, "/api/feedback?platform=vimeo", "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteWatchLater(t *testing.T) {
	srv := newServer(t, storage.NewMemory())
	do(t, srv, http.MethodPost, "/api/watch-later", `{"videoUrl":"https://www.tiktok.com/@a/video/1"}`)

	if rec := do(t, srv, http.MethodDelete, "/api/watch-later/1", ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/api/watch-later/1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for already removed item, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/api/watch-later/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestWatchLater_DefaultNoteAndGet(t *testing.T) {
	srv := newServer(t, storage.NewMemory())
	do(t, srv, http.MethodPost, "/api/watch-later", `{"videoUrl":"https://youtu.be/a"}`)

	rec := do(t, srv, http.MethodGet, "/api/watch-later/1", "")

	got := decode[entry.WatchLater](t, rec)
	if got.Note != entry.DefaultNote {
		t.Errorf("expected default note, got %q", got.Note)
	}
}

func TestStats(t *testing.T) {
	srv := newServer(t, storage.NewMemory())
	do(t, srv, http.MethodPost, "/api/feedback", `{"videoUrl":"https://youtu.be/a","emoji":"🤔"}`)
	do(t, srv, http.MethodPost, "/api/watch-later", `{"videoUrl":"https://youtu.be/b"}`)

	got := decode[aggregator.Summary](t, do(t, srv, http.MethodGet, "/api/stats", ""))

	if got.TotalFeedback != 1 || got.WatchLater != 1 || got.ByEmoji[entry.EmojiConfusing] != 1 {
		t.Errorf("unexpected stats %+v", got)
	}
	if len(got.ByEmoji) != len(entry.Emojis) {
		t.Errorf("stats should list every reaction, got %v", got.ByEmoji)
	}
}

func TestClassify(t *testing.T) {
	srv := newServer(t, storage.NewMemory())

	rec := do(t, srv, http.MethodGet, "/api/classify?url=https%3A%2F%2Fyoutu.be%2Fabc&t=10", "")
	got := decode[service.Preview](t, rec)
	if got.EmbedURL != "https://www.youtube.com/embed/abc?start=10&autoplay=1" {
		t.Errorf("unexpected embed URL %q", got.EmbedURL)
	}

	rec = do(t, srv, http.MethodGet, "/api/classify?url=https%3A%2F%2Fwww.youtube.com%2Fwatch", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("YouTube link without id should be 422, got %d", rec.Code)
	}
}

func TestLaunch_PrePopulatesForm(t *testing.T) {
	srv := newServer(t, storage.NewMemory())

	rec := do(t, srv, http.MethodGet, "/feedback?video=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dxyz&t=42", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"videoOffsetSeconds":42`, `"canonicalId":"xyz"`, "start=42"} {
		if !strings.Contains(body, want) {
			t.Errorf("form should contain %s, got %s", want, body)
		}
	}
}

func TestLaunch_WithoutParametersIsEmptyForm(t *testing.T) {
	rec := do(t, newServer(t, storage.NewMemory()), http.MethodGet, "/feedback", "")

	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "preview") {
		t.Errorf("expected empty form, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := do(t, newServer(t, storage.NewMemory()), http.MethodGet, "/nope", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
