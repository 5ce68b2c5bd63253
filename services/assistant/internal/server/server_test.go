package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thinkbyte/services/assistant/internal/app"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) GenerateText(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func newTestServer(t *testing.T, gen *fakeGenerator) *Server {
	t.Helper()
	cfg := app.Config{}
	if gen != nil {
		cfg.Generator = gen
	}
	a, err := app.New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return New(Config{App: a})
}

func post(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestChatCannedReply(t *testing.T) {
	s := newTestServer(t, nil)
	rec := post(s, `{"message":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat returned %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ThinkByte assistant") {
		t.Fatalf("unexpected reply: %s", rec.Body.String())
	}
}

func TestChatValidation(t *testing.T) {
	s := newTestServer(t, nil)
	if rec := post(s, `{"message":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty message returned %d, want 400", rec.Code)
	}
	if rec := post(s, `not-json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json returned %d, want 400", rec.Code)
	}
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET returned %d, want 405", rec.Code)
	}
}

func TestChatGeneratorFailure(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{err: errors.New("upstream down")})
	rec := post(s, `{"message":"hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("failure returned %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}
