package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	out "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/adapter/out"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

func newGroupServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestGetDecodesGroupDocument(t *testing.T) {
	t.Parallel()
	server, requests := newGroupServer(t, http.StatusOK,
		`{"code":"exam-crew","members":["ana","ben"],"activeSessions":{"ana":{"startedAt":"2026-09-01T10:00:00Z"}}}`)
	store := out.NewHTTPGroupStore(server.URL)

	group, err := store.Get(context.Background(), "exam-crew")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if group.Code != "exam-crew" || len(group.Members) != 2 {
		t.Fatalf("group: %+v", group)
	}
	if _, ok := group.ActiveSessions["ana"]; !ok {
		t.Fatalf("active sessions: %+v", group.ActiveSessions)
	}
	req := (*requests)[0]
	if req.method != http.MethodGet || req.path != "/groups/exam-crew" {
		t.Fatalf("request: %+v", req)
	}
}

func TestJoinPostsMember(t *testing.T) {
	t.Parallel()
	server, requests := newGroupServer(t, http.StatusOK, `{"code":"exam-crew","members":["ana"]}`)
	store := out.NewHTTPGroupStore(server.URL)

	group, err := store.Join(context.Background(), "exam-crew", "ana")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if group.Code != "exam-crew" {
		t.Fatalf("group: %+v", group)
	}
	req := (*requests)[0]
	if req.method != http.MethodPost || req.path != "/groups/exam-crew/members" {
		t.Fatalf("request: %+v", req)
	}
	if req.contentType != "application/json" {
		t.Fatalf("content type: %q", req.contentType)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(req.body), &payload); err != nil {
		t.Fatalf("body: %v", err)
	}
	if payload["name"] != "ana" {
		t.Fatalf("payload: %v", payload)
	}
}

func TestLeaveDeletesMember(t *testing.T) {
	t.Parallel()
	server, requests := newGroupServer(t, http.StatusNoContent, "")
	store := out.NewHTTPGroupStore(server.URL)

	if err := store.Leave(context.Background(), "exam-crew", "ana lee"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	req := (*requests)[0]
	if req.method != http.MethodDelete {
		t.Fatalf("method: %s", req.method)
	}
	if req.path != "/groups/exam-crew/members/ana lee" {
		t.Fatalf("path: %q", req.path)
	}
}

func TestSetActiveSendsScopedMergePatch(t *testing.T) {
	t.Parallel()
	server, requests := newGroupServer(t, http.StatusOK, "{}")
	store := out.NewHTTPGroupStore(server.URL)

	if err := store.SetActive(context.Background(), "exam-crew", "ana"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	req := (*requests)[0]
	if req.method != http.MethodPatch || req.path != "/groups/exam-crew" {
		t.Fatalf("request: %+v", req)
	}
	if req.contentType != "application/merge-patch+json" {
		t.Fatalf("content type: %q", req.contentType)
	}
	if req.body != `{"activeSessions":{"ana":{}}}` {
		t.Fatalf("patch body: %s", req.body)
	}
}

func TestClearActivePatchesNull(t *testing.T) {
	t.Parallel()
	server, requests := newGroupServer(t, http.StatusOK, "{}")
	store := out.NewHTTPGroupStore(server.URL)

	if err := store.ClearActive(context.Background(), "exam-crew", "ana"); err != nil {
		t.Fatalf("clear active: %v", err)
	}
	if body := (*requests)[0].body; body != `{"activeSessions":{"ana":null}}` {
		t.Fatalf("patch body: %s", body)
	}
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	t.Parallel()
	server, _ := newGroupServer(t, http.StatusNotFound, "")
	store := out.NewHTTPGroupStore(server.URL)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Leave(context.Background(), "missing", "ana"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on leave, got %v", err)
	}
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	t.Parallel()
	server, _ := newGroupServer(t, http.StatusInternalServerError, "boom")
	store := out.NewHTTPGroupStore(server.URL)

	if _, err := store.Get(context.Background(), "exam-crew"); err == nil {
		t.Fatalf("expected error on 500")
	}
}
