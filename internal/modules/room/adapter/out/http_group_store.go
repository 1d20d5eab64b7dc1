package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/domain"
	roomout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/out"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

// HTTPGroupStore talks to the remote focus-room document service. Presence
// mutations are JSON merge patches touching a single activeSessions key, so
// concurrent devices never overwrite each other's entries. The startedAt
// timestamp is assigned server-side.
type HTTPGroupStore struct {
	base   string
	client *http.Client
}

func NewHTTPGroupStore(baseURL string) roomout.GroupStore {
	return &HTTPGroupStore{
		base:   baseURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type memberPayload struct {
	Name string `json:"name"`
}

// activeSessionsPatch merges one key into the group's activeSessions map.
// A nil mark marshals to null, which deletes the key.
type activeSessionsPatch struct {
	ActiveSessions map[string]*struct{} `json:"activeSessions"`
}

func (s *HTTPGroupStore) Get(ctx context.Context, code string) (domain.Group, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.groupURL(code), nil)
	if err != nil {
		return domain.Group{}, fmt.Errorf("build group request: %w", err)
	}
	return s.doGroup(req)
}

func (s *HTTPGroupStore) Join(ctx context.Context, code, user string) (domain.Group, error) {
	payload, err := json.Marshal(memberPayload{Name: user})
	if err != nil {
		return domain.Group{}, fmt.Errorf("marshal member: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.groupURL(code)+"/members", bytes.NewReader(payload))
	if err != nil {
		return domain.Group{}, fmt.Errorf("build join request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.doGroup(req)
}

func (s *HTTPGroupStore) Leave(ctx context.Context, code, user string) error {
	target := s.groupURL(code) + "/members/" + url.PathEscape(user)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("build leave request: %w", err)
	}
	return s.do(req)
}

func (s *HTTPGroupStore) SetActive(ctx context.Context, code, user string) error {
	return s.patchActive(ctx, code, user, &struct{}{})
}

func (s *HTTPGroupStore) ClearActive(ctx context.Context, code, user string) error {
	return s.patchActive(ctx, code, user, nil)
}

func (s *HTTPGroupStore) patchActive(ctx context.Context, code, user string, mark *struct{}) error {
	payload, err := json.Marshal(activeSessionsPatch{ActiveSessions: map[string]*struct{}{user: mark}})
	if err != nil {
		return fmt.Errorf("marshal presence patch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.groupURL(code), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build presence patch: %w", err)
	}
	req.Header.Set("Content-Type", "application/merge-patch+json")
	return s.do(req)
}

func (s *HTTPGroupStore) doGroup(req *http.Request) (domain.Group, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Group{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return domain.Group{}, apperrors.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Group{}, fmt.Errorf("group service returned %s", resp.Status)
	}
	var group domain.Group
	if err := json.NewDecoder(resp.Body).Decode(&group); err != nil {
		return domain.Group{}, fmt.Errorf("decode group: %w", err)
	}
	return group, nil
}

func (s *HTTPGroupStore) do(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("group service returned %s", resp.Status)
	}
	return nil
}

func (s *HTTPGroupStore) groupURL(code string) string {
	return s.base + "/groups/" + url.PathEscape(code)
}
