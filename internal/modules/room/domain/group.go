package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidGroupCode = errors.New("group code is invalid")

// ActiveMark flags one member as currently focusing. The timestamp is
// assigned by the remote store, never locally.
type ActiveMark struct {
	StartedAt time.Time `json:"startedAt"`
}

// Group is the shared focus-room document. It is owned by the remote store
// and mutated concurrently by every member's device, so local code only ever
// issues field-scoped updates against ActiveSessions, never whole-document
// writes.
type Group struct {
	Code           string                `json:"code"`
	Members        []string              `json:"members"`
	ActiveSessions map[string]ActiveMark `json:"activeSessions"`
}

// ActiveMembers lists who is focusing right now, in member-list order with
// unknown names appended.
func (g Group) ActiveMembers() []string {
	seen := map[string]bool{}
	active := make([]string, 0, len(g.ActiveSessions))
	for _, member := range g.Members {
		if _, ok := g.ActiveSessions[member]; ok {
			active = append(active, member)
			seen[member] = true
		}
	}
	for name := range g.ActiveSessions {
		if !seen[name] {
			active = append(active, name)
		}
	}
	return active
}

func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrInvalidGroupCode
	}
	return nil
}
