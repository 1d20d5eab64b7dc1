package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrPluginTimeout   = errors.New("plugin call timed out")
	ErrInvalidManifest = errors.New("plugin manifest is invalid")
	ErrPluginNotFound  = errors.New("plugin not found")
)

type Capability string

const CapabilityNotify Capability = "notify"

// Manifest names an installed plugin binary. Relative paths are resolved
// against the plugins directory by the store.
type Manifest struct {
	Name   string `json:"name"`
	Binary string `json:"binary"`
}

func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Binary) == "" {
		return fmt.Errorf("%w: name and binary are required", ErrInvalidManifest)
	}
	return nil
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Notification is one focus event delivered to notifier plugins.
type Notification struct {
	Kind          string
	SessionID     string
	Subject       string
	Minutes       int
	Streak        int
	TodaySessions int
	TotalMinutes  int
	Message       string
	At            time.Time
}
