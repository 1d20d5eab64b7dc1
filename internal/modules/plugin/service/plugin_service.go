package service

import (
	"context"
	"fmt"
	"os"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/domain"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/dto"
	pluginout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/port/out"
)

type PluginService struct {
	store pluginout.ManifestStore
	host  pluginout.Host
	log   hclog.Logger
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host, log hclog.Logger) *PluginService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &PluginService{store: store, host: host, log: log}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, s.probe(ctx, m))
	}
	return out, nil
}

func (s *PluginService) Check(ctx context.Context, name string) (dto.PluginInfo, error) {
	manifest, err := s.findManifest(ctx, name)
	if err != nil {
		return dto.PluginInfo{}, err
	}
	return s.probe(ctx, manifest), nil
}

// Notify fans the event out to every installed notifier from a background
// goroutine. Plugin failures are logged and never reach the caller.
func (s *PluginService) Notify(_ context.Context, event dto.Event) {
	notification := domain.Notification{
		Kind:          event.Kind,
		SessionID:     event.SessionID,
		Subject:       event.Subject,
		Minutes:       event.Minutes,
		Streak:        event.Streak,
		TodaySessions: event.TodaySessions,
		TotalMinutes:  event.TotalMinutes,
		Message:       event.Message,
		At:            event.At,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		manifests, err := s.loadValidated(ctx)
		if err != nil {
			s.log.Warn("load plugin manifests", "error", err)
			return
		}
		for _, manifest := range manifests {
			if err := s.host.Notify(ctx, manifest, notification); err != nil {
				s.log.Warn("notify plugin", "plugin", manifest.Name, "kind", event.Kind, "error", err)
			}
		}
	}()
}

func (s *PluginService) probe(ctx context.Context, manifest domain.Manifest) dto.PluginInfo {
	info := dto.PluginInfo{Name: manifest.Name, Binary: manifest.Binary}
	if !fileExists(manifest.Binary) {
		info.Error = fmt.Sprintf("binary does not exist: %s", manifest.Binary)
		return info
	}
	meta, err := s.host.GetMetadata(ctx, manifest)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Version = meta.Version
	info.Capabilities = make([]string, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		info.Capabilities = append(info.Capabilities, string(capability))
	}
	info.Healthy = true
	return info
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *PluginService) findManifest(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name == name {
			return manifest, nil
		}
	}
	return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginNotFound, name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
