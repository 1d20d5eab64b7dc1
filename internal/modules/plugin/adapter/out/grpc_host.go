package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/adapter/out/rpc"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/domain"
	pluginout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/port/out"
)

const defaultStartTimeout = 3 * time.Second

// GRPCHost launches a plugin binary per call and tears it down afterwards.
// Notifier plugins are short-lived by design, so the launch cost is paid at
// most a few times per session.
type GRPCHost struct {
	callTimeout time.Duration
}

func NewGRPCHost(callTimeout time.Duration) pluginout.Host {
	if callTimeout <= 0 {
		callTimeout = 5 * time.Second
	}
	return &GRPCHost{callTimeout: callTimeout}
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Notify(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	err = client.Notify(callCtx, &pluginrpc.NotifyRequest{
		Kind:          notification.Kind,
		SessionID:     notification.SessionID,
		Subject:       notification.Subject,
		Minutes:       int32(notification.Minutes),
		Streak:        int32(notification.Streak),
		TodaySessions: int32(notification.TodaySessions),
		TotalMinutes:  int32(notification.TotalMinutes),
		Message:       notification.Message,
		AtUnix:        notification.At.Unix(),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (pluginrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.callTimeout)
}
