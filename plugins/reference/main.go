package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-plugin"

	pluginrpc "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/adapter/out/rpc"
)

// Reference notifier: appends every event to notifications.log next to the
// binary. Useful as a template for real desktop or webhook notifiers.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"notify"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *pluginrpc.NotifyRequest) (*pluginrpc.Empty, error) {
	line := fmt.Sprintf("%s kind=%s session=%s subject=%q minutes=%d streak=%d today=%d total=%d message=%q\n",
		time.Unix(in.AtUnix, 0).UTC().Format(time.RFC3339),
		in.Kind, in.SessionID, in.Subject, in.Minutes, in.Streak, in.TodaySessions, in.TotalMinutes, in.Message)

	f, err := os.OpenFile(logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open notification log: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(line); err != nil {
		return nil, fmt.Errorf("write notification log: %w", err)
	}
	return &pluginrpc.Empty{}, nil
}

func logPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "notifications.log"
	}
	return filepath.Join(filepath.Dir(exe), "notifications.log")
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
