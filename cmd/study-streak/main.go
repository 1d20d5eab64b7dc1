package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/bootstrap"
	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	timerdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/dto"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".study-streak"
	}
	return filepath.Join(home, ".study-streak")
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "study-streak",
		Short:         "Focus session timer with streaks, plans and focus rooms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newPlanCmd(&dataDir))
	root.AddCommand(newSubjectCmd(&dataDir))
	root.AddCommand(newRoomCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	root.AddCommand(newConfigCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(context.Background(), cfg)
}

// withApp wires an App for the duration of one command invocation.
func withApp(dataDir *string, run func(cmd *cobra.Command, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(*dataDir)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return run(cmd, app)
	}
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the study-streak terminal UI",
		RunE: withApp(dataDir, func(_ *cobra.Command, app *bootstrap.App) error {
			return bootstrap.RunTUI(app)
		}),
	}
}

func printStatus(cmd *cobra.Command, out timerdto.StatusOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %02d:%02d  state=%s\n",
		out.Status, out.Remaining/60, out.Remaining%60, out.State)
	if out.BreakState == "running" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "break  %02d:%02d\n",
			out.BreakRemaining/60, out.BreakRemaining%60)
	}
}

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Session timer lifecycle"}

	timer.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the focus countdown",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.Start(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	})

	timer.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running countdown",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	})

	var resetYes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the countdown, losing current progress",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.Reset(context.Background(), resetYes)
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	}
	reset.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	timer.AddCommand(reset)

	timer.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show current timer state",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	})

	timer.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the countdown in the foreground until it completes",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.Run(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	})

	var breakMinutes int
	breakCmd := &cobra.Command{Use: "break", Short: "Break timer"}
	breakStart := &cobra.Command{
		Use:   "start",
		Short: "Start a break countdown",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.StartBreak(context.Background(), breakMinutes)
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	}
	breakStart.Flags().IntVar(&breakMinutes, "minutes", 5, "break length in minutes")
	breakCmd.AddCommand(breakStart)
	breakCmd.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the break early",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.TimerCLI.EndBreak(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd, out)
			return nil
		}),
	})
	timer.AddCommand(breakCmd)

	return timer
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Study progress and streaks"}

	stats.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show totals and the current streak",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			ctx := context.Background()
			progress, err := app.StatsCLI.Progress(ctx)
			if err != nil {
				return err
			}
			streak, err := app.StatsCLI.Streak(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total=%dmin today=%d sessions streak=%d days\n",
				progress.TotalMinutes, progress.TodaySessions, streak.Streak)
			if streak.LastDate != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last study day: %s\n", streak.LastDate)
			}
			return nil
		}),
	})

	stats.AddCommand(&cobra.Command{
		Use:   "week",
		Short: "Show the last seven days as bars",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			ctx := context.Background()
			bars, err := app.StatsCLI.WeeklyBars(ctx)
			if err != nil {
				return err
			}
			cells, err := app.StatsCLI.Heatmap(ctx)
			if err != nil {
				return err
			}
			tail := cells
			if len(tail) > len(bars) {
				tail = tail[len(tail)-len(bars):]
			}
			for i, height := range bars {
				label, count := "", 0
				if i < len(tail) {
					label = tail[i].Date
					count = tail[i].Count
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", label, strings.Repeat("█", height), count)
			}
			return nil
		}),
	})

	stats.AddCommand(&cobra.Command{
		Use:   "heatmap",
		Short: "Show the last thirty days with per-day counts",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			cells, err := app.StatsCLI.Heatmap(context.Background())
			if err != nil {
				return err
			}
			for _, cell := range cells {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s\n", cell.Date, cell.Count, cell.Color)
			}
			return nil
		}),
	})

	return stats
}

func newPlanCmd(dataDir *string) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Daily study plan"}

	plan.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plan entries",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			entries, err := app.StatsCLI.Plan(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plan entries")
				return nil
			}
			for _, e := range entries {
				marker := " "
				if e.Done >= e.Target {
					marker = "✓"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%d/%d\n", marker, e.Subject, e.Done, e.Target)
			}
			return nil
		}),
	})

	plan.AddCommand(&cobra.Command{
		Use:   "add <subject> <target>",
		Short: "Add or update a plan entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.Atoi(args[len(args)-1])
			if err != nil {
				return fmt.Errorf("target must be a number")
			}
			subject := strings.Join(args[:len(args)-1], " ")
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				if err := app.StatsCLI.SetPlanTarget(context.Background(), subject, target); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plan: %s -> %d sessions\n", subject, target)
				return nil
			})(cmd, args)
		},
	})

	plan.AddCommand(&cobra.Command{
		Use:   "remove <subject>",
		Short: "Remove a plan entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := strings.Join(args, " ")
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				if err := app.StatsCLI.RemovePlanEntry(context.Background(), subject); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", subject)
				return nil
			})(cmd, args)
		},
	})

	plan.AddCommand(&cobra.Command{
		Use:   "clear-done",
		Short: "Reset all plan progress to zero",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			if err := app.StatsCLI.ClearPlanProgress(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "plan progress cleared")
			return nil
		}),
	})

	return plan
}

func newSubjectCmd(dataDir *string) *cobra.Command {
	subject := &cobra.Command{Use: "subject", Short: "Current study subject"}

	subject.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Set the subject for the next sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				if err := app.StatsCLI.SetCurrentSubject(context.Background(), name); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject: %s\n", name)
				return nil
			})(cmd, args)
		},
	})

	subject.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the current subject",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			name, err := app.StatsCLI.CurrentSubject(context.Background())
			if err != nil {
				return err
			}
			if name == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no subject set")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		}),
	})

	subject.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List per-subject totals",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			subjects, err := app.StatsCLI.Subjects(context.Background())
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no subjects yet")
				return nil
			}
			for _, s := range subjects {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dmin\t%d sessions\tlast=%s\n",
					s.Name, s.Minutes, s.Sessions, s.LastDate)
			}
			return nil
		}),
	})

	return subject
}

func newRoomCmd(dataDir *string) *cobra.Command {
	room := &cobra.Command{Use: "room", Short: "Shared focus room"}

	room.AddCommand(&cobra.Command{
		Use:   "join <code>",
		Short: "Join a focus group by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				group, err := app.RoomCLI.Join(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "joined %s (%d members)\n", group.Code, len(group.Members))
				return nil
			})(cmd, args)
		},
	})

	room.AddCommand(&cobra.Command{
		Use:   "leave",
		Short: "Leave the joined group",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			if err := app.RoomCLI.Leave(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "left group")
			return nil
		}),
	})

	room.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show who is focusing right now",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			group, err := app.RoomCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "group %s\n", group.Code)
			for _, member := range group.Members {
				marker := "○"
				if member.Focusing {
					marker = "●"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, member.Name)
			}
			return nil
		}),
	})

	return room
}

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Notifier plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed plugins and their health",
		RunE: withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s healthy=%t binary=%s", p.Name, p.Version, p.Healthy, p.Binary)
				if p.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", p.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		}),
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "check <name>",
		Short: "Probe one plugin's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				p, err := app.PluginCLI.Check(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s healthy=%t capabilities=%s\n",
					p.Name, p.Version, p.Healthy, strings.Join(p.Capabilities, ","))
				if p.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", p.Error)
				}
				return nil
			})(cmd, args)
		},
	})

	return plugin
}

func newConfigCmd(dataDir *string) *cobra.Command {
	var settingKey, settingValue string

	configCmd := &cobra.Command{Use: "config", Short: "Configuration and settings"}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "data=%s\ndb=%s\nplugins=%s\nroom=%s\nreminder=%s\nplugin_timeout=%s\n",
				cfg.DataDir, cfg.DBPath, cfg.PluginsPath, cfg.RoomBaseURL, cfg.ReminderInterval, cfg.PluginCallTimeout)
			return nil
		},
	})

	set := &cobra.Command{
		Use:   "set --key <key> --value <value>",
		Short: "Set a stored setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(settingKey) == "" {
				return fmt.Errorf("--key is required")
			}
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				if err := app.StatsCLI.SetSetting(context.Background(), settingKey, settingValue); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", settingKey, settingValue)
				return nil
			})(cmd, args)
		},
	}
	set.Flags().StringVar(&settingKey, "key", "", "setting key, e.g. "+statsdto.SettingSessionLength)
	set.Flags().StringVar(&settingValue, "value", "", "setting value")
	configCmd.AddCommand(set)

	var getKey string
	get := &cobra.Command{
		Use:   "get --key <key>",
		Short: "Read a stored setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(getKey) == "" {
				return fmt.Errorf("--key is required")
			}
			return withApp(dataDir, func(cmd *cobra.Command, app *bootstrap.App) error {
				value, err := app.StatsCLI.Setting(context.Background(), getKey)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})(cmd, args)
		},
	}
	get.Flags().StringVar(&getKey, "key", "", "setting key")
	configCmd.AddCommand(get)

	return configCmd
}
