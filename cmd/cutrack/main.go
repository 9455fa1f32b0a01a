package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cutrack/internal/bootstrap"
	trackerdto "cutrack/internal/modules/tracker/dto"
	"cutrack/internal/platform/config"
	"cutrack/internal/platform/timeutil"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir string
	output  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "cutrack",
		Short:         "ClickUp time tracking from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch opts.output {
			case outputText, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("--output must be text, json or yaml")
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (defaults to the user config dir)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text|json|yaml")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newAuthCmd(opts))
	root.AddCommand(newTasksCmd(opts))
	root.AddCommand(newTrackCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newEntriesCmd(opts))
	return root
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	dataDir := opts.dataDir
	if strings.TrimSpace(dataDir) == "" {
		dir, err := config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp loads the application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := loadApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the cutrack terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newAuthCmd(opts *rootOptions) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "ClickUp credentials"}

	var token string
	login := &cobra.Command{
		Use:   "login --token <token>",
		Short: "Validate and store a personal API token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(token) == "" {
				token = os.Getenv("CUTRACK_TOKEN")
			}
			if strings.TrimSpace(token) == "" {
				return fmt.Errorf("--token is required")
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.Login(ctx, token)
				if err != nil {
					return err
				}
				out.Token = ""
				return render(cmd, opts.output, out, func(p *printer) {
					p.line("logged in as %s (%s)", out.Username, out.Email)
				})
			})
		},
	}
	login.Flags().StringVar(&token, "token", "", "personal API token (or CUTRACK_TOKEN)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AccountCLI.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				out.Token = ""
				return render(cmd, opts.output, out, func(p *printer) {
					if !out.Authenticated {
						p.line("not logged in")
						return
					}
					p.line("user: %s\nid: %s\nemail: %s", out.Username, out.UserID, out.Email)
				})
			})
		},
	}

	teams := &cobra.Command{
		Use:   "teams",
		Short: "List workspaces visible to the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.Teams(ctx)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					for _, t := range out {
						p.line("%s\t%s", t.ID, t.Name)
					}
				})
			})
		},
	}

	auth.AddCommand(login, logout, whoami, teams)
	return auth
}

func newTasksCmd(opts *rootOptions) *cobra.Command {
	tasks := &cobra.Command{Use: "tasks", Short: "Assigned tasks and the my-tasks list"}

	tasks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List open tasks assigned to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.List(ctx)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					if len(out) == 0 {
						p.line("no tasks")
						return
					}
					for _, t := range out {
						p.line("%s\t%s\t%s\t%s", t.ID, t.Status, t.ProjectName, t.Name)
					}
				})
			})
		},
	})

	tasks.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search assigned tasks by name, id or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Search(ctx, query)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					for _, t := range out {
						mark := " "
						if t.InMyTasks {
							mark = "*"
						}
						p.line("%s %s\t%s", mark, t.ID, t.Name)
					}
				})
			})
		},
	})

	var sortBy string
	mine := &cobra.Command{
		Use:   "mine",
		Short: "Show the my-tasks list with tracked totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Mine(ctx, sortBy)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					if len(out) == 0 {
						p.line("my tasks is empty")
						return
					}
					for _, t := range out {
						p.line("%s\t%s\t%s\t%s", t.Task.ID, t.TrackingState, t.TotalTrackedFormatted, t.Task.Name)
					}
				})
			})
		},
	}
	mine.Flags().StringVar(&sortBy, "sort", "newest", "sort order: newest|oldest|name|project")

	add := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a task to my tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Add(ctx, args[0])
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					if !out.Added {
						p.line("%s is already in my tasks", out.Task.Task.ID)
						return
					}
					p.line("added %s (%s)", out.Task.Task.Name, out.Task.Task.ID)
				})
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Remove a task from my tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				removed, err := app.TasksCLI.Remove(ctx, args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("%s is not in my tasks", args[0])
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}

	clearCompleted := &cobra.Command{
		Use:   "clear-completed",
		Short: "Drop completed tasks from my tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.TasksCLI.ClearCompleted(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %d completed tasks\n", n)
				return nil
			})
		},
	}

	tasks.AddCommand(mine, add, remove, clearCompleted)
	return tasks
}

func newTrackCmd(opts *rootOptions) *cobra.Command {
	track := &cobra.Command{Use: "track", Short: "Tracking session lifecycle"}

	var taskName string
	start := &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start tracking a task, stopping any other session first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TrackerCLI.Start(ctx, args[0], taskName)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					if out.Previous != nil {
						p.line("stopped %s after %s", out.Previous.TaskID, timeutil.FormatSeconds(out.Previous.DurationSeconds))
					}
					if out.AlreadyRunning {
						p.line("already tracking %s since %s", out.TaskID, out.StartedAt.Format(time.Kitchen))
						return
					}
					p.line("tracking %s (%s) session=%s", out.TaskID, out.TaskName, out.SessionID)
				})
			})
		},
	}
	start.Flags().StringVar(&taskName, "name", "", "task name (looked up when empty)")

	var stopTaskID string
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the active session and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TrackerCLI.Stop(ctx, stopTaskID)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					p.line("stopped %s after %s", out.TaskID, timeutil.FormatSeconds(out.DurationSeconds))
					if out.RemoteEntryID == "" {
						p.line("saved locally only")
					}
				})
			})
		},
	}
	stop.Flags().StringVar(&stopTaskID, "task-id", "", "only stop when this task is active")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out := app.TrackerCLI.Status(ctx)
				return render(cmd, opts.output, out, func(p *printer) {
					if !out.Active {
						p.line("idle")
						return
					}
					p.line("%s %s (%s)", out.ElapsedFormatted, out.TaskID, out.TaskName)
				})
			})
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Follow the active session until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer cancel()

				w := cmd.OutOrStdout()
				unsubscribe := app.Tracker.Subscribe(func(e trackerdto.Event) {
					switch e.Kind {
					case trackerdto.EventTick:
						_, _ = fmt.Fprintf(w, "\r%s %s", timeutil.FormatSeconds(e.Seconds), e.TaskName)
					case trackerdto.EventStopped:
						_, _ = fmt.Fprintf(w, "\nstopped %s after %s\n", e.TaskID, timeutil.FormatSeconds(e.Seconds))
					case trackerdto.EventError, trackerdto.EventRemoteSyncFailed:
						_, _ = fmt.Fprintf(w, "\n%s: %v\n", e.Kind, e.Err)
					}
				})
				defer unsubscribe()

				if !app.TrackerCLI.Status(ctx).Active {
					_, _ = fmt.Fprintln(w, "idle")
					return nil
				}
				<-ctx.Done()
				_, _ = fmt.Fprintln(w)
				return nil
			})
		},
	}

	track.AddCommand(start, stop, status, watch)
	return track
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today and this week totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out := app.StatsCLI.Productivity(ctx)
				return render(cmd, opts.output, out, func(p *printer) {
					p.line("today: %s\nweek:  %s (%s)\nsource: %s", out.TodayFormatted, out.WeekFormatted, out.WeekRange, out.Source)
				})
			})
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List locally recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				n := days
				if !cmd.Flags().Changed("days") {
					n = app.Config.HistoryDays
				}
				out, err := app.TrackerCLI.History(ctx, n)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					if len(out) == 0 {
						p.line("no history")
						return
					}
					for _, r := range out {
						synced := "local"
						if r.RemoteEntryID != "" {
							synced = "synced"
						}
						p.line("%s\t%s\t%s\t%s", r.Date, timeutil.FormatSeconds(r.Duration), synced, r.TaskID)
					}
				})
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "limit to the last N days (0 for all)")
	return cmd
}

func newEntriesCmd(opts *rootOptions) *cobra.Command {
	var since time.Duration
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List remote time entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				account, err := app.AccountCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				if !account.Authenticated {
					return fmt.Errorf("not logged in: run cutrack auth login")
				}
				teamID, err := app.AccountCLI.Team(ctx)
				if err != nil {
					return err
				}
				end := time.Now()
				out, err := app.EntriesCLI.Entries(ctx, account.Token, teamID, account.UserID, end.Add(-since), end)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(p *printer) {
					for _, e := range out {
						p.line("%s\t%s\t%s\t%s", e.Start.Format("2006-01-02 15:04"), timeutil.FormatMillis(e.DurationMS), e.TaskID, e.Description)
					}
				})
			})
		},
	}
	cmd.Flags().DurationVar(&since, "since", 7*24*time.Hour, "look back this far")
	return cmd
}
