package bootstrap

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	accountinadapter "cutrack/internal/modules/account/adapter/in"
	accountoutadapter "cutrack/internal/modules/account/adapter/out"
	accountservice "cutrack/internal/modules/account/service"
	accountusecase "cutrack/internal/modules/account/usecase"
	statsinadapter "cutrack/internal/modules/stats/adapter/in"
	statsoutadapter "cutrack/internal/modules/stats/adapter/out"
	statsservice "cutrack/internal/modules/stats/service"
	statsusecase "cutrack/internal/modules/stats/usecase"
	tasksinadapter "cutrack/internal/modules/tasks/adapter/in"
	tasksoutadapter "cutrack/internal/modules/tasks/adapter/out"
	tasksservice "cutrack/internal/modules/tasks/service"
	tasksusecase "cutrack/internal/modules/tasks/usecase"
	timetrackinginadapter "cutrack/internal/modules/timetracking/adapter/in"
	timetrackingoutadapter "cutrack/internal/modules/timetracking/adapter/out"
	timetrackingservice "cutrack/internal/modules/timetracking/service"
	timetrackingusecase "cutrack/internal/modules/timetracking/usecase"
	trackerinadapter "cutrack/internal/modules/tracker/adapter/in"
	trackeroutadapter "cutrack/internal/modules/tracker/adapter/out"
	trackerdto "cutrack/internal/modules/tracker/dto"
	trackerin "cutrack/internal/modules/tracker/port/in"
	trackerservice "cutrack/internal/modules/tracker/service"
	trackerusecase "cutrack/internal/modules/tracker/usecase"
	"cutrack/internal/platform/clickup"
	"cutrack/internal/platform/clock"
	"cutrack/internal/platform/config"
	"cutrack/internal/platform/id"
	"cutrack/internal/platform/kv"
	"cutrack/internal/platform/logging"
	uiapp "cutrack/internal/ui/app"
)

type App struct {
	Config     config.Config
	Logger     zerolog.Logger
	AccountCLI accountinadapter.CLIHandler
	TasksCLI   tasksinadapter.CLIHandler
	TrackerCLI trackerinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	EntriesCLI timetrackinginadapter.CLIHandler
	Tracker    trackerin.Usecase

	store *kv.SQLiteStore
}

// New wires every module on one SQLite store and restores any persisted
// session.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: logging.DefaultConfig().TimeFormat,
		Output:     os.Stderr,
	})
	return NewWithLogger(ctx, cfg, logger)
}

func NewWithLogger(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := kv.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	client := clickup.New(cfg.APIBaseURL, nil, logging.Component(logger, "clickup"))

	accountUC := accountusecase.NewInteractor(
		accountservice.NewAccountService(
			accountoutadapter.NewKVCredentialStore(store),
			accountoutadapter.NewClickUpIdentityGateway(client),
		),
		logging.Component(logger, "account"),
	)

	entriesUC := timetrackingusecase.NewInteractor(
		timetrackingservice.NewTimeTrackingService(clk, timetrackingoutadapter.NewClickUpEntryGateway(client)),
		logging.Component(logger, "timetracking"),
	)

	tasksUC := tasksusecase.NewInteractor(
		tasksservice.NewTasksService(
			clk,
			tasksoutadapter.NewClickUpTaskGateway(client),
			tasksoutadapter.NewKVMyTaskStore(store),
			tasksoutadapter.NewAccountCredentials(accountUC),
		),
		logging.Component(logger, "tasks"),
	)

	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackerService(
			clk,
			ids,
			trackeroutadapter.NewKVSnapshotStore(store),
			trackeroutadapter.NewKVHistoryStore(store, cfg.HistoryLimit),
			trackeroutadapter.NewTimeTrackingRecorder(accountUC, entriesUC, cfg.Billable),
			cfg.StaleAfter,
		),
		trackeroutadapter.NewTasksResolver(tasksUC),
		cfg.TickInterval,
		logging.Component(logger, "tracker"),
	)
	trackerUC.Subscribe(tasksinadapter.NewTrackerListener(tasksUC, logging.Component(logger, "tasks")).Handle)

	statsUC := statsusecase.NewInteractor(
		statsservice.NewStatsService(
			clk,
			statsoutadapter.NewAccountSource(accountUC),
			statsoutadapter.NewTimeTrackingTotals(entriesUC),
			statsoutadapter.NewTrackerHistory(trackerUC),
			statsoutadapter.NewKVCache(store),
		),
		logging.Component(logger, "stats"),
	)

	app := &App{
		Config:     cfg,
		Logger:     logger,
		AccountCLI: accountinadapter.NewCLIHandler(accountUC),
		TasksCLI:   tasksinadapter.NewCLIHandler(tasksUC),
		TrackerCLI: trackerinadapter.NewCLIHandler(trackerUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		EntriesCLI: timetrackinginadapter.NewCLIHandler(entriesUC),
		Tracker:    trackerUC,
		store:      store,
	}

	if _, err := trackerUC.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("previous session not restored")
	}
	return app, nil
}

// Close stops the ticker, keeping any running session for the next
// process, and closes the store.
func (a *App) Close() error {
	a.Tracker.Close()
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TasksCLI, app.TrackerCLI, app.StatsCLI, app.AccountCLI, app.Config.HistoryDays)
	program := tea.NewProgram(model, tea.WithAltScreen())
	unsubscribe := app.Tracker.Subscribe(func(e trackerdto.Event) {
		program.Send(uiapp.TrackerEventMsg(e))
	})
	defer unsubscribe()
	_, err := program.Run()
	return err
}
