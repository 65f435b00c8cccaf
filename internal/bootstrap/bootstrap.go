package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	feedinadapter "kitchen/internal/modules/feed/adapter/in"
	feedoutadapter "kitchen/internal/modules/feed/adapter/out"
	feedservice "kitchen/internal/modules/feed/service"
	feedusecase "kitchen/internal/modules/feed/usecase"
	ledgerinadapter "kitchen/internal/modules/ledger/adapter/in"
	ledgeroutadapter "kitchen/internal/modules/ledger/adapter/out"
	ledgerdomain "kitchen/internal/modules/ledger/domain"
	ledgerservice "kitchen/internal/modules/ledger/service"
	ledgerusecase "kitchen/internal/modules/ledger/usecase"
	summaryinadapter "kitchen/internal/modules/summary/adapter/in"
	summaryoutadapter "kitchen/internal/modules/summary/adapter/out"
	summaryservice "kitchen/internal/modules/summary/service"
	summaryusecase "kitchen/internal/modules/summary/usecase"
	"kitchen/internal/platform/clock"
	"kitchen/internal/platform/config"
	"kitchen/internal/platform/id"
	"kitchen/internal/platform/logging"
	"kitchen/internal/platform/snapshot"
	uiapp "kitchen/internal/ui/app"
)

type App struct {
	LedgerCLI  ledgerinadapter.CLIHandler
	FeedCLI    feedinadapter.CLIHandler
	SummaryCLI summaryinadapter.CLIHandler
	Members    []string
	Logger     hclog.Logger

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Members: cfg.Project.Members, Logger: logger, closers: []io.Closer{logCloser}}

	goals, err := goalTable(cfg.Project)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	clk := clock.SystemClock{}
	snapshots := snapshot.NewFileStore(cfg.SnapshotPath)

	workLog, err := ledgeroutadapter.NewSQLiteWorkLog(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new work log: %w", err)
	}
	app.closers = append(app.closers, workLog)

	ledgerUC := ledgerusecase.NewInteractor(ledgerservice.NewLedgerService(
		clk,
		id.UUID{},
		goals,
		ledgeroutadapter.NewSnapshotStateStore(snapshots),
		workLog,
		logger,
	))
	feedUC := feedusecase.NewInteractor(feedservice.NewFeedService(
		clk,
		cfg.Project.Members,
		feedoutadapter.NewSnapshotFeedStore(snapshots),
		logger,
	))
	summaryUC := summaryusecase.NewInteractor(
		summaryservice.NewSummaryService(clk, cfg.Project.Members, logger),
		ledgerUC,
		feedUC,
		summaryoutadapter.NewMarkdownExporter(cfg.SummaryDir, cfg.ProgressPath),
	)

	app.LedgerCLI = ledgerinadapter.NewCLIHandler(ledgerUC)
	app.FeedCLI = feedinadapter.NewCLIHandler(feedUC)
	app.SummaryCLI = summaryinadapter.NewCLIHandler(summaryUC)
	logger.Debug("workspace loaded", "dir", cfg.Dir, "snapshot", cfg.SnapshotPath, "stages", len(goals.Stages()))
	return app, nil
}

// Close releases the work-log database and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Members, app.LedgerCLI, app.FeedCLI, app.SummaryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func goalTable(project config.Project) (ledgerdomain.GoalTable, error) {
	goals := make([]ledgerdomain.StageGoal, 0, len(project.Stages))
	for _, stage := range project.Stages {
		goals = append(goals, ledgerdomain.StageGoal{Name: stage.Name, Goal: stage.Goal, Unit: stage.Unit})
	}
	return ledgerdomain.NewGoalTable(goals)
}
