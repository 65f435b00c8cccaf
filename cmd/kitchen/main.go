package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"kitchen/internal/bootstrap"
	ledgerdto "kitchen/internal/modules/ledger/dto"
	"kitchen/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "kitchen",
		Short:         "Stage hours, timer and notes for a small project team",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", ".", "workspace directory")

	root.AddCommand(newInitCmd(&dir))
	root.AddCommand(newTUICmd(&dir))
	root.AddCommand(newStageCmd(&dir))
	root.AddCommand(newTimerCmd(&dir))
	root.AddCommand(newLedgerCmd(&dir))
	root.AddCommand(newNoteCmd(&dir))
	root.AddCommand(newMoodCmd(&dir))
	root.AddCommand(newSummaryCmd(&dir))
	return root
}

func loadApp(dir string) (*bootstrap.App, error) {
	cfg, err := config.New(dir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp loads the workspace for one command and closes it afterwards.
func withApp(dir *string, run func(cmd *cobra.Command, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(*dir)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return run(cmd, app, args)
	}
}

func newInitCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default kitchen.yaml into the workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(*dir, config.StateDir, config.ProjectFileName)
			written, err := config.WriteDefaultProject(path)
			if err != nil {
				return err
			}
			if !written {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kept existing %s\n", path)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func newTUICmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the kitchen dashboard",
		RunE: withApp(dir, func(_ *cobra.Command, app *bootstrap.App, _ []string) error {
			return bootstrap.RunTUI(app)
		}),
	}
}

func newStageCmd(dir *string) *cobra.Command {
	stage := &cobra.Command{Use: "stage", Short: "Stage goal table"}

	stage.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stages with hours and progress",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			overview, err := app.LedgerCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			for _, s := range overview.Stages {
				printStage(cmd, s)
			}
			if overview.Timer.State == "running" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer: running on %s since %s\n", overview.Timer.StageName, overview.Timer.StartedAt.Local().Format(time.Kitchen))
			}
			return nil
		}),
	})
	return stage
}

func newTimerCmd(dir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Start, stop and inspect the stage timer"}

	var stage, author string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the timer on a stage",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.LedgerCLI.Start(context.Background(), stage, author)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer started: stage=%s author=%s at=%s\n", out.StageName, out.Author, out.StartedAt.Format(time.RFC3339))
			return nil
		}),
	}
	startCmd.Flags().StringVar(&stage, "stage", "", "stage name or id")
	startCmd.Flags().StringVar(&author, "author", "", "who is working")
	_ = startCmd.MarkFlagRequired("stage")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and add the elapsed hours to the ledger",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.LedgerCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer stopped: stage=%s hours=%.4f total=%.2f progress=%.2f%% entry=%s\n", out.StageName, out.Hours, out.TotalHours, out.Progress*100, out.EntryID)
			return nil
		}),
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the running timer without touching the ledger",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.LedgerCLI.Reset(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer reset: stage=%s started=%s\n", out.StageName, out.StartedAt.Format(time.RFC3339))
			return nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the elapsed time of the running timer",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.LedgerCLI.Display(context.Background())
			if err != nil {
				return err
			}
			if !out.Running {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s idle\n", out.Text)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s author=%s\n", out.Text, out.StageName, out.Author)
			return nil
		}),
	}

	timer.AddCommand(startCmd, stopCmd, resetCmd, showCmd)
	return timer
}

func newLedgerCmd(dir *string) *cobra.Command {
	ledger := &cobra.Command{Use: "ledger", Short: "Accumulated stage hours"}

	var clearStage string
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Zero one stage, or every stage when --stage is omitted",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			overview, err := app.LedgerCLI.ClearLedger(context.Background(), clearStage)
			if err != nil {
				return err
			}
			for _, s := range overview.Stages {
				printStage(cmd, s)
			}
			return nil
		}),
	}
	clearCmd.Flags().StringVar(&clearStage, "stage", "", "stage name or id")

	var historyStage string
	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List completed timer runs, newest first",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			entries, err := app.LedgerCLI.History(context.Background(), historyStage, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no work logged")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2fh\t%s\n", e.StoppedAt.Local().Format("2006-01-02 15:04"), e.StageName, e.Author, e.Hours, e.ID)
			}
			return nil
		}),
	}
	historyCmd.Flags().StringVar(&historyStage, "stage", "", "only this stage")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "maximum entries (0 for all)")

	ledger.AddCommand(clearCmd, historyCmd)
	return ledger
}

func newNoteCmd(dir *string) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Team note feed"}

	var author, text string
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Append a note to the feed",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.FeedCLI.Post(context.Background(), author, text)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note #%d posted by %s\n", out.Seq, out.Author)
			return nil
		}),
	}
	postCmd.Flags().StringVar(&author, "author", "", "member posting the note")
	postCmd.Flags().StringVar(&text, "text", "", "note text")
	_ = postCmd.MarkFlagRequired("author")
	_ = postCmd.MarkFlagRequired("text")

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print notes in posting order",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			notes, err := app.FeedCLI.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notes")
				return nil
			}
			for _, n := range notes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%s): %s\n", n.Seq, n.Author, humanize.Time(n.PostedAt), n.Text)
			}
			return nil
		}),
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "only the latest N notes (0 for all)")

	note.AddCommand(postCmd, listCmd)
	return note
}

func newMoodCmd(dir *string) *cobra.Command {
	mood := &cobra.Command{Use: "mood", Short: "Member workload indicators"}

	var member, value string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set a member's workload",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.FeedCLI.SetWorkload(context.Background(), member, value)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", out.Member, out.Value)
			return nil
		}),
	}
	setCmd.Flags().StringVar(&member, "member", "", "member name")
	setCmd.Flags().StringVar(&value, "value", "", "light|steady|busy|swamped")
	_ = setCmd.MarkFlagRequired("member")
	_ = setCmd.MarkFlagRequired("value")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show every member's workload",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			board, err := app.FeedCLI.Board(context.Background())
			if err != nil {
				return err
			}
			set := map[string]string{}
			for _, w := range board.Workloads {
				set[w.Member] = w.Value
			}
			members := board.Members
			if len(members) == 0 {
				for _, w := range board.Workloads {
					members = append(members, w.Member)
				}
			}
			for _, m := range members {
				value := set[m]
				if value == "" {
					value = "unset"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m, value)
			}
			return nil
		}),
	}

	mood.AddCommand(setCmd, listCmd)
	return mood
}

func newSummaryCmd(dir *string) *cobra.Command {
	var findings, audience string
	var write, render bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize stage progress and the latest note",
		RunE: withApp(dir, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			ctx := context.Background()
			var text string
			if write {
				out, err := app.SummaryCLI.Export(ctx, findings, audience)
				if err != nil {
					return err
				}
				text = out.Summary.Markdown
				defer func() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "summary written to %s (progress: %s)\n", out.Path, out.ProgressPath)
				}()
			} else {
				out, err := app.SummaryCLI.Summarize(ctx, findings, audience)
				if err != nil {
					return err
				}
				text = out.Markdown
			}
			if render {
				rendered, err := glamour.Render(text, "dark")
				if err != nil {
					return fmt.Errorf("render summary: %w", err)
				}
				text = rendered
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		}),
	}
	cmd.Flags().StringVar(&findings, "findings", "", "pasted findings; only the first sentence is kept")
	cmd.Flags().StringVar(&audience, "audience", "", "who the summary is for (default: all members)")
	cmd.Flags().BoolVar(&write, "write", false, "also write the summary under .kitchen/summaries and PROGRESS.md")
	cmd.Flags().BoolVar(&render, "render", false, "render markdown for the terminal")
	return cmd
}

func printStage(cmd *cobra.Command, s ledgerdto.StageOutput) {
	progress := fmt.Sprintf("%.2f%%", s.Progress*100)
	if s.ProgressErr != "" {
		progress = "n/a"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f/%.0f %s\t%s\n", s.ID, s.Name, s.Hours, s.Goal, s.Unit, progress)
}
