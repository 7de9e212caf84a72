package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-reasoner/born/example"
	"github.com/born-reasoner/born/internal/experiment"
	"github.com/born-reasoner/born/internal/store"
	"github.com/born-reasoner/born/problog"
)

var (
	noHistory    bool
	historyLimit int
	showRun      string
)

// newEngine returns the engine runs are evaluated with.
var newEngine = func() problog.Engine {
	return &problog.CLIEngine{
		Python:    cfg.ProbLog.Python,
		Directory: cfg.ProbLog.Directory,
		Logger:    logger,
	}
}

// runCmd runs a single example
var runCmd = &cobra.Command{
	Use:   "run NAME",
	Short: "Run an example through ProbLog",
	Long: `Translates the ontology of the example NAME, appends its Bayesian network and
its query and prints what ProbLog answers. Examples are NAME.owl, NAME.pl and
NAME.query in the examples directory or among the bundled examples.`,
	Args: cobra.ExactArgs(1),
	RunE: runExample,
}

// experimentCmd runs every example
var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Run every example and summarize the runs",
	Args:  cobra.NoArgs,
	RunE:  runExperiment,
}

// historyCmd shows recorded runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	for _, c := range []*cobra.Command{runCmd, experimentCmd} {
		c.Flags().BoolVar(&noHistory, "no-history", false, "Don't record the runs")
		c.Flags().BoolVar(&filterEL, "filter", false, "Drop axioms outside EL before translating")
		c.Flags().BoolVar(&skipUnsupported, "skip-unsupported", false, "Skip axioms without a translation instead of failing")
	}
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs, 0 for all")
	historyCmd.Flags().StringVar(&showRun, "show", "", "Print the output of the run with this ID")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func exampleFS() fs.FS {
	if examples == "" {
		return example.Bundled
	}
	return example.DirFS(examples)
}

func openStore(ctx context.Context) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return store.Open(ctx, cfg.Store)
}

// newRunner returns a runner and a function which releases its resources.
func newRunner(ctx context.Context, cmd *cobra.Command) (*experiment.Runner, func(), error) {
	r := experiment.Runner{
		Translator: translator(cmd),
		Processor: &problog.Processor{
			Engine:  newEngine(),
			WorkDir: cfg.WorkDir,
			Logger:  logger,
		},
		FilterEL:    filterEL || cfg.FilterEL,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
	if noHistory {
		return &r, func() {}, nil
	}

	s, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	r.Recorder = s
	return &r, func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}, nil
}

func runExample(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	ex, err := example.Lookup(exampleFS(), ".", args[0])
	if err != nil {
		return err
	}

	r, done, err := newRunner(ctx, cmd)
	if err != nil {
		return err
	}
	defer done()

	run, err := r.RunExample(ctx, ex)
	if err != nil {
		return err
	}
	if run.Failed() {
		return errors.New(run.Err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), run.Output)
	return err
}

func runExperiment(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	exs, err := example.Load(exampleFS(), ".")
	if err != nil {
		return err
	}

	r, done, err := newRunner(ctx, cmd)
	if err != nil {
		return err
	}
	defer done()

	runs, err := r.Run(ctx, exs)
	if err != nil {
		return err
	}
	return printRuns(cmd, runs)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if showRun != "" {
		id, err := ulid.ParseStrict(showRun)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", showRun, err)
		}
		run, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if run.Failed() {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), run.Err)
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), run.Output)
		return err
	}

	runs, err := s.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	return printRuns(cmd, runs)
}

func printRuns(cmd *cobra.Command, runs []store.Run) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXAMPLE\tSTARTED\tDURATION\tSTATUS")
	for _, r := range runs {
		status := "ok"
		if r.Failed() {
			status = "failed: " + r.Err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Example, r.Started.Format(time.RFC3339), r.Duration.Round(time.Millisecond), status)
	}
	return w.Flush()
}
