package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"dronedelivery/cmd"
	"dronedelivery/internal/adapters/out/filesystem"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/pkg/errs"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// defaultCases are planned when plan is run without arguments.
var defaultCases = []string{"input_case1.json", "input_case2.json"}

const shutdownTimeout = 10 * time.Second

// app carries what every subcommand needs once the root pre-run has loaded it.
type app struct {
	envFile   string
	logLevel  string
	logFormat string

	config cmd.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dronedelivery",
		Short: "Assign delivery orders to drones and plan their tours",
		Long: `Plan drone deliveries from snapshot files or from snapshots stored in Postgres.

Examples:
  # Plan the default cases, writing output_case1.json and output_case2.json
  dronedelivery plan

  # Plan one YAML snapshot into a chosen file
  dronedelivery plan cases/monday.yaml --output plans/monday.json

  # Serve the HTTP API
  dronedelivery serve
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.load(c)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment (ignored when missing)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "text or json (overrides LOG_FORMAT)")

	root.AddCommand(
		newPlanCommand(a),
		newImportCommand(a),
		newServeCommand(a),
		newScheduleCommand(a),
		newMigrateCommand(a),
	)
	return root
}

func (a *app) load(c *cobra.Command) error {
	config, err := cmd.LoadConfig(a.envFile)
	if err != nil {
		return err
	}
	if c.Flags().Changed("log-level") {
		config.LogLevel = a.logLevel
	}
	if c.Flags().Changed("log-format") {
		config.LogFormat = a.logFormat
	}

	logger, err := cmd.NewLogger(os.Stderr, config.LogLevel, config.LogFormat)
	if err != nil {
		return err
	}

	a.config = config
	a.logger = logger
	return nil
}

// database opens the configured database and the composition root over it.
func (a *app) database() (cmd.CompositionRoot, *gorm.DB, error) {
	db, err := cmd.OpenDatabase(a.config)
	if err != nil {
		return cmd.CompositionRoot{}, nil, err
	}
	return cmd.NewCompositionRoot(a.config, db, a.logger), db, nil
}

func closeDatabase(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Closing database failed", "error", err)
	}
}

func newPlanCommand(a *app) *cobra.Command {
	var (
		output      string
		concurrency int
		rangePolicy string
	)

	c := &cobra.Command{
		Use:   "plan [input...]",
		Short: "Plan snapshot files and write plan files",
		Long: `Plan each input snapshot (JSON, or YAML by .yaml/.yml extension) and write the
assignments next to it. The output name replaces "input" with "output" in the
input file name, so cases/input_1.json is written to cases/output_1.json.

Without arguments the default cases input_case1.json and input_case2.json are planned.`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = defaultCases
			}
			if output != "" && len(args) != 1 {
				return errs.NewValueIsInvalidErrorWithCause("output", errors.New("--output needs exactly one input"))
			}

			config := a.config
			if c.Flags().Changed("concurrency") {
				config.Concurrency = concurrency
			}
			if c.Flags().Changed("range-policy") {
				config.RangePolicy = rangePolicy
			}
			if err := config.Validate(); err != nil {
				return err
			}

			pairs := make([]commands.Pair, len(args))
			for i, input := range args {
				pairs[i] = commands.DerivePair(input)
			}
			if output != "" {
				pairs[0].Output = output
			}

			batch, err := commands.NewPlanBatchCommand(pairs)
			if err != nil {
				return err
			}

			root := cmd.NewCompositionRoot(config, nil, a.logger)
			results, err := root.CreateFilePlanBatchCommandHandler().Handle(c.Context(), batch)
			if err != nil {
				return err
			}

			for _, r := range results {
				fmt.Fprintf(c.OutOrStdout(), "%s -> %s: %d assignments, %d unassigned, distance %d\n",
					r.Pair.Input, r.Pair.Output, len(r.Plan.Assignments()), len(r.Plan.Unassigned()), r.Plan.TotalDistance())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "", "output path, only with a single input")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "inputs planned in parallel (overrides PLANNER_CONCURRENCY)")
	c.Flags().StringVar(&rangePolicy, "range-policy", "",
		fmt.Sprintf("%s or %s (overrides PLANNER_RANGE_POLICY)", cmd.RangePolicyPerOrder, cmd.RangePolicyTour))
	return c
}

func newImportCommand(a *app) *cobra.Command {
	var name string

	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a snapshot file in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := filesystem.NewSnapshotFileReader().Read(c.Context(), args[0])
			if err != nil {
				return err
			}

			importCmd, err := commands.NewImportSnapshotCommand(name, s)
			if err != nil {
				return err
			}

			root, db, err := a.database()
			if err != nil {
				return err
			}
			defer closeDatabase(db, a.logger)

			return root.CreateImportSnapshotCommandHandler().Handle(c.Context(), importCmd)
		},
	}

	c.Flags().StringVar(&name, "name", "", "name the snapshot is stored under")
	_ = c.MarkFlagRequired("name")
	return c
}

func newServeCommand(a *app) *cobra.Command {
	var port string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning HTTP API",
		RunE: func(c *cobra.Command, _ []string) error {
			if c.Flags().Changed("port") {
				a.config.HTTPPort = port
			}

			root, db, err := a.database()
			if err != nil {
				return err
			}
			defer closeDatabase(db, a.logger)

			e, err := root.CreateRouter(c.Context())
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", a.config.HTTPPort))
			}()
			a.logger.Info("HTTP server started", "port", a.config.HTTPPort)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-c.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(ctx)
		},
	}

	c.Flags().StringVar(&port, "port", "", "listen port (overrides HTTP_PORT)")
	return c
}

func newScheduleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Replan stored snapshots on PLANNER_SCHEDULE until interrupted",
		RunE: func(c *cobra.Command, _ []string) error {
			root, db, err := a.database()
			if err != nil {
				return err
			}
			defer closeDatabase(db, a.logger)

			jobManager := root.CreateJobManager()
			if err := jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			<-c.Context().Done()
			return nil
		},
	}
}

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, db, err := a.database()
			if err != nil {
				return err
			}
			defer closeDatabase(db, a.logger)

			if err := root.Migrate(); err != nil {
				return err
			}
			a.logger.Info("Database schema is up to date")
			return nil
		},
	}
}
