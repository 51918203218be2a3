package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"projectflow-workers/internal/common/database"
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/querybuilder"
	"projectflow-workers/internal/nlq/store"
	"projectflow-workers/internal/nlq/store/memory"
	"projectflow-workers/internal/nlq/store/postgres"
)

type runOptions struct {
	workspace string
	fixtures  string
	dsn       string
	today     string
	timeout   time.Duration
}

type runOutput struct {
	ProcessedQuery processor.ProcessedQuery `json:"processedQuery"`
	QueryResult    *querybuilder.QueryResult `json:"queryResult"`
	RowCount       int                       `json:"rowCount"`
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <question>",
		Short: "Process a question and execute its query plan",
		Long: `Process a question and execute its query plan against a workspace.

Rows come from --fixtures (a YAML dataset), --dsn (a PostgreSQL connection
string) or, when neither is given, database.postgres from --config.`,
		Example: `  nlq run --workspace W1 --fixtures configs/fixtures.example.yaml "list my overdue tasks"
  nlq run --workspace W1 --dsn "postgres://reader@localhost/projectflow?sslmode=disable" "who is available"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.workspace, "workspace", "w", "", "workspace id to scope the query to")
	cmd.Flags().StringVar(&opts.fixtures, "fixtures", "", "YAML dataset to query instead of a database")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&opts.today, "today", "", "evaluate date predicates as of this UTC date (YYYY-MM-DD)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "query timeout")
	_ = cmd.MarkFlagRequired("workspace")
	cmd.MarkFlagsMutuallyExclusive("fixtures", "dsn")

	return cmd
}

func (a *app) run(cmd *cobra.Command, opts *runOptions, question string) error {
	proc, err := a.processor()
	if err != nil {
		return err
	}

	s, closeStore, err := a.openStore(opts)
	if err != nil {
		return err
	}
	defer closeStore()

	builderOpts := []querybuilder.Option{querybuilder.WithLimits(a.limits())}
	if opts.today != "" {
		day, err := time.Parse(store.DateLayout, opts.today)
		if err != nil {
			return fmt.Errorf("invalid --today %q: %w", opts.today, err)
		}
		builderOpts = append(builderOpts, querybuilder.WithClock(func() time.Time { return day }))
	}
	builder := querybuilder.New(s, builderOpts...)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	processed := proc.Process(question)
	start := time.Now()
	result, err := builder.Execute(ctx, processed, opts.workspace)
	if err != nil {
		return fmt.Errorf("execute %s: %w", querybuilder.PlanFor(processed.Intent.Intent), err)
	}
	a.log.Debug("plan executed",
		zap.String("intent", processed.Intent.Intent),
		zap.String("plan", result.PlanUsed),
		zap.Int("rows", result.RowCount()),
		zap.Duration("took", time.Since(start)),
	)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(runOutput{
		ProcessedQuery: processed,
		QueryResult:    result,
		RowCount:       result.RowCount(),
	})
}

func (a *app) openStore(opts *runOptions) (store.Store, func(), error) {
	if opts.fixtures != "" {
		s, err := memory.Load(opts.fixtures)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}

	var pg *database.PostgresClient
	switch {
	case opts.dsn != "":
		db, err := sql.Open("postgres", opts.dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		pg = database.WrapPostgres(db)
	case a.cfg.Database.Postgres.Host != "":
		var err error
		pg, err = database.NewPostgres(a.cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.New("no data source: pass --fixtures, --dsn or a --config with database.postgres")
	}

	closeFn := func() { _ = pg.Close() }
	return postgres.New(pg.GetDB()), closeFn, nil
}

func (a *app) limits() querybuilder.Limits {
	l := a.cfg.Query.Limits
	return querybuilder.Limits{
		Projects:    l.Projects,
		Tasks:       l.Tasks,
		Resources:   l.Resources,
		General:     l.General,
		AvailableAt: l.AvailableAt,
		BusyBelow:   l.BusyBelow,
	}
}
