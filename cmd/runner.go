package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/insure/internal/repositories"
	"github.com/desertthunder/insure/internal/services"
	"github.com/desertthunder/insure/internal/session"
	"github.com/desertthunder/insure/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	db      *sql.DB
	session *session.Store
	svc     services.Service
	history *repositories.SubmissionRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer

	// Pre-built dependencies, primarily for tests. When nil they are
	// constructed lazily from config on first use.
	DB      *sql.DB
	Session *session.Store
	Service services.Service
	History *repositories.SubmissionRepository
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		db:         opts.DB,
		session:    opts.Session,
		svc:        opts.Service,
		history:    opts.History,
	}
}

// SetLogger swaps the runner's logger, e.g. to a file logger before the TUI
// takes over the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// connect lazily builds the database, session store, history repository and
// API service from config. Safe to call from every command action.
func (r *Runner) connect() error {
	if r.db == nil && (r.session == nil || r.history == nil) {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		r.db = db
	}

	if r.session == nil {
		r.session = session.NewStore(repositories.NewTokenRepository(r.db), r.logger)
		r.session.Initialize()
	}

	if r.history == nil {
		r.history = repositories.NewSubmissionRepository(r.db)
	}

	if r.svc == nil {
		client := r.httpClient
		if client == nil {
			client = &http.Client{Timeout: time.Duration(r.config.API.TimeoutSeconds) * time.Second}
		}
		r.svc = services.NewInsureService(r.config.API.BaseURL, client, r.session, r.config.API.RequestsPerSecond)
	}

	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, quoteCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
