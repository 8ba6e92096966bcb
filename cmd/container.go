package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zendframework/maintainers/internal/config"
	"github.com/zendframework/maintainers/internal/logger"
	"github.com/zendframework/maintainers/internal/output"
	"github.com/zendframework/maintainers/internal/repository"
)

type globalOptions struct {
	verbose    bool
	logFormat  string
	configFile string
	dryRun     bool
}

// app carries the global options and builds the container on first use, after
// flags are parsed.
type app struct {
	opts globalOptions
	c    *container
}

func (a *app) container(cmd *cobra.Command) (*container, error) {
	if a.c != nil {
		return a.c, nil
	}
	c, err := newContainer(a.opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	a.c = c
	return c, nil
}

// container holds all the dependencies for the application.
type container struct {
	cfg     *config.Config
	logger  *zap.Logger
	printer *output.Printer

	fsRepo     repository.FileSystemRepository
	gitFactory repository.GitRepositoryFactory
	reportRepo repository.ReportRepository
	ghRepo     repository.GithubRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer(opts globalOptions, stdout, stderr io.Writer) (*container, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{
		Verbose: opts.verbose,
		Format:  logger.Format(opts.logFormat),
		Output:  zapcore.Lock(zapcore.AddSync(stderr)),
	})
	if err != nil {
		return nil, err
	}

	fsRepo := repository.NewOSFileSystem()
	var runner repository.CommandRunner = repository.NewExecRunner()
	if opts.dryRun {
		fsRepo = repository.NewDryRunFileSystem()
		runner = repository.NewDryRunRunner(log.Named("runner"))
	}
	runner = repository.NewLoggingRunner(runner, log.Named("runner"))

	// GitHub access is optional; commands that need it fail with ErrGithubTokenRequired
	ghRepo := repository.NewGithubNoopRepository()
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubRepository(cfg.GithubToken, log.Named("github"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GitHub repository: %w", err)
		}
	}

	return &container{
		cfg:        cfg,
		logger:     log,
		printer:    output.NewPrinter(stdout, opts.verbose),
		fsRepo:     fsRepo,
		gitFactory: repository.NewGitRepositoryFactory(runner),
		reportRepo: repository.NewJSONReportRepository(fsRepo, cfg.ReportDir, log.Named("report")),
		ghRepo:     ghRepo,
	}, nil
}
