package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ankivoice/internal/config"
	"ankivoice/internal/generate"
	"ankivoice/internal/logging"
	"ankivoice/internal/services"
	"ankivoice/internal/workflow"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	runID        string

	dotenvOnce sync.Once

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	inputOnce sync.Once
	input     *bufio.Reader
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		runID:        uuid.NewString(),
	}
}

// loadDotEnv reads .env from the working directory. Variables already set in
// the environment win, and a missing file is not an error.
func (c *commandContext) loadDotEnv() {
	c.dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// stdin returns one buffered reader shared by every prompt of a run, so
// answers piped in together are consumed in order.
func (c *commandContext) stdin(cmd *cobra.Command) *bufio.Reader {
	c.inputOnce.Do(func() {
		c.input = bufio.NewReader(cmd.InOrStdin())
	})
	return c.input
}

// operationContext tags the command context with the run id and mode for
// structured logs.
func (c *commandContext) operationContext(cmd *cobra.Command, mode string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithMode(services.WithRunID(ctx, c.runID), mode)
}

// runner builds a workflow runner whose generation progress is written to
// out: a progress bar on terminals, one block per task otherwise.
func (c *commandContext) runner(out io.Writer, opts ...workflow.Option) (*workflow.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	var reporter generate.Reporter = generate.NewConsoleReporter(out)
	if shouldColorize(out) {
		reporter = generate.NewBarReporter(out)
	}
	base := []workflow.Option{
		workflow.WithLogger(logger),
		workflow.WithReporter(reporter),
	}
	return workflow.NewRunner(cfg, append(base, opts...)...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
