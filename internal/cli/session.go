package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pubfs/internal/config"
	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/internal/logging"
	"github.com/vvka-141/pubfs/internal/retry"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// session carries what every tree command needs: the resolved settings, a
// logger bound to the command's stderr (discarding everything under --quiet)
// and a retry executor built from the settings.
type session struct {
	cfg      *config.ProjectConfig
	logger   pubfs.Logger
	executor *retry.Executor
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Resolve(getConfigDir(cmd))
	if err != nil {
		return nil, err
	}
	baseDelay, err := cfg.BaseDelay()
	if err != nil {
		return nil, err
	}

	var logger pubfs.Logger = logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	if getQuietFlag(cmd) {
		logger = logging.NewNullLogger()
	}
	executor := retry.NewExecutor(
		retry.NewFilesystemErrorClassifier(),
		retry.NewExponentialBackoff(cfg.Retry.Attempts, retry.WithBaseDelay(baseDelay)),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("attempt %d failed: %v; retrying in %s", attempt, err, delay)
	})

	return &session{cfg: cfg, logger: logger, executor: executor}, nil
}

// copyOptions merges flags with settings. Flags win only when set explicitly.
func (s *session) copyOptions(cmd *cobra.Command, overwrite bool, algorithm string) []fstree.CopyOption {
	if !cmd.Flags().Changed("overwrite") {
		overwrite = s.cfg.Overwrite
	}
	if algorithm == "" {
		algorithm = s.cfg.HashAlgorithm
	}
	return []fstree.CopyOption{
		fstree.WithOverwrite(overwrite),
		fstree.WithHashAlgorithm(algorithm),
		fstree.WithRetry(s.executor),
	}
}

// commandContext returns a context cancelled on Ctrl+C or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
