package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"ordersvc/internal/config"
	"ordersvc/internal/domain"
)

// Runner discovers order files in the input directory and feeds them to the
// Processor one at a time. Succeeded files move to the processed directory,
// files that fail validation move to the error directory. Only an
// unreachable document store aborts the run.
type Runner struct {
	processor *Processor
	input     config.InputConfig
	logger    *zap.Logger
}

func NewRunner(processor *Processor, input config.InputConfig, logger *zap.Logger) *Runner {
	return &Runner{processor: processor, input: input, logger: logger}
}

// Run processes every *.xlsx and *.csv file in the input directory in
// lexical order.
func (r *Runner) Run(ctx context.Context) error {
	files, err := r.discover()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.logger.Warn("no order files found", zap.String("dir", r.input.Dir))
		return nil
	}

	for _, path := range files {
		r.logger.Info("processing file", zap.String("file", filepath.Base(path)))

		if _, err := r.processor.ProcessFile(ctx, path); err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return err
			}
			r.logger.Error("file rejected", zap.String("file", filepath.Base(path)), zap.Error(err))
			r.archive(path, r.input.ErrorDir)
			continue
		}
		r.archive(path, r.input.ProcessedDir)
	}
	return nil
}

func (r *Runner) discover() ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.xlsx", "*.csv"} {
		matches, err := filepath.Glob(filepath.Join(r.input.Dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan input dir: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// archive moves a handled file out of the input directory so reruns do not
// pick it up again. A failed move is logged, not fatal.
func (r *Runner) archive(path, destDir string) {
	if destDir == "" {
		return
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		r.logger.Warn("create archive dir failed", zap.String("dir", destDir), zap.Error(err))
		return
	}
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		r.logger.Warn("archive move failed", zap.String("file", path), zap.Error(err))
	}
}
