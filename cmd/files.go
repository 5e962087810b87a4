package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"timingcfg/feature/timing"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// fileOp is one per-file operation of the timing service.
type fileOp func(ctx context.Context, path string) (*timing.Outcome, error)

var (
	okColor      = color.New(color.FgGreen)
	planColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed, color.Bold)
	unchangedFmt = color.New(color.Faint)
)

// runFiles applies op to every file. A failing file is reported and the
// rest still run; the returned error counts the failures.
func runFiles(ctx context.Context, w io.Writer, log *zap.Logger, files []string, op fileOp) error {
	if ctx == nil {
		ctx = context.Background()
	}

	failed := 0
	for _, path := range files {
		out, err := op(ctx, path)
		if err != nil {
			failed++
			log.Error("failed to process file", zap.String("file", path), zap.Error(err))
			failColor.Fprintf(w, "FAIL   %s: %v\n", path, err)
			continue
		}
		printOutcome(w, out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func printOutcome(w io.Writer, out *timing.Outcome) {
	changes := strings.Join(out.Changes, ", ")
	switch {
	case out.Written && changes != "":
		okColor.Fprintf(w, "WROTE  %s -> %s (%s)\n", out.Path, out.Output, changes)
	case out.Written:
		okColor.Fprintf(w, "WROTE  %s -> %s\n", out.Path, out.Output)
	case changes != "":
		planColor.Fprintf(w, "PLAN   %s -> %s (%s)\n", out.Path, out.Output, changes)
	default:
		unchangedFmt.Fprintf(w, "OK     %s\n", out.Path)
	}
}
