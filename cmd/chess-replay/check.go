package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chess-replay-go/internal/hashing"
	"github.com/lgbarn/chess-replay-go/internal/replay"
	"github.com/lgbarn/chess-replay-go/internal/worker"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate every move of each file's game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.Context(), args)
		},
	}
	cmd.Flags().IntVarP(&a.workers, "workers", "j", 1, "number of files checked in parallel")
	return cmd
}

// checkFile loads one file and plays its game to the end.
func checkFile(item worker.WorkItem) worker.ProcessResult {
	res := worker.ProcessResult{Path: item.Path, Index: item.Index}
	s, err := replay.Load(item.Path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Plies, res.Result = s.Len(), s.Result()
	if err := s.Seek(s.Len()); err != nil {
		res.Err = err
		return res
	}
	switch status := s.Status(); status {
	case replay.Checkmate, replay.Stalemate:
		res.Ended = status.String()
	}
	res.Signature = hashing.Sign(s.Snapshot(), s.SideToMove(), s.Moves())
	return res
}

func (a *app) runCheck(ctx context.Context, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := worker.CheckAll(ctx, paths, a.cfg.Workers, checkFile)

	out := a.cfg.OutputFile
	dups := hashing.NewDuplicateDetector(true, 0)
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
			fmt.Fprintf(out, "FAIL %v\n", r.Err)
			continue
		}
		line := fmt.Sprintf("ok   %s: %d plies, %s", r.Path, r.Plies, r.Result)
		if r.Ended != "" {
			line += ", " + r.Ended
		}
		if first, dup := dups.CheckAndAdd(r.Path, r.Signature); dup {
			line += ", duplicate of " + first
		}
		fmt.Fprintln(out, line)
	}

	a.logger.Info().
		Int("files", len(paths)).
		Int("checked", len(results)).
		Int("failed", failed).
		Int("duplicates", dups.DuplicateCount()).
		Int("workers", a.cfg.Workers).
		Msg("check finished")

	if len(results) < len(paths) {
		return fmt.Errorf("check interrupted after %d of %d files: %w", len(results), len(paths), ctx.Err())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
