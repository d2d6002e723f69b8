package cli

import (
	"context"
	"time"

	"github.com/aretw0/dictshape/internal/loader"
	"github.com/aretw0/dictshape/pkg/merge"
	"github.com/google/uuid"
)

// RunMerge loads every counts file and merges them with the given strategy.
func RunMerge(ctx context.Context, env *Env, strategy merge.Strategy, paths []string) (*merge.Counts[float64], error) {
	runID := uuid.NewString()
	logger := env.Logger.With("run_id", runID)
	start := time.Now()

	inputs := make([]*merge.Counts[float64], 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := loader.LoadCounts(path)
		if err != nil {
			logger.Error("Counts Load Failed", "file", path, "error", err)
			return nil, err
		}
		logger.Debug("Counts Loaded", "file", path, "keys", c.Len())
		inputs = append(inputs, c)
	}

	out, err := merge.Merge(strategy, inputs...)
	if err != nil {
		return nil, err
	}
	env.Metrics.ObserveMerge(string(strategy), len(inputs), out.Len())

	logger.Info("Merge Completed",
		"strategy", string(strategy),
		"inputs", len(inputs),
		"keys", out.Len(),
		"duration", time.Since(start),
	)
	return out, nil
}
