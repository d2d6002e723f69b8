package cli

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/dictshape/internal/loader"
	"github.com/aretw0/dictshape/pkg/schema"
	"github.com/google/uuid"
)

// ErrValidationFailed is returned when at least one record does not match.
var ErrValidationFailed = errors.New("validation failed")

// ValidationResult is the outcome for one record file.
type ValidationResult struct {
	File    string `json:"file"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`

	Failure *schema.ValidationError `json:"-"`
}

// RunValidate loads the template once and checks every record against it.
// Load and parse errors abort the run; validation failures are results.
func RunValidate(ctx context.Context, env *Env, templatePath string, recordPaths []string) ([]ValidationResult, error) {
	runID := uuid.NewString()
	logger := env.Logger.With("run_id", runID)
	start := time.Now()

	tmpl, err := loader.LoadTemplate(templatePath)
	if err != nil {
		logger.Error("Template Load Failed", "template", templatePath, "error", err)
		return nil, err
	}
	logger.Debug("Template Loaded", "template", templatePath, "keys", tmpl.Len(), "depth", tmpl.Depth())

	results := make([]ValidationResult, 0, len(recordPaths))
	for _, path := range recordPaths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		rec, err := loader.LoadRecord(path)
		if err != nil {
			env.Metrics.ObserveValidation(tmpl.Depth(), err)
			logger.Error("Record Load Failed", "record", path, "error", err)
			return results, err
		}

		checkErr := schema.Check(rec, tmpl)
		env.Metrics.ObserveValidation(tmpl.Depth(), checkErr)

		res := ValidationResult{File: path, Valid: checkErr == nil}
		if verr, ok := schema.AsValidationError(checkErr); ok {
			res.Message = verr.Error()
			res.Failure = verr
			logger.Info("Record Invalid", "record", path, "kind", string(verr.Kind), "path", verr.Path)
		} else {
			logger.Info("Record Valid", "record", path)
		}
		results = append(results, res)
	}

	logger.Info("Validation Completed",
		"template", templatePath,
		"records", len(results),
		"failed", countFailed(results),
		"duration", time.Since(start),
	)
	return results, nil
}

// Failed reports whether any result is invalid.
func Failed(results []ValidationResult) bool {
	return countFailed(results) > 0
}

func countFailed(results []ValidationResult) int {
	n := 0
	for _, r := range results {
		if !r.Valid {
			n++
		}
	}
	return n
}
