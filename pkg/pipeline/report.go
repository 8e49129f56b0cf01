// Package pipeline wires matching, disambiguation, cleanup, simplification
// and topology encoding into the per-dataset builds.
package pipeline

import (
	"log/slog"
	"strings"
)

// Report summarises the coverage of one build.
type Report struct {
	Dataset  string
	Declared int
	Matched  int
	Missing  []string // declared names that produced no geometry
}

// Complete reports whether every declared feature was emitted.
func (r Report) Complete() bool {
	return len(r.Missing) == 0
}

// Log writes the coverage line and, when features are missing, a warning
// listing them.
func (r Report) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Coverage", "dataset", r.Dataset, "matched", r.Matched, "declared", r.Declared)
	if !r.Complete() {
		logger.Warn("Missing features", "dataset", r.Dataset, "count", len(r.Missing), "names", strings.Join(r.Missing, ", "))
	}
}
