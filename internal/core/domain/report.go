package domain

import (
	"fmt"
	"strings"
)

// RunReport summarizes one full pipeline run. A run that skip-marks some
// posts is still a successful run; the report is how those outcomes surface.
type RunReport struct {
	RunID string

	// Fetch stage.
	Fetched      int
	SkippedLag   int
	SkippedTitle int

	// Extraction stage.
	Extracted     int
	Unparsable    int
	SchemaInvalid int

	// Merge stage.
	Merged   int
	Held     int
	Excluded int

	// Retention stage.
	Pruned int

	// DatasetSize is the record count after the run.
	DatasetSize int

	// Unmapped lists alias-table misses seen during normalization, for
	// later curation of the alias tables.
	Unmapped []UnmappedLabel
}

// String renders the report for the command line.
func (r *RunReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", r.RunID)
	fmt.Fprintf(&b, "  fetched:        %d (lag-skipped %d, title-skipped %d)\n",
		r.Fetched, r.SkippedLag, r.SkippedTitle)
	fmt.Fprintf(&b, "  extracted:      %d (unparsable %d, schema-invalid %d)\n",
		r.Extracted, r.Unparsable, r.SchemaInvalid)
	fmt.Fprintf(&b, "  merged:         %d (held %d, excluded %d)\n",
		r.Merged, r.Held, r.Excluded)
	fmt.Fprintf(&b, "  pruned:         %d\n", r.Pruned)
	fmt.Fprintf(&b, "  dataset size:   %d\n", r.DatasetSize)
	if len(r.Unmapped) > 0 {
		fmt.Fprintf(&b, "  unmapped labels: %d\n", len(r.Unmapped))
	}
	return b.String()
}
