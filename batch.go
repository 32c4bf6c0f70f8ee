package stepmark

import (
	"image"

	"github.com/gogpu/stepmark/internal/parallel"
)

// BatchResult is the outcome of flattening one step of a batch.
type BatchResult struct {
	Step  StepID
	Image *image.RGBA // nil when Err is set
	Err   error
}

// FlattenBatch flattens the given steps on up to workers goroutines
// (GOMAXPROCS when workers <= 0) and returns one result per step, in the
// order of ids.
//
// The annotation state of every step is captured on the calling goroutine
// before any work starts, so the document may be edited again as soon as
// FlattenBatch returns; it must not be edited while it runs. src must be
// safe for concurrent use.
func FlattenBatch(d *Document, src ImageSource, ids []StepID, workers int) []BatchResult {
	states := make([]StepState, len(ids))
	errs := make([]error, len(ids))
	for i, id := range ids {
		states[i], errs[i] = d.State(id)
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	results := parallel.Map(pool, len(ids), func(i int) BatchResult {
		if errs[i] != nil {
			return BatchResult{Step: ids[i], Err: errs[i]}
		}
		img, err := flattenStep(ids[i], states[i], src)
		return BatchResult{Step: ids[i], Image: img, Err: err}
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	Logger().Info("stepmark: batch flattened",
		"steps", len(ids), "failed", failed, "workers", pool.Workers())
	return results
}
