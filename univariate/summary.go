package univariate

import (
	"fmt"
	"io"
)

// WriteSummary writes the iteration count, the final iterate and the
// termination status of r.
func WriteSummary(w io.Writer, r *Result) error {
	_, err := fmt.Fprintf(w, "Iter: %d|Root: %v|\n", r.Iterations, r.Root)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Status: %v\n", r.Status)
	return err
}
