package cli

import "time"

// formatLocal renders a timestamp in the user's local zone. Stored times are
// UTC; everything the user reads should be wall-clock local.
func formatLocal(ts time.Time, layout string) string {
	return ts.Local().Format(layout)
}
