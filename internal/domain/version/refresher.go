package version

// Refresher regenerates the version table on a schedule so that a long-running process picks
// up the editions of new years as they arrive.
type Refresher interface {
	// Refresh regenerates the table now, returning true if new Versions were added
	Refresh() (bool, error)

	// Start begins refreshing on schedule
	Start() error

	// Stop stops refreshing, waiting for a running refresh to finish
	Stop()
}
