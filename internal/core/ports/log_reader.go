package ports

// LogPageSize is the number of log lines shown per page.
const LogPageSize = 30

// LogReader provides paginated access to the append-only service log,
// most-recent-first. Offset counts lines back from the end of the stream:
// offset 0 is the newest page, offset 30 the page before it, and so on.
type LogReader interface {
	// Page returns up to LogPageSize lines ending offset lines before the
	// end of the log. An empty slice means there are no more lines.
	Page(offset int) ([]string, error)
	// Path is the location of the whole log artifact for file delivery.
	Path() string
}
