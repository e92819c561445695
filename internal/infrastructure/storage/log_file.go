package storage

import (
	"os"
	"strings"

	"github.com/stroyservice/intake-system/internal/core/ports"
)

// LogFile pages the append-only service log most-recent-first. The stream is
// read-only from this system's perspective; the logger owns all writes.
type LogFile struct {
	path string
}

func NewLogFile(path string) *LogFile {
	return &LogFile{path: path}
}

// Page returns up to ports.LogPageSize lines ending offset lines before the
// end of the log, in their original order. An empty result means the offset
// has walked past the start of the stream.
func (l *LogFile) Page(offset int) ([]string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}

	end := len(lines) - offset
	if end <= 0 {
		return nil, nil
	}
	start := end - ports.LogPageSize
	if start < 0 {
		start = 0
	}
	return lines[start:end], nil
}

// Path returns the location of the whole log artifact.
func (l *LogFile) Path() string {
	return l.path
}
