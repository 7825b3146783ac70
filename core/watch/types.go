package watch

import "time"

// =============================================================================
// FileOperation
// =============================================================================

// FileOperation is the kind of change seen on a file.
type FileOperation int

const (
	OpCreate FileOperation = iota
	OpModify
	OpDelete
	OpRename
)

func (op FileOperation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// removesFile reports whether the path no longer holds the file.
func (op FileOperation) removesFile() bool {
	return op == OpDelete || op == OpRename
}

// =============================================================================
// Events
// =============================================================================

// FileEvent is a debounced change to one source file.
type FileEvent struct {
	Path      string
	Operation FileOperation
	Time      time.Time
}

// Report is emitted when the detected patterns for a file change.
type Report struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Patterns []string  `json:"patterns"`
	Time     time.Time `json:"time"`
}
