// SPDX-License-Identifier: MPL-2.0

package pkggraph

const (
	// ErrManifestParse records a missing or malformed package.json.
	// Structural: the owning node is marked invalid.
	ErrManifestParse ErrorKind = "package.json parse failure"
	// ErrAddonMainMissing records an addon entry file that does not exist
	// on disk. Structural: the owning node is marked invalid.
	ErrAddonMainMissing ErrorKind = "addon main missing"
	// ErrDependenciesMissing records declared dependency names that could
	// not be resolved anywhere in the search path. Data carries the full
	// []string of missing names. Non-fatal: the node stays valid.
	ErrDependenciesMissing ErrorKind = "dependencies missing"
)

type (
	// ErrorKind classifies an error recorded against a Package node.
	ErrorKind string

	// ErrorEntry is one (kind, data) pair accumulated on a node. Data is
	// kind-specific: a message string for structural errors, a []string of
	// names for ErrDependenciesMissing.
	ErrorEntry struct {
		Kind ErrorKind
		Data any
	}

	// ErrorList accumulates errors local to a single Package node. Errors
	// belonging to referenced nodes are never merged in; callers wanting
	// descendant errors must traverse the graph.
	ErrorList struct {
		entries []ErrorEntry
	}
)

// Add appends one (kind, data) pair.
func (l *ErrorList) Add(kind ErrorKind, data any) {
	l.entries = append(l.entries, ErrorEntry{Kind: kind, Data: data})
}

// Len returns the number of recorded entries.
func (l *ErrorList) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the recorded entries in recording order.
func (l *ErrorList) Entries() []ErrorEntry {
	out := make([]ErrorEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasKind reports whether any recorded entry has the given kind.
func (l *ErrorList) HasKind(kind ErrorKind) bool {
	for _, e := range l.entries {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
