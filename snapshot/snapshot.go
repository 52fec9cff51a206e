// Package snapshot decodes wiring captures produced by an extraction run
// into the component model the analysis engine consumes.
package snapshot

import (
	"github.com/knitlab/knitscope/knit"
)

// FormatVersion is the snapshot codec version this package reads and writes.
const FormatVersion = 1

// Snapshot is a portable wiring capture, the sole input to an analysis run.
type Snapshot struct {
	FormatVersion int              `json:"formatVersion"`         // codec version, absent means 1
	Project       string           `json:"project,omitempty"`     // project display name
	KnitVersion   string           `json:"knitVersion,omitempty"` // injection framework version observed at capture time
	Components    []knit.Component `json:"components"`            // captured components with their declared wiring
	Checksum      string           `json:"-"`                     // digest of the raw document, set by Parse
}

// IsEmpty reports whether the snapshot carries no components.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Components) == 0
}
