package models

// ReportKind names the report layouts the renderer knows how to build.
type ReportKind string

const (
	ReportExecutive  ReportKind = "executive"
	ReportDetailed   ReportKind = "detailed"
	ReportProjection ReportKind = "projection"
	ReportCustom     ReportKind = "custom"
)

// Valid reports whether k is a known report kind.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportExecutive, ReportDetailed, ReportProjection, ReportCustom:
		return true
	}
	return false
}

// GeneratedNarrative is the ephemeral result of one AI call. It is consumed
// by the report renderer and discarded, never persisted.
//
// Summary and Recommendations are fixed per kind rather than parsed out of
// the provider's free-text reply; Body carries the raw reply.
type GeneratedNarrative struct {
	Kind            ReportKind `json:"kind"`
	Body            string     `json:"body"`
	Summary         string     `json:"summary"`
	Recommendations []string   `json:"recommendations"`
}
