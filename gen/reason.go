package gen

// RunReason classifies why a step output was produced on a given run.
type RunReason uint8

const (
	// ReasonNew indicates the output had no counterpart on the previous run.
	ReasonNew RunReason = iota
	// ReasonModified indicates the step executed and produced different content.
	ReasonModified
	// ReasonUnchanged indicates the step executed and produced identical content.
	ReasonUnchanged
	// ReasonCached indicates the output was replayed from the step cache without executing.
	ReasonCached
	// ReasonRemoved indicates a previous output has no counterpart on this run.
	ReasonRemoved
)

// String returns the lowercase name of the reason.
func (r RunReason) String() string {
	switch r {
	case ReasonNew:
		return "new"
	case ReasonModified:
		return "modified"
	case ReasonUnchanged:
		return "unchanged"
	case ReasonCached:
		return "cached"
	case ReasonRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// IsClean reports whether the reason is acceptable on a no-op rerun.
// Only cached and unchanged outputs satisfy the caching law.
func (r RunReason) IsClean() bool {
	return r == ReasonCached || r == ReasonUnchanged
}
