package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod      = "method"
	AttrPath        = "path"
	AttrStatus      = "status"
	AttrLeague      = "league"
	AttrManager     = "manager"
	AttrDisplayMode = "display_mode"
)
