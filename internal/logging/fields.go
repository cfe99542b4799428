package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService     = "service"
	FieldVersion     = "version"
	FieldLeague      = "league"
	FieldMode        = "mode"
	FieldDisplayMode = "display_mode"
	FieldManager     = "manager"
	FieldGameID      = "game_id"
	FieldProvider    = "provider"
	FieldDate        = "date"
	FieldCount       = "count"
	FieldDurationMS  = "duration_ms"
	FieldPath        = "path"
	FieldMethod      = "method"
	FieldStatusCode  = "status_code"
)
