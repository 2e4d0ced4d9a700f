package mathutil

// Preview camera defaults: a three-quarter view from above, matching the editor thumbnail.
const (
	DefaultYaw   = 45.0
	DefaultPitch = 30.0
)
