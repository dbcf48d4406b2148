package zone

// Zone is a named service area jobs are grouped into.
type Zone struct {
	ID   int64
	Name string
}

// NoZoneName labels jobs that are not assigned to any zone.
const NoZoneName = "No Zone"
