package models

// KnownLocation represents a named, pre-registered place with a
// category-specific match radius
type KnownLocation struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	RadiusM   float64 `json:"radius_m,omitempty"` // 0 means "use the category default"
}

// Location category constants
const (
	CategoryGolfCourse   = "golf_course"
	CategoryParkrunVenue = "parkrun_venue"
	CategoryHome         = "home"
	CategoryOffice       = "office"
	CategorySkiResort    = "ski_resort"
	CategoryPark         = "park"
)

// KnownLocationRegistry is the on-disk shape of the known-locations document
type KnownLocationRegistry struct {
	// CategoryRadiusM maps a category to its default match radius in meters
	CategoryRadiusM map[string]float64 `json:"category_radius_m"`
	Locations       []KnownLocation    `json:"locations"`
}
