package location

import (
	"log"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
	"github.com/lifelog-tools/activity-backend-go/internal/spatial"
)

// defaultCategoryRadiusM is used when the registry document does not override
// a category's match radius.
var defaultCategoryRadiusM = map[string]float64{
	models.CategoryGolfCourse:   500,
	models.CategoryParkrunVenue: 200,
	models.CategoryHome:         100,
	models.CategoryOffice:       300,
	models.CategorySkiResort:    2000,
	models.CategoryPark:         300,
}

// fallbackRadiusM applies to categories with no configured default.
const fallbackRadiusM = 250

// Analyzer resolves raw coordinates against the known-location registry and
// filters point sequences by clock-time periods. The registry is loaded once
// at construction and read-only afterwards.
type Analyzer struct {
	byCategory map[string][]models.KnownLocation
	byName     map[string]models.KnownLocation
	periods    map[string]models.ClockWindow
}

// NewAnalyzer builds a location analyzer from a loaded registry and the
// configured time periods. Per-entry radii default to the registry's category
// radius, then to the built-in category defaults.
func NewAnalyzer(reg *models.KnownLocationRegistry, periods map[string]models.ClockWindow) *Analyzer {
	a := &Analyzer{
		byCategory: make(map[string][]models.KnownLocation),
		byName:     make(map[string]models.KnownLocation),
		periods:    periods,
	}

	for _, loc := range reg.Locations {
		if loc.RadiusM <= 0 {
			if r, ok := reg.CategoryRadiusM[loc.Category]; ok && r > 0 {
				loc.RadiusM = r
			} else if r, ok := defaultCategoryRadiusM[loc.Category]; ok {
				loc.RadiusM = r
			} else {
				loc.RadiusM = fallbackRadiusM
			}
		}
		a.byCategory[loc.Category] = append(a.byCategory[loc.Category], loc)
		a.byName[loc.Name] = loc
	}

	log.Printf("[LocationAnalyzer] Registry ready: %d locations in %d categories",
		len(a.byName), len(a.byCategory))
	return a
}

// Resolve returns the nearest known location of the given category whose
// configured radius contains the coordinate, or false when none matches.
func (a *Analyzer) Resolve(lat, lon float64, category string) (models.KnownLocation, bool) {
	var best models.KnownLocation
	bestDist := -1.0

	for _, loc := range a.byCategory[category] {
		d := spatial.HaversineDistance(lat, lon, loc.Latitude, loc.Longitude)
		if d > loc.RadiusM {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best = loc
			bestDist = d
		}
	}

	return best, bestDist >= 0
}

// FindByName returns a known location by its unique name.
func (a *Analyzer) FindByName(name string) (models.KnownLocation, bool) {
	loc, ok := a.byName[name]
	return loc, ok
}

// ByCategory returns all known locations of a category.
func (a *Analyzer) ByCategory(category string) []models.KnownLocation {
	return a.byCategory[category]
}

// All returns every registered location, for the registry API endpoint.
func (a *Analyzer) All() []models.KnownLocation {
	out := make([]models.KnownLocation, 0, len(a.byName))
	for _, locs := range a.byCategory {
		out = append(out, locs...)
	}
	return out
}
