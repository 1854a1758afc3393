// Package enrich fills the gaps a snapshot row may carry: a missing
// region (via offline reverse geocoding) and an unparsed timestamp.
package enrich

import (
	"fmt"

	"github.com/andreiashu/geobed"
)

// Resolver maps a coordinate pair to an administrative region name.
// It is an optional capability: construction may fail (geocoding data
// unavailable) and callers must then choose the placeholder path
// explicitly rather than rely on a nil reference mid-load.
type Resolver interface {
	ReverseGeocode(lat, lon float64) (string, error)
}

type geobedResolver struct {
	g *geobed.GeoBed
}

// NewResolver loads the embedded geonames/maxmind data set. This is
// slow on first call and memory-heavy, so it runs once at startup.
func NewResolver() (Resolver, error) {
	g, err := geobed.GetDefaultGeobed()
	if err != nil {
		return nil, fmt.Errorf("failed to load geocoding data set: %w", err)
	}

	return &geobedResolver{g: g}, nil
}

func (r *geobedResolver) ReverseGeocode(lat, lon float64) (string, error) {
	city := r.g.ReverseGeocode(lat, lon)

	switch {
	case city.Region() != "":
		return city.Region(), nil
	case city.City != "":
		return city.City, nil
	case city.Country() != "":
		return city.Country(), nil
	}

	return "", fmt.Errorf("no region found for (%f, %f)", lat, lon)
}
