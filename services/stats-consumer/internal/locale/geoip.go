package locale

import (
	"context"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPResolver answers from a local MaxMind City database. Used when no
// HTTP lookup key is configured; lookups never leave the process.
type GeoIPResolver struct {
	db *geoip2.Reader
}

var _ Resolver = (*GeoIPResolver)(nil)

// NewGeoIPResolver opens the database at path.
func NewGeoIPResolver(path string) (*GeoIPResolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoIPResolver{db: db}, nil
}

func (r *GeoIPResolver) Resolve(_ context.Context, ip string) (Locale, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Unknown, nil
	}

	record, err := r.db.City(parsed)
	if err != nil {
		return Unknown, err
	}

	loc := Unknown
	if code := record.Country.IsoCode; code != "" {
		loc.Country = code
	}
	if len(record.Subdivisions) > 0 {
		if name := record.Subdivisions[0].Names["en"]; name != "" {
			loc.Province = name
		}
	}
	if name := record.City.Names["en"]; name != "" {
		loc.City = name
	}
	return loc, nil
}

// Close releases the underlying database.
func (r *GeoIPResolver) Close() error {
	return r.db.Close()
}
