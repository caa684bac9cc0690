// Package locale resolves a visitor IP into a coarse geography bucket.
//
// Resolution is an enrichment, never a correctness dependency: every failure
// mode (timeout, malformed response, missing database, bad IP) degrades to
// the Unknown bucket instead of failing the click event.
package locale

import "context"

// UnknownValue fills every field the resolver could not determine.
const UnknownValue = "Unknown"

// Locale is one geography bucket.
type Locale struct {
	Country  string
	Province string
	City     string
	Adcode   string
}

// Unknown is the degraded bucket used whenever resolution fails.
var Unknown = Locale{
	Country:  UnknownValue,
	Province: UnknownValue,
	City:     UnknownValue,
	Adcode:   UnknownValue,
}

// String joins the bucket into the access-log locale column format.
func (l Locale) String() string {
	return l.Country + "-" + l.Province + "-" + l.City
}

// Resolver looks up the geography bucket for an IP. Implementations must
// respect ctx deadlines; the aggregator calls Resolve while holding the
// coordination lock, so a slow resolver directly extends lock hold time.
type Resolver interface {
	Resolve(ctx context.Context, ip string) (Locale, error)
}

// NoopResolver always answers Unknown. Used when no lookup backend is
// configured.
type NoopResolver struct{}

var _ Resolver = NoopResolver{}

func (NoopResolver) Resolve(context.Context, string) (Locale, error) {
	return Unknown, nil
}
