package service

import (
	"context"
	"regexp"
	"strings"

	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"go.uber.org/fx"
)

type resolverParam struct {
	fx.In

	Repository taxzonedomain.Repository
}

type resolver struct {
	repo taxzonedomain.Repository
}

func NewResolver(p resolverParam) taxzonedomain.Resolver {
	return &resolver{repo: p.Repository}
}

// Resolve walks three precedence tiers over a fresh zone snapshot:
//
//  1. country + postal code pattern match
//  2. country + state match
//  3. bare country location (no states, no pattern)
//
// Zones are scanned in ascending ID (creation) order, so when several zones
// satisfy the same tier the oldest one wins. The postal pattern is a text
// pattern test, never a numeric range: it is applied as a regular expression
// (unanchored, so a plain string behaves as a substring test) and degrades to
// a case-insensitive substring test when it does not compile.
func (r *resolver) Resolve(ctx context.Context, addr taxzonedomain.Address) (*taxzonedomain.TaxZone, error) {
	zones, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	country := normalizeRegion(addr.Country)
	state := normalizeRegion(addr.State)
	postal := strings.TrimSpace(addr.PostalCode)

	if postal != "" {
		patterns := postalPatterns{}
		for i := range zones {
			if zoneMatchesPostal(&zones[i], country, postal, patterns) {
				return &zones[i], nil
			}
		}
	}

	if state != "" {
		for i := range zones {
			if zoneMatchesState(&zones[i], country, state) {
				return &zones[i], nil
			}
		}
	}

	for i := range zones {
		if zoneMatchesCountry(&zones[i], country) {
			return &zones[i], nil
		}
	}

	return nil, nil
}

func zoneMatchesPostal(zone *taxzonedomain.TaxZone, country, postal string, patterns postalPatterns) bool {
	for _, loc := range zone.Locations {
		if normalizeRegion(loc.Country) != country {
			continue
		}
		if loc.PostalCodePattern == "" {
			continue
		}
		if patterns.match(loc.PostalCodePattern, postal) {
			return true
		}
	}
	return false
}

func zoneMatchesState(zone *taxzonedomain.TaxZone, country, state string) bool {
	for _, loc := range zone.Locations {
		if normalizeRegion(loc.Country) != country {
			continue
		}
		for _, s := range loc.States {
			if normalizeRegion(s) == state {
				return true
			}
		}
	}
	return false
}

func zoneMatchesCountry(zone *taxzonedomain.TaxZone, country string) bool {
	for _, loc := range zone.Locations {
		if normalizeRegion(loc.Country) != country {
			continue
		}
		if len(loc.States) == 0 && loc.PostalCodePattern == "" {
			return true
		}
	}
	return false
}

// postalPatterns memoizes compiled pattern matchers for one resolution pass,
// so a pattern shared by many locations is compiled once.
type postalPatterns map[string]func(string) bool

func (p postalPatterns) match(pattern, postal string) bool {
	matcher, ok := p[pattern]
	if !ok {
		matcher = compilePostalPattern(pattern)
		p[pattern] = matcher
	}
	return matcher(postal)
}

func compilePostalPattern(pattern string) func(string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		want := strings.ToUpper(pattern)
		return func(postal string) bool {
			return strings.Contains(strings.ToUpper(postal), want)
		}
	}
	return re.MatchString
}

func normalizeRegion(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
