package fixture

import (
	"github.com/riskibarqy/liveticker/internal/platform/teamname"
)

// Lookup buckets fixtures by identity key. A bucket with more than one
// fixture means several fixtures share an identity.
type Lookup map[string][]*Fixture

// Resolver maps provider results onto stored fixtures by date and normalized team names.
type Resolver struct {
	normalizer teamname.Normalizer
}

func NewResolver(normalizer teamname.Normalizer) *Resolver {
	return &Resolver{normalizer: normalizer}
}

// BuildIdentity returns "date|home|away", or false when the date cannot be
// parsed or either name normalizes to nothing.
func (r *Resolver) BuildIdentity(homeName, awayName, rawDate string) (string, bool) {
	date, ok := NormalizeDate(rawDate)
	if !ok {
		return "", false
	}
	return identityKey(date, r.normalizer.Normalize(homeName), r.normalizer.Normalize(awayName))
}

// BuildLookup indexes every fixture under each home x away name variant pair.
func (r *Resolver) BuildLookup(fixtures []*Fixture) Lookup {
	lookup := make(Lookup, len(fixtures)*4)
	for _, item := range fixtures {
		if item == nil {
			continue
		}
		date, ok := item.Date()
		if !ok {
			continue
		}
		homeKeys := r.normalizeAll(item.HomeTeam.Variants())
		awayKeys := r.normalizeAll(item.AwayTeam.Variants())
		for _, home := range homeKeys {
			for _, away := range awayKeys {
				key, ok := identityKey(date, home, away)
				if !ok {
					continue
				}
				lookup[key] = appendUnique(lookup[key], item)
			}
		}
	}
	return lookup
}

// Resolve tries the result's name variants in order and returns the first
// populated bucket.
func (r *Resolver) Resolve(result ExternalResult, lookup Lookup) ([]*Fixture, bool) {
	date, ok := NormalizeDate(result.Date)
	if !ok {
		return nil, false
	}
	awayKeys := r.normalizeAll(result.AwayNames)
	for _, homeName := range result.HomeNames {
		home := r.normalizer.Normalize(homeName)
		for _, away := range awayKeys {
			key, ok := identityKey(date, home, away)
			if !ok {
				continue
			}
			if bucket := lookup[key]; len(bucket) > 0 {
				return bucket, true
			}
		}
	}
	return nil, false
}

func (r *Resolver) normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, r.normalizer.Normalize(name))
	}
	return out
}

func identityKey(date, home, away string) (string, bool) {
	if home == "" || away == "" {
		return "", false
	}
	return date + "|" + home + "|" + away, true
}

func appendUnique(bucket []*Fixture, item *Fixture) []*Fixture {
	for _, existing := range bucket {
		if existing == item {
			return bucket
		}
	}
	return append(bucket, item)
}
