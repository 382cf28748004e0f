package pros

import (
	"sort"

	"teranga-pro/internal/domain/geo"
)

const (
	SortDistance = "distance"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// RankedProfile is a search candidate annotated with its distance from the
// caller. DistanceKm stays nil when no caller coordinate was supplied.
type RankedProfile struct {
	Profile    ProProfile
	DistanceKm *float64
}

// RankProfiles annotates, radius-filters and orders the candidates fetched by
// the SQL eligibility query.
//
// With no caller point the list keeps its recency order. With a caller point,
// candidates missing coordinates are dropped (they cannot be ranked), the
// radius filter applies to the computed distance, and sortMode "distance"
// orders ascending with most-recently-updated as tiebreak.
func RankProfiles(profiles []ProProfile, caller *geo.Point, radiusKm *float64, sortMode string) []RankedProfile {
	ranked := make([]RankedProfile, 0, len(profiles))

	if caller == nil {
		for _, p := range profiles {
			ranked = append(ranked, RankedProfile{Profile: p})
		}
		return ranked
	}

	for _, p := range profiles {
		if !p.HasCoordinates() {
			continue
		}
		d := geo.DistanceKm(*caller, geo.Point{Lat: *p.Latitude, Lng: *p.Longitude})
		if radiusKm != nil && d > *radiusKm {
			continue
		}
		ranked = append(ranked, RankedProfile{Profile: p, DistanceKm: &d})
	}

	if sortMode == SortDistance {
		sort.SliceStable(ranked, func(i, j int) bool {
			if *ranked[i].DistanceKm != *ranked[j].DistanceKm {
				return *ranked[i].DistanceKm < *ranked[j].DistanceKm
			}
			return ranked[i].Profile.UpdatedAt.After(ranked[j].Profile.UpdatedAt)
		})
	}

	return ranked
}

// Paginate slices one page out of the ranked list. page is 1-based; pageSize
// is clamped to [1, MaxPageSize].
func Paginate(ranked []RankedProfile, page, pageSize int) (items []RankedProfile, total int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total = len(ranked)
	start := (page - 1) * pageSize
	if start >= total {
		return []RankedProfile{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return ranked[start:end], total
}
