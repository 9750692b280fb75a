package roster

import (
	"fmt"
	"strings"
)

// Area is a functional volunteer team with a fixed per-date seat count
type Area string

const (
	AreaProduction   Area = "PRODUÇÃO"
	AreaFilming      Area = "FILMAGEM"
	AreaProjection   Area = "PROJEÇÃO"
	AreaPhotoSupport Area = "FOTO/APOIO"
	AreaLighting     Area = "ILUMINAÇÃO"
)

// Unassigned marks a seat nobody could fill
const Unassigned = "Unassigned"

// DefaultMaxShifts is the per-run cap on automated assignments for one person
const DefaultMaxShifts = 4

// AllAreas lists every area in fill priority order
var AllAreas = []Area{AreaProduction, AreaFilming, AreaProjection, AreaPhotoSupport, AreaLighting}

// DefaultHeadcounts is the per-date seat count of each area
var DefaultHeadcounts = map[Area]int{
	AreaProduction:   1,
	AreaFilming:      3,
	AreaProjection:   1,
	AreaPhotoSupport: 2,
	AreaLighting:     1,
}

var areaAliases = map[string]Area{
	"PRODUCAO":   AreaProduction,
	"PRODUCTION": AreaProduction,
	"FILMING":    AreaFilming,
	"PROJECAO":   AreaProjection,
	"PROJECTION": AreaProjection,
	"FOTO":       AreaPhotoSupport,
	"APOIO":      AreaPhotoSupport,
	"PHOTO":      AreaPhotoSupport,
	"SUPPORT":    AreaPhotoSupport,
	"ILUMINACAO": AreaLighting,
	"LIGHTING":   AreaLighting,
}

// ParseArea maps a tag (canonical or a plain ASCII alias) to an Area
func ParseArea(s string) (Area, error) {
	tag := strings.ToUpper(strings.TrimSpace(s))
	for _, a := range AllAreas {
		if string(a) == tag {
			return a, nil
		}
	}
	if a, ok := areaAliases[tag]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown area %q", s)
}

// ParseAreas parses a list of tags, dropping duplicates
func ParseAreas(tags []string) ([]Area, error) {
	seen := make(map[Area]bool, len(tags))
	areas := make([]Area, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		a, err := ParseArea(t)
		if err != nil {
			return nil, err
		}
		if !seen[a] {
			seen[a] = true
			areas = append(areas, a)
		}
	}
	return areas, nil
}

// orderAreas returns the active areas in fill priority order. An empty
// selection activates every area.
func orderAreas(active []Area) []Area {
	if len(active) == 0 {
		return AllAreas
	}
	want := make(map[Area]bool, len(active))
	for _, a := range active {
		want[a] = true
	}
	ordered := make([]Area, 0, len(active))
	for _, a := range AllAreas {
		if want[a] {
			ordered = append(ordered, a)
		}
	}
	return ordered
}

// SeatLabel returns the function label for seat i of an area
func SeatLabel(area Area, i int) string {
	switch area {
	case AreaFilming:
		return fmt.Sprintf("Camera %d", i+1)
	case AreaPhotoSupport:
		if i == 0 {
			return "Photographer"
		}
		return "Support"
	default:
		return string(area)
	}
}
