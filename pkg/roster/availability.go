package roster

import (
	"sort"
	"strings"
)

// Shuffler randomizes a candidate pool. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShiftCounter counts automated assignments per person across one run
type ShiftCounter map[string]int

// PrimaryYes is the word whose presence anywhere in an answer counts as yes
const PrimaryYes = "SIM"

var affirmativeTokens = map[string]bool{
	"SIM": true, "S": true, "YES": true, "Y": true,
	"X": true, "OK": true, "TRUE": true, "1": true,
}

// IsAffirmative reports whether an availability answer means yes
func IsAffirmative(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	return affirmativeTokens[v] || strings.Contains(v, PrimaryYes)
}

// Extractor partitions one date's affirmative respondents into per-area
// candidate pools.
type Extractor struct {
	identity  *IdentityResolver
	roles     *RoleClassifier
	areas     []Area
	maxShifts int
	shuffler  Shuffler
}

// NewExtractor wires an extractor for the given active areas
func NewExtractor(identity *IdentityResolver, roles *RoleClassifier, areas []Area, maxShifts int, shuffler Shuffler) *Extractor {
	return &Extractor{
		identity:  identity,
		roles:     roles,
		areas:     orderAreas(areas),
		maxShifts: maxShifts,
		shuffler:  shuffler,
	}
}

type respondent struct {
	name     string
	freeText string
}

// Extract builds the pools for one date. People whose counter already
// reached the cap are left out of the pools but kept in the full lists.
func (e *Extractor) Extract(rows []Row, date string, counter ShiftCounter) DateAvailability {
	var people []respondent
	seen := make(map[string]bool)
	for _, row := range rows {
		if !IsAffirmative(row[date]) {
			continue
		}
		name := e.identity.Resolve(row)
		if name == "" {
			continue
		}
		people = append(people, respondent{name: name, freeText: field(row, areaFields...)})
		seen[name] = true
	}

	da := DateAvailability{
		Date:  date,
		All:   sortedKeys(seen),
		Areas: make(map[Area]AreaPool, len(e.areas)),
	}

	for _, area := range e.areas {
		bucket := make(map[string]bool)
		for _, p := range people {
			if e.roles.Eligible(p.name, p.freeText, area) {
				bucket[p.name] = true
			}
		}
		full := sortedKeys(bucket)

		pool := make([]string, 0, len(full))
		for _, name := range full {
			if counter[name] < e.maxShifts {
				pool = append(pool, name)
			}
		}
		if e.shuffler != nil {
			e.shuffler.Shuffle(len(pool), func(i, j int) {
				pool[i], pool[j] = pool[j], pool[i]
			})
		}

		da.Areas[area] = AreaPool{Pool: pool, Full: full}
	}
	return da
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
