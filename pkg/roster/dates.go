package roster

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var dayMonthPattern = regexp.MustCompile(`\b(\d{1,2})\s*[/.\-]\s*(\d{1,2})\b`)

// Field names never treated as dates when no column looks like one.
// Matched by containment except for exact-only entries.
var (
	metadataContains = []string{
		"CARIMBO", "TIMESTAMP", "DATA/HORA",
		"EMAIL", "E-MAIL",
		"TELEFONE", "CELULAR", "WHATSAPP", "PHONE",
		"NOME", "NAME",
		"ÁREA", "AREA", "MINISTÉRIO", "MINISTERIO",
		"COMENT", "COMMENT", "OBSERVA",
	}
	metadataExact = []string{"ID"}
)

// DiscoverDates returns the date-like field names across all rows, sorted
// chronologically by day/month. Unparsable names sort last.
func DiscoverDates(rows []Row) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		for name := range row {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	var dates []string
	for _, n := range names {
		if dayMonthPattern.MatchString(n) {
			dates = append(dates, n)
		}
	}
	if len(dates) == 0 {
		for _, n := range names {
			if !isMetadataField(n) {
				dates = append(dates, n)
			}
		}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return dateSortKey(dates[i]) < dateSortKey(dates[j])
	})
	return dates
}

// ParseDayMonth extracts the first day/month pair of a field name
func ParseDayMonth(key string) (day, month int, ok bool) {
	m := dayMonthPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, false
	}
	day, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	return day, month, true
}

func dateSortKey(key string) int {
	day, month, ok := ParseDayMonth(key)
	if !ok {
		return math.MaxInt
	}
	return month*100 + day
}

func isMetadataField(name string) bool {
	for _, e := range metadataExact {
		if name == e {
			return true
		}
	}
	for _, c := range metadataContains {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}
