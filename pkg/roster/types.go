package roster

import "strings"

// Row is one respondent record keyed by normalized field name
type Row map[string]string

// DirectoryEntry is a known team member and the areas they serve
type DirectoryEntry struct {
	Name  string `yaml:"name" json:"name"`
	Roles []Area `yaml:"roles" json:"roles"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// Directory indexes team members by email and by name
type Directory struct {
	byEmail map[string]string
	byName  map[string][]Area
}

// NewDirectory builds the lookups for a list of entries. Entries without a
// name are ignored.
func NewDirectory(entries []DirectoryEntry) *Directory {
	d := &Directory{
		byEmail: make(map[string]string, len(entries)),
		byName:  make(map[string][]Area, len(entries)),
	}
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		if email := normalizeEmail(e.Email); email != "" {
			d.byEmail[email] = name
		}
		if len(e.Roles) > 0 {
			d.byName[nameKey(name)] = append([]Area(nil), e.Roles...)
		}
	}
	return d
}

// NameForEmail returns the member registered under an email
func (d *Directory) NameForEmail(email string) (string, bool) {
	if d == nil {
		return "", false
	}
	name, ok := d.byEmail[normalizeEmail(email)]
	return name, ok
}

// Roles returns the areas recorded for a member, or nil when unknown
func (d *Directory) Roles(name string) []Area {
	if d == nil {
		return nil
	}
	return d.byName[nameKey(name)]
}

// Len reports the number of members with recorded roles
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byName)
}

// Slot is one seat of one date. Only Assigned changes after generation.
type Slot struct {
	Date     string `json:"date"`
	Function string `json:"function"`
	Assigned string `json:"assigned"`
	Area     Area   `json:"area"`
}

// Conflict is a person booked more than once on the same date
type Conflict struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// AreaPool holds the two views of an area's candidates for one date
type AreaPool struct {
	Pool []string // shuffled, cap-filtered, consumed by the engine
	Full []string // sorted, for suggestions
}

// DateAvailability is the extractor output for one date
type DateAvailability struct {
	Date  string
	All   []string
	Areas map[Area]AreaPool
}

// Availability is the read-only suggestion index kept for one date
type Availability struct {
	All   []string          `json:"all"`
	Areas map[Area][]string `json:"areas"`
}

// Result is the output of one generation run
type Result struct {
	Dates        []string                `json:"dates"`
	Slots        []Slot                  `json:"slots"`
	Availability map[string]Availability `json:"availability"`
	Warnings     []string                `json:"warnings"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nameKey(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}
