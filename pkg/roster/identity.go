package roster

import (
	"sort"
	"strings"
	"unicode"
)

var (
	nameFields  = []string{"NOME", "NAME"}
	emailFields = []string{"EMAIL", "E-MAIL"}
	phoneFields = []string{"TELEFONE", "CELULAR", "WHATSAPP", "PHONE"}
	areaFields  = []string{"ÁREA", "AREA", "MINISTÉRIO", "MINISTERIO", "FUNÇÃO", "FUNCAO"}
)

// IdentityResolver maps a respondent row to a canonical person name
type IdentityResolver struct {
	directory *Directory
	rules     []IdentityRule
}

// NewIdentityResolver creates a resolver backed by a directory (may be nil)
// and the legacy identity rules.
func NewIdentityResolver(directory *Directory, rules []IdentityRule) *IdentityResolver {
	return &IdentityResolver{directory: directory, rules: rules}
}

// Resolve returns the canonical name for a row, or "" when the row carries
// no usable identity.
func (r *IdentityResolver) Resolve(row Row) string {
	rawName := strings.TrimSpace(field(row, nameFields...))
	email := normalizeEmail(field(row, emailFields...))
	phone := digitsOnly(field(row, phoneFields...))

	if email != "" {
		if name, ok := r.directory.NameForEmail(email); ok {
			return name
		}
	}

	upperName := strings.ToUpper(rawName)
	for _, rule := range r.rules {
		if rule.matches(email, phone, upperName) {
			return rule.CanonicalName
		}
	}

	return deriveName(rawName)
}

func (rule IdentityRule) matches(email, phone, upperName string) bool {
	if email != "" {
		for _, e := range rule.Emails {
			if normalizeEmail(e) == email {
				return true
			}
		}
	}
	if phone != "" {
		for _, p := range rule.Phones {
			if digitsOnly(p) == phone {
				return true
			}
		}
	}
	if upperName != "" {
		for _, k := range rule.Keywords {
			if k != "" && strings.Contains(upperName, strings.ToUpper(k)) {
				return true
			}
		}
	}
	return false
}

// deriveName keeps the first and last whitespace tokens of a name
func deriveName(raw string) string {
	tokens := strings.Fields(raw)
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	default:
		return tokens[0] + " " + tokens[len(tokens)-1]
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// field returns the value of the first row field whose name contains one
// of the keywords. Keywords are tried in order so "NOME" beats "NAME".
func field(row Row, keywords ...string) string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, k := range keywords {
		for _, name := range names {
			if strings.Contains(name, k) && strings.TrimSpace(row[name]) != "" {
				return row[name]
			}
		}
	}
	return ""
}
