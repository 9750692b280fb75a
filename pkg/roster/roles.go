package roster

import "strings"

// keywordRule infers an area from a single upper-cased token
type keywordRule struct {
	area  Area
	match func(token string) bool
}

// Evaluated in order; the first rule matched by any token wins.
var keywordRules = []keywordRule{
	{AreaFilming, func(t string) bool { return strings.HasPrefix(t, "FILM") }},
	{AreaProjection, func(t string) bool { return strings.HasPrefix(t, "PROJE") }},
	{AreaPhotoSupport, func(t string) bool {
		return strings.Contains(t, "TAKE") || strings.Contains(t, "FOTO") || strings.Contains(t, "FOTOGRAF")
	}},
	{AreaLighting, func(t string) bool {
		return strings.HasPrefix(t, "ILUMIN") || t == "LUZ" || t == "ILUM"
	}},
	{AreaProduction, func(t string) bool { return t == "PRODUÇÃO" || t == "PRODUCAO" }},
}

// RoleClassifier decides which areas a person may serve
type RoleClassifier struct {
	directory *Directory
}

// NewRoleClassifier creates a classifier backed by a directory (may be nil)
func NewRoleClassifier(directory *Directory) *RoleClassifier {
	return &RoleClassifier{directory: directory}
}

// Eligible reports whether a person may serve an area. A directory entry
// with roles is authoritative and the free text is ignored; otherwise the
// single area inferred from the free text decides.
func (c *RoleClassifier) Eligible(name, freeText string, area Area) bool {
	if roles := c.directory.Roles(name); len(roles) > 0 {
		for _, r := range roles {
			if r == area {
				return true
			}
		}
		return false
	}
	inferred, ok := InferArea(freeText)
	return ok && inferred == area
}

// InferArea applies the keyword rules to free text
func InferArea(freeText string) (Area, bool) {
	tokens := strings.Fields(strings.ToUpper(freeText))
	if len(tokens) == 0 {
		return "", false
	}
	for _, rule := range keywordRules {
		for _, t := range tokens {
			if rule.match(t) {
				return rule.area, true
			}
		}
	}
	return "", false
}
