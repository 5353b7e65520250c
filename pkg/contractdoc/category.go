package contractdoc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ClauseCategory selects the compiled-in clause set rendered when no stored
// template applies, and whether package-inclusion styling is shown.
type ClauseCategory string

const (
	ClauseCategoryPackageService ClauseCategory = "package-service"
	ClauseCategoryDailyRental    ClauseCategory = "daily-rental"
	ClauseCategoryGeneric        ClauseCategory = "generic"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeTypeName strips accents and folds case so "Forfait Soirée" and
// "FORFAIT SOIREE" match the same category.
func normalizeTypeName(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// CategoryForTypeName picks the clause category by substring match on the
// contract type's name.
func CategoryForTypeName(typeName string) ClauseCategory {
	name := normalizeTypeName(typeName)

	switch {
	case strings.Contains(name, "forfait"):
		return ClauseCategoryPackageService
	case strings.Contains(name, "location par jour"):
		return ClauseCategoryDailyRental
	default:
		return ClauseCategoryGeneric
	}
}
