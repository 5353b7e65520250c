package contractdoc

import (
	"testing"
)

func TestCategoryForTypeName(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		expected ClauseCategory
	}{
		{
			name:     "Forfait",
			typeName: "Forfait mariage",
			expected: ClauseCategoryPackageService,
		},
		{
			name:     "Forfait uppercase with accents",
			typeName: "FORFAIT SOIRÉE",
			expected: ClauseCategoryPackageService,
		},
		{
			name:     "Daily rental",
			typeName: "Location par jour",
			expected: ClauseCategoryDailyRental,
		},
		{
			name:     "Daily rental accented",
			typeName: "locàtion par jour",
			expected: ClauseCategoryDailyRental,
		},
		{
			name:     "Unknown type",
			typeName: "Vente directe",
			expected: ClauseCategoryGeneric,
		},
		{
			name:     "Empty name",
			typeName: "",
			expected: ClauseCategoryGeneric,
		},
		{
			name:     "Substring match inside longer name",
			typeName: "Grand forfait week-end",
			expected: ClauseCategoryPackageService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryForTypeName(tt.typeName)
			if got != tt.expected {
				t.Errorf("CategoryForTypeName(%q) = %v, want %v", tt.typeName, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTypeName(t *testing.T) {
	got := normalizeTypeName("  Forfait Soirée ")
	if got != "forfait soiree" {
		t.Errorf("Expected accents and case folded, got %q", got)
	}
}
