package contractdoc

import (
	"strings"
	"testing"
	"time"
)

func sampleData() *ContractData {
	start := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	return &ContractData{
		ContractID:     "c-1",
		ContractNumber: "CT-2025-0042",
		CustomerName:   "Marie Dupont",
		CustomerEmail:  "marie@example.com",
		TypeName:       "Forfait mariage",
		PackageName:    "Forfait Prestige",
		CreatedAt:      time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		StartAt:        &start,
		EndAt:          &end,
		Addons: []Addon{
			{ID: "a-1", Name: "Retouches", Price: 45, IncludedInPackage: true},
			{ID: "a-2", Name: "Pressing", Price: 30},
		},
		Dresses: []Dress{
			{Name: "Robe sirène", Size: "38", Color: "ivoire", Price: 250},
		},
		Financials: Financials{
			TotalHT:  500,
			TotalTTC: 600,
		},
		Category: ClauseCategoryPackageService,
	}
}

func TestInterpolatePlaceholders(t *testing.T) {
	data := sampleData()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "Contract number",
			body:     "N° {{contract_number}}",
			expected: "N° CT-2025-0042",
		},
		{
			name:     "Customer fields escaped",
			body:     "{{customer_name}}",
			expected: "Marie Dupont",
		},
		{
			name:     "Dates are day-first",
			body:     "{{start_date}} au {{end_date}}",
			expected: "14/06/2025 au 16/06/2025",
		},
		{
			name:     "Money uses French format",
			body:     "{{total_ttc}}",
			expected: "600,00 €",
		},
		{
			name:     "Unknown placeholder renders empty",
			body:     "x{{no_such_field}}y",
			expected: "xy",
		},
		{
			name:     "Signer fields empty without signature",
			body:     "[{{signer_ip}}]",
			expected: "[]",
		},
		{
			name:     "Non-placeholder braces pass through",
			body:     "{{NotAPlaceholder}} {{ spaced }}",
			expected: "{{NotAPlaceholder}} {{ spaced }}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.body, data)
			if got != tt.expected {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.body, got, tt.expected)
			}
		})
	}
}

func TestInterpolateEscapesHTML(t *testing.T) {
	data := sampleData()
	data.CustomerName = `<script>alert("x")</script>`

	got := Interpolate("{{customer_name}}", data)
	if strings.Contains(got, "<script>") {
		t.Errorf("Expected customer name to be escaped, got %q", got)
	}
}

func TestInterpolateConditionalBlocks(t *testing.T) {
	body := "{{#approval}}APPROVAL{{/approval}}{{#signature}}SIGNED {{signer_ip}}{{/signature}}"

	t.Run("Approval block on manual path", func(t *testing.T) {
		data := sampleData()
		data.IncludeSignatureBlock = true

		got := Interpolate(body, data)
		if got != "APPROVAL" {
			t.Errorf("Expected approval block only, got %q", got)
		}
	})

	t.Run("Signature block after electronic signature", func(t *testing.T) {
		data := sampleData()
		data.Signature = &Signature{
			SignedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			SignerIP: "203.0.113.7",
		}

		got := Interpolate(body, data)
		if got != "SIGNED 203.0.113.7" {
			t.Errorf("Expected signature block only, got %q", got)
		}
	})

	t.Run("Neither block without signature", func(t *testing.T) {
		got := Interpolate(body, sampleData())
		if got != "" {
			t.Errorf("Expected both blocks dropped, got %q", got)
		}
	})

	t.Run("Unclosed block left untouched", func(t *testing.T) {
		data := sampleData()
		got := Interpolate("{{#approval}}dangling", data)
		if got != "{{#approval}}dangling" {
			t.Errorf("Expected unclosed block untouched, got %q", got)
		}
	})
}

func TestAddonListPackageInclusion(t *testing.T) {
	t.Run("Included badge when category supports packages", func(t *testing.T) {
		got := Interpolate("{{addon_list}}", sampleData())
		if !strings.Contains(got, "inclus au forfait") {
			t.Errorf("Expected included badge, got %q", got)
		}
		if !strings.Contains(got, "<s>") {
			t.Errorf("Expected struck-through price, got %q", got)
		}
	})

	t.Run("No badge for generic category", func(t *testing.T) {
		data := sampleData()
		data.Category = ClauseCategoryGeneric

		got := Interpolate("{{addon_list}}", data)
		if strings.Contains(got, "inclus au forfait") {
			t.Errorf("Expected no included badge for generic category, got %q", got)
		}
	})
}

func TestRenderBuiltinAllCategories(t *testing.T) {
	for _, category := range []ClauseCategory{ClauseCategoryPackageService, ClauseCategoryDailyRental, ClauseCategoryGeneric} {
		t.Run(string(category), func(t *testing.T) {
			data := sampleData()
			data.Category = category

			got, err := RenderBuiltin(data)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !strings.Contains(got, "CT-2025-0042") {
				t.Errorf("Expected contract number in output")
			}
			if !strings.Contains(got, "Marie Dupont") {
				t.Errorf("Expected customer name in output")
			}
		})
	}
}
