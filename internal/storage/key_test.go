package storage

import (
	"testing"
	"time"
)

func TestBuildKey(t *testing.T) {
	kb := KeyBuilder{Bucket: "documents", PublicURL: "https://cdn.example.com"}

	key := kb.BuildKey("tenant", "contracts", "signed_upload_1234.pdf")
	if key != "tenant/contracts/signed_upload_1234.pdf" {
		t.Errorf("BuildKey() = %q, want %q", key, "tenant/contracts/signed_upload_1234.pdf")
	}

	other := kb.BuildKey("tenant", "contracts", "signed_upload_5678.pdf")
	if other == key {
		t.Errorf("keys with different filenames must not collide: %q", key)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	kb := KeyBuilder{Bucket: "documents", PublicURL: "https://cdn.example.com/"}

	key := kb.DocumentKey("org1", "c1_signed_1000.pdf")
	url := kb.ToPublicURL(key)
	if url != "https://cdn.example.com/documents/org1/contracts/c1_signed_1000.pdf" {
		t.Errorf("ToPublicURL() = %q", url)
	}

	got, ok := kb.KeyFromURL(url)
	if !ok || got != key {
		t.Errorf("KeyFromURL() = %q, %v, want %q", got, ok, key)
	}

	if _, ok := kb.KeyFromURL("https://elsewhere.example.com/documents/x"); ok {
		t.Error("KeyFromURL() accepted a URL outside the public prefix")
	}
}

func TestFileNameConvention(t *testing.T) {
	at := time.UnixMilli(1234)

	auto := AutoGeneratedFileName("c1", at)
	if auto != "c1_signed_1234.pdf" {
		t.Errorf("AutoGeneratedFileName() = %q", auto)
	}

	manual := ManualUploadFileName(at)
	if manual != "signed_upload_1234.pdf" {
		t.Errorf("ManualUploadFileName() = %q", manual)
	}

	tests := []struct {
		name       string
		filename   string
		contractId string
		auto       bool
		manual     bool
	}{
		{"auto generated for contract", "org/contracts/c1_signed_1000.pdf", "c1", true, false},
		{"auto generated other contract", "org/contracts/c2_signed_1000.pdf", "c1", false, false},
		{"manual upload", "org/contracts/signed_upload_1000.pdf", "c1", false, true},
		{"unrelated object", "org/contracts/invoice.pdf", "c1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAutoGeneratedFor(tt.contractId, tt.filename); got != tt.auto {
				t.Errorf("IsAutoGeneratedFor() = %v, want %v", got, tt.auto)
			}
			if got := IsManualUpload(tt.filename); got != tt.manual {
				t.Errorf("IsManualUpload() = %v, want %v", got, tt.manual)
			}
		})
	}
}

func TestLegacyFromScoped(t *testing.T) {
	kb := KeyBuilder{Bucket: "docs", PublicURL: "https://cdn.example.com"}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"tenant/contracts/a.pdf", "contracts/a.pdf", true},
		// Already legacy, nothing left to drop.
		{"contracts/a.pdf", "", false},
		{"a.pdf", "", false},
		{"tenant/contracts/", "", false},
	}

	for _, tt := range tests {
		got, ok := kb.LegacyFromScoped(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LegacyFromScoped(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}
