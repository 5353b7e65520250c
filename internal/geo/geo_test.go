package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/narith-dev/RentSign/internal/config"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.5" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"city":"Paris","country":"France","lat":48.85,"lon":2.35}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeoConfig{URL: srv.URL, Timeout: time.Second}, nil)

	loc, err := client.Lookup(context.Background(), "203.0.113.5")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}

	if loc.String() != "Paris, France" {
		t.Errorf("Location.String() = %q, want %q", loc.String(), "Paris, France")
	}
}

func TestLookupUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(config.GeoConfig{URL: srv.URL, Timeout: time.Second}, nil)

	if _, err := client.Lookup(context.Background(), "203.0.113.5"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(config.GeoConfig{URL: srv.URL, Timeout: 10 * time.Millisecond}, nil)

	if _, err := client.Lookup(context.Background(), "203.0.113.5"); err == nil {
		t.Error("expected a timeout error")
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"city and country", Location{City: "Lyon", Country: "France"}, "Lyon, France"},
		{"country only", Location{Country: "France"}, "France"},
		{"city only", Location{City: "Lyon"}, "Lyon"},
		{"empty", Location{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
