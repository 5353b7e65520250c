package contractdoc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubRenderer struct {
	pdf []byte
	err error
}

func (s *stubRenderer) RenderHTMLToPdf(ctx context.Context, html string, opts PageOptions) ([]byte, error) {
	return s.pdf, s.err
}

type stubGenerator struct {
	pdf    []byte
	err    error
	called bool
}

func (s *stubGenerator) Generate(data *ContractData) ([]byte, error) {
	s.called = true
	return s.pdf, s.err
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestPipelinePrimarySucceeds(t *testing.T) {
	fallback := &stubGenerator{pdf: []byte("%PDF-fallback")}
	p := NewPipeline(&stubRenderer{pdf: []byte("%PDF-primary")}, fallback, testLogger())

	pdf, err := p.Render(context.Background(), "<html></html>", sampleData())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(pdf) != "%PDF-primary" {
		t.Errorf("Expected primary output, got %q", pdf)
	}
	if fallback.called {
		t.Error("Expected fallback not to be called when primary succeeds")
	}
}

func TestPipelineFallsBack(t *testing.T) {
	fallback := &stubGenerator{pdf: []byte("%PDF-fallback")}
	p := NewPipeline(&stubRenderer{err: errors.New("engine down")}, fallback, testLogger())

	pdf, err := p.Render(context.Background(), "<html></html>", sampleData())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(pdf) != "%PDF-fallback" {
		t.Errorf("Expected fallback output, got %q", pdf)
	}
}

func TestPipelineBothFail(t *testing.T) {
	p := NewPipeline(&stubRenderer{err: errors.New("engine down")}, &stubGenerator{err: errors.New("no font")}, testLogger())

	_, err := p.Render(context.Background(), "<html></html>", sampleData())
	if err == nil {
		t.Fatal("Expected error when both tiers fail")
	}
	if !strings.Contains(err.Error(), "engine down") || !strings.Contains(err.Error(), "no font") {
		t.Errorf("Expected both causes in error, got %v", err)
	}
}

func TestHTTPRenderer(t *testing.T) {
	t.Run("Returns PDF bytes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("Expected POST, got %s", r.Method)
			}
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("%PDF-1.7 fake"))
		}))
		defer srv.Close()

		r := NewHTTPRenderer(srv.URL, 0)
		pdf, err := r.RenderHTMLToPdf(context.Background(), "<html></html>", DefaultPageOptions())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.HasPrefix(string(pdf), "%PDF") {
			t.Errorf("Expected PDF payload, got %q", pdf)
		}
	})

	t.Run("Rejects non-PDF body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>error page</html>"))
		}))
		defer srv.Close()

		r := NewHTTPRenderer(srv.URL, 0)
		if _, err := r.RenderHTMLToPdf(context.Background(), "<html></html>", DefaultPageOptions()); err == nil {
			t.Fatal("Expected error for non-PDF response")
		}
	})

	t.Run("Propagates engine failure status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		r := NewHTTPRenderer(srv.URL, 0)
		if _, err := r.RenderHTMLToPdf(context.Background(), "<html></html>", DefaultPageOptions()); err == nil {
			t.Fatal("Expected error for 500 response")
		}
	})
}
