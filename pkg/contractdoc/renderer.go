package contractdoc

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PageOptions are the fixed page margins handed to the primary engine, in
// millimeters.
type PageOptions struct {
	MarginTop    float64 `json:"marginTop"`
	MarginBottom float64 `json:"marginBottom"`
	MarginLeft   float64 `json:"marginLeft"`
	MarginRight  float64 `json:"marginRight"`
}

func DefaultPageOptions() PageOptions {
	return PageOptions{
		MarginTop:    18,
		MarginBottom: 18,
		MarginLeft:   14,
		MarginRight:  14,
	}
}

// HTMLRenderer converts an HTML document to paginated PDF bytes. The
// headless engine behind it can time out, crash or be missing entirely.
type HTMLRenderer interface {
	RenderHTMLToPdf(ctx context.Context, html string, opts PageOptions) ([]byte, error)
}

// FallbackGenerator rebuilds a simplified document straight from the
// contract data, without HTML, so a PDF can always be produced.
type FallbackGenerator interface {
	Generate(data *ContractData) ([]byte, error)
}

// Pipeline tries the primary engine first and falls back to the simplified
// generator on any failure. Callers only observe success or final failure.
type Pipeline struct {
	primary  HTMLRenderer
	fallback FallbackGenerator
	logger   *zap.SugaredLogger
}

func NewPipeline(primary HTMLRenderer, fallback FallbackGenerator, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{primary: primary, fallback: fallback, logger: logger}
}

func (p *Pipeline) Render(ctx context.Context, html string, data *ContractData) ([]byte, error) {
	pdf, err := p.primary.RenderHTMLToPdf(ctx, html, DefaultPageOptions())
	if err == nil {
		return pdf, nil
	}

	p.logger.Warnf("Primary renderer failed for contract %s, using fallback generator: %v", data.ContractID, err)

	pdf, fallbackErr := p.fallback.Generate(data)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary renderer failed (%v) and fallback generator failed: %w", err, fallbackErr)
	}

	return pdf, nil
}
