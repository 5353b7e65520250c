package docgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/narith-dev/RentSign/internal/compress"
	"github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/contract"
	"github.com/narith-dev/RentSign/internal/errs"
	"github.com/narith-dev/RentSign/internal/model"
	"github.com/narith-dev/RentSign/internal/storage"
	"github.com/narith-dev/RentSign/internal/util"
	"github.com/narith-dev/RentSign/pkg/contractdoc"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContractStore is the contract persistence slice of the document pipeline.
type ContractStore interface {
	GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Contract, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status constant.ContractStatus) error
	UpdateSignedPdfUrl(ctx context.Context, tx *gorm.DB, id string, url string) error
	MarkManuallySigned(ctx context.Context, tx *gorm.DB, id string, signedAt time.Time, pdfUrl string) error
}

// ObjectStore is the object storage slice of the document pipeline.
type ObjectStore interface {
	Put(ctx context.Context, key string, payload []byte, contentType, contentEncoding string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// Renderer is the two-tier render pipeline.
type Renderer interface {
	Render(ctx context.Context, html string, data *contractdoc.ContractData) ([]byte, error)
}

type Options struct {
	// Stamp a QR code of the customer download link on the last page.
	EmbedQR bool
	// Front-end origin for the download link behind the QR code.
	FrontURL string
}

// Service owns the document side of a contract: rendering, storage and the
// token-gated download path.
type Service struct {
	contracts  ContractStore
	templates  contractdoc.TemplateSource
	renderer   Renderer
	compressor *compress.Compressor
	store      ObjectStore
	keys       storage.KeyBuilder
	opts       Options
	logger     *zap.SugaredLogger
	now        func() time.Time
	validate   func(payload []byte) (int, error)
}

func NewService(contracts ContractStore, templates contractdoc.TemplateSource, renderer Renderer, compressor *compress.Compressor, store ObjectStore, keys storage.KeyBuilder, opts Options, logger *zap.SugaredLogger) *Service {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Service{
		contracts:  contracts,
		templates:  templates,
		renderer:   renderer,
		compressor: compressor,
		store:      store,
		keys:       keys,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
		validate:   contractdoc.ValidatePdf,
	}
}

func (s *Service) loadContract(ctx context.Context, id string) (*model.Contract, error) {
	c, err := s.contracts.GetById(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("contract not found")
		}
		return nil, errs.Upstream("failed to load contract", err)
	}
	return c, nil
}

func (s *Service) downloadURL(c *model.Contract) string {
	return fmt.Sprintf("%s/contracts/%s/download/%s", s.opts.FrontURL, c.ID, c.SignatureReference)
}

// Generate renders, stores and links the contract document, replacing any
// previously generated one. manual requests an unsigned document with a
// read-and-approved block; a recorded signature always renders its audit
// block instead.
func (s *Service) Generate(ctx context.Context, contractId string, manual bool) (string, error) {
	c, err := s.loadContract(ctx, contractId)
	if err != nil {
		return "", err
	}

	if err := contract.Guard(c, contract.ActionManualGenerate); err != nil {
		return "", err
	}

	data := BuildContractData(c, manual)

	resolved, err := contractdoc.ResolveTemplate(ctx, s.templates, TemplateRefFor(c))
	if err != nil {
		return "", errs.Upstream("failed to resolve contract template", err)
	}

	html, err := contractdoc.RenderHTML(resolved, data)
	if err != nil {
		return "", errs.Upstream("failed to render contract template", err)
	}

	pdf, err := s.renderer.Render(ctx, html, data)
	if err != nil {
		return "", errs.Upstream("failed to render contract document", err)
	}

	if s.opts.EmbedQR && c.SignatureReference != "" {
		stamped, err := contractdoc.EmbedDownloadQR(pdf, s.downloadURL(c))
		if err != nil {
			s.logger.Warnf("Failed to embed download QR for contract %s, keeping plain document: %v", c.ID, err)
		} else {
			pdf = stamped
		}
	}

	payload, encoding := s.compressor.Compress(pdf)

	key := s.keys.DocumentKey(c.OrganizationID, storage.AutoGeneratedFileName(c.ID, s.now()))
	if err := s.store.Put(ctx, key, payload, "application/pdf", encoding); err != nil {
		return "", errs.Upstream("failed to store contract document", err)
	}

	s.sweepGenerated(ctx, c, key)

	url := s.keys.ToPublicURL(key)
	if err := s.contracts.UpdateSignedPdfUrl(ctx, nil, c.ID, url); err != nil {
		return "", errs.Upstream("failed to link contract document", err)
	}

	// Manual generation of an unsigned contract resets it to PENDING; a
	// signed contract keeps its signature status on regeneration.
	if manual && c.SignedAt == nil {
		next, err := contract.Next(c.Status, contract.ActionManualGenerate)
		if err != nil {
			return "", err
		}
		if err := s.contracts.UpdateStatus(ctx, nil, c.ID, next); err != nil {
			return "", errs.Upstream("failed to update contract status", err)
		}
	}

	return url, nil
}

// StoreUploadedSignedPdf accepts an externally signed document, stores it
// under the manual-upload naming and marks the contract SIGNED. Auto
// generated documents for the contract are cleaned up, the upload wins.
func (s *Service) StoreUploadedSignedPdf(ctx context.Context, contractId string, payload []byte) (string, error) {
	c, err := s.loadContract(ctx, contractId)
	if err != nil {
		return "", err
	}

	if _, err := contract.Transition(c, contract.ActionManualUpload); err != nil {
		return "", err
	}

	if _, err := s.validate(payload); err != nil {
		return "", errs.Validation("uploaded file is not a valid PDF document")
	}

	stored, encoding := s.compressor.Compress(payload)

	key := s.keys.DocumentKey(c.OrganizationID, storage.ManualUploadFileName(s.now()))
	if err := s.store.Put(ctx, key, stored, "application/pdf", encoding); err != nil {
		return "", errs.Upstream("failed to store uploaded document", err)
	}

	s.sweepGenerated(ctx, c, key)

	url := s.keys.ToPublicURL(key)
	if err := s.contracts.MarkManuallySigned(ctx, nil, c.ID, s.now(), url); err != nil {
		return "", errs.Upstream("failed to mark contract signed", err)
	}

	return url, nil
}

// Document is a downloadable contract document.
type Document struct {
	Payload  []byte
	Filename string
}

// Download serves the contract document through the token gate: the caller
// must present the contract's signature reference. Payloads come back
// decompressed regardless of how they are stored.
func (s *Service) Download(ctx context.Context, contractId, token string) (*Document, error) {
	c, err := s.loadContract(ctx, contractId)
	if err != nil {
		return nil, err
	}

	if token == "" || c.SignatureReference == "" || token != c.SignatureReference {
		return nil, errs.Forbidden("invalid download token")
	}

	if c.SignedPdfURL == "" {
		return nil, errs.NotFound("contract has no document")
	}

	key, ok := s.keys.KeyFromURL(c.SignedPdfURL)
	if !ok {
		// Legacy rows store the bare object key.
		key = c.SignedPdfURL
	}

	payload, encoding, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, errs.NotFound("contract document not found")
		}
		return nil, errs.Upstream("failed to fetch contract document", err)
	}

	payload, err = s.compressor.Decompress(payload, encoding)
	if err != nil {
		return nil, errs.Upstream("failed to decompress contract document", err)
	}

	return &Document{
		Payload:  payload,
		Filename: fmt.Sprintf("contrat_%s.pdf", c.ContractNumber),
	}, nil
}

// sweepGenerated deletes the contract's auto-generated documents except the
// one just written. Manual uploads are never touched: their filenames are
// outside the auto-generated convention.
func (s *Service) sweepGenerated(ctx context.Context, c *model.Contract, keep string) {
	keys, err := s.store.List(ctx, s.keys.DocumentPrefix(c.OrganizationID))
	if err != nil {
		s.logger.Warnf("Failed to list documents of organization %s for cleanup: %v", c.OrganizationID, err)
		return
	}

	for _, key := range keys {
		if key == keep || !storage.IsAutoGeneratedFor(c.ID, key) {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warnf("Failed to delete stale document %s: %v", key, err)
		}
	}
}
