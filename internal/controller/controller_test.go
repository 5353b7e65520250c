package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcontext "github.com/narith-dev/RentSign/internal/app_context"
	"github.com/narith-dev/RentSign/internal/compress"
	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/docgen"
	"github.com/narith-dev/RentSign/internal/model"
	"github.com/narith-dev/RentSign/internal/signing"
	"github.com/narith-dev/RentSign/internal/storage"
	"github.com/narith-dev/RentSign/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type fakeContracts struct {
	byId map[string]*model.Contract
}

func (f *fakeContracts) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Contract, error) {
	c, ok := f.byId[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeContracts) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status constant.ContractStatus) error {
	return nil
}

func (f *fakeContracts) MarkSignedElectronically(ctx context.Context, tx *gorm.DB, id string, signedAt time.Time, ip, location, reference string) error {
	return nil
}

func (f *fakeContracts) UpdateSignedPdfUrl(ctx context.Context, tx *gorm.DB, id string, url string) error {
	return nil
}

func (f *fakeContracts) MarkManuallySigned(ctx context.Context, tx *gorm.DB, id string, signedAt time.Time, pdfUrl string) error {
	return nil
}

type fakeLinks struct {
	byToken   map[string]*model.SignLink
	contracts *fakeContracts
}

func (f *fakeLinks) Create(ctx context.Context, tx *gorm.DB, link *model.SignLink) (*model.SignLink, error) {
	f.byToken[link.Token] = link
	return link, nil
}

func (f *fakeLinks) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*model.SignLink, error) {
	link, ok := f.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if c, ok := f.contracts.byId[link.ContractID]; ok {
		link.Contract = *c
	}
	return link, nil
}

func (f *fakeLinks) DeleteByContractId(ctx context.Context, tx *gorm.DB, contractId string) error {
	return nil
}

func (f *fakeLinks) DeleteById(ctx context.Context, tx *gorm.DB, id string) error {
	return nil
}

type fakeNotifier struct{}

func (f *fakeNotifier) SignRequestIssued(ctx context.Context, c *model.Contract, signURL string) error {
	return nil
}

func (f *fakeNotifier) ContractSigned(ctx context.Context, contractId string) error {
	return nil
}

func (f *fakeNotifier) GenerateDocument(ctx context.Context, contractId string, manual bool) error {
	return nil
}

type fakeObjects struct{}

func (f *fakeObjects) Put(ctx context.Context, key string, payload []byte, contentType, contentEncoding string) error {
	return nil
}

func (f *fakeObjects) Get(ctx context.Context, key string) ([]byte, string, error) {
	return nil, "", storage.ErrObjectNotFound
}

func (f *fakeObjects) Delete(ctx context.Context, key string) error {
	return nil
}

func (f *fakeObjects) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

func newTestRouter(contracts *fakeContracts, links *fakeLinks) *gin.Engine {
	gin.SetMode(gin.TestMode)

	signingSvc := signing.NewService(contracts, links, nil, &fakeNotifier{},
		config.SignLinkConfig{TTL: 168 * time.Hour, FRONT_URL: "https://app.example.com"}, nil)
	docgenSvc := docgen.NewService(contracts, nil, nil, compress.NewCompressor(nil), &fakeObjects{},
		storage.KeyBuilder{Bucket: "docs", PublicURL: "https://cdn.example.com"}, docgen.Options{}, nil)

	app := &appcontext.Application{
		Config:  &config.Config{},
		Logger:  util.NewLogger(),
		Signing: signingSvc,
		Docgen:  docgenSvc,
	}

	c := NewController(app)
	r := gin.New()
	r.GET("/api/v1/sign-links/:token", c.SignLink.Resolve)
	r.POST("/api/v1/sign-links/:token/sign", c.SignLink.Sign)
	r.GET("/api/v1/contracts/download/:contractId/:token", c.Download.Download)
	return r
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestResolveStatusCodes(t *testing.T) {
	contracts := &fakeContracts{byId: map[string]*model.Contract{
		"c-1": {
			BaseModel:      model.BaseModel{ID: "c-1"},
			ContractNumber: "CT-1",
			Status:         constant.ContractStatusPendingSignature,
			Customer:       model.Customer{FirstName: "Marie", LastName: "Dupont", Email: "marie@example.com"},
		},
	}}
	links := &fakeLinks{contracts: contracts, byToken: map[string]*model.SignLink{
		"live-token": {
			BaseModel:  model.BaseModel{ID: "link-1"},
			Token:      "live-token",
			ContractID: "c-1",
			ExpiresAt:  time.Now().Add(time.Hour),
		},
		"stale-token": {
			BaseModel:  model.BaseModel{ID: "link-2"},
			Token:      "stale-token",
			ContractID: "c-1",
			ExpiresAt:  time.Now().Add(-time.Hour),
		},
	}}
	r := newTestRouter(contracts, links)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"Unknown token", "nope", http.StatusNotFound},
		{"Expired token", "stale-token", http.StatusGone},
		{"Live token", "live-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/v1/sign-links/"+tt.token)
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}

			var resp struct {
				Success bool `json:"success"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Expected envelope body, got %s", w.Body.String())
			}
			if resp.Success != (tt.status == http.StatusOK) {
				t.Errorf("Expected success=%v, got %v", tt.status == http.StatusOK, resp.Success)
			}
		})
	}
}

func TestDownloadStatusCodes(t *testing.T) {
	contracts := &fakeContracts{byId: map[string]*model.Contract{
		"c-1": {
			BaseModel:          model.BaseModel{ID: "c-1"},
			ContractNumber:     "CT-1",
			Status:             constant.ContractStatusSignedElectronically,
			SignatureReference: "ref-1",
			SignedPdfURL:       "https://cdn.example.com/docs/org-1/contracts/c-1_signed_1.pdf",
		},
	}}
	links := &fakeLinks{contracts: contracts, byToken: map[string]*model.SignLink{}}
	r := newTestRouter(contracts, links)

	t.Run("Token mismatch", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/contracts/download/c-1/wrong")
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", w.Code)
		}
	})

	t.Run("Unknown contract", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/contracts/download/nope/ref-1")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("Missing object", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/contracts/download/c-1/ref-1")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
