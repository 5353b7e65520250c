package docgen

import (
	"context"
	"errors"

	"github.com/narith-dev/RentSign/internal/model"
	"gorm.io/gorm"
)

// TemplateStore is the template persistence slice the resolver needs.
type TemplateStore interface {
	GetById(ctx context.Context, tx *gorm.DB, id string) (*model.ContractTemplate, error)
	GetDefault(ctx context.Context, tx *gorm.DB, contractTypeId string, organizationId *string) (*model.ContractTemplate, error)
}

// templateSource adapts the repository to the resolver's lookup contract:
// a missing row is found=false, inactive or deleted overrides are skipped
// the same way.
type templateSource struct {
	store TemplateStore
}

func NewTemplateSource(store TemplateStore) *templateSource {
	return &templateSource{store: store}
}

func (ts *templateSource) ById(ctx context.Context, id string) (string, bool, error) {
	tpl, err := ts.store.GetById(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	if !tpl.IsActive || tpl.DeletedAt != nil {
		return "", false, nil
	}

	return tpl.Content, true, nil
}

func (ts *templateSource) DefaultFor(ctx context.Context, contractTypeId string, organizationId *string) (string, bool, error) {
	tpl, err := ts.store.GetDefault(ctx, nil, contractTypeId, organizationId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return tpl.Content, true, nil
}
