package repository

import (
	"context"

	constant "github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/model"
	"gorm.io/gorm"
)

type ContractTemplateRepository struct {
	*baseRepository
}

func (ctr ContractTemplateRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.ContractTemplate, error) {
	ctr.logger.Debugf("Get contract template by id: %s", id)

	db := ctr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var template model.ContractTemplate
	if err := db.WithContext(ctx).Model(&model.ContractTemplate{}).Where(model.ContractTemplate{
		BaseModel: model.BaseModel{
			ID: id,
		},
	}).First(&template).Error; err != nil {
		return nil, err
	}

	return &template, nil
}

// GetDefault returns the active, non-deleted default template for a contract
// type. Pass a nil organizationId for the global scope. At most one such row
// exists per (contract_type, organization) pair.
func (ctr ContractTemplateRepository) GetDefault(ctx context.Context, tx *gorm.DB, contractTypeId string, organizationId *string) (*model.ContractTemplate, error) {
	ctr.logger.Debugf("Get default contract template for type: %s", contractTypeId)

	db := ctr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.ContractTemplate{}).
		Where("contract_type_id = ? AND is_default = ? AND is_active = ? AND deleted_at IS NULL", contractTypeId, true, true)

	if organizationId != nil {
		query = query.Where("organization_id = ?", *organizationId)
	} else {
		query = query.Where("organization_id IS NULL")
	}

	var template model.ContractTemplate
	if err := query.First(&template).Error; err != nil {
		return nil, err
	}

	return &template, nil
}
