package repository

import (
	"context"

	constant "github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/model"
	"gorm.io/gorm"
)

type SignLinkRepository struct {
	*baseRepository
}

func (slr SignLinkRepository) Create(ctx context.Context, tx *gorm.DB, link *model.SignLink) (*model.SignLink, error) {
	slr.logger.Debugf("Create sign link for contract: %s", link.ContractID)

	db := slr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.SignLink{}).Create(&link).Error; err != nil {
		return link, err
	}

	return link, nil
}

// GetByToken returns the link with its full contract context so the signer
// sees everything they are signing for.
func (slr SignLinkRepository) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*model.SignLink, error) {
	slr.logger.Debugf("Get sign link by token")

	db := slr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var link model.SignLink
	if err := db.WithContext(ctx).Model(&model.SignLink{}).
		Where(model.SignLink{Token: token}).
		Preload("Contract.Customer").
		Preload("Contract.ContractType").
		Preload("Contract.Package.Addons").
		Preload("Contract.AddonLinks.Addon").
		Preload("Contract.Dresses.Dress").
		First(&link).Error; err != nil {
		return nil, err
	}

	return &link, nil
}

// DeleteByContractId invalidates every link of a contract. Issuing a new
// link calls this first so at most one live link exists per contract.
func (slr SignLinkRepository) DeleteByContractId(ctx context.Context, tx *gorm.DB, contractId string) error {
	slr.logger.Debugf("Delete sign links of contract: %s", contractId)

	db := slr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("contract_id = ?", contractId).Delete(&model.SignLink{}).Error
}

func (slr SignLinkRepository) DeleteById(ctx context.Context, tx *gorm.DB, id string) error {
	slr.logger.Debugf("Delete sign link: %s", id)

	db := slr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.SignLink{}).Error
}
