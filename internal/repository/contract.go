package repository

import (
	"context"
	"time"

	constant "github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/model"
	"gorm.io/gorm"
)

type ContractRepository struct {
	*baseRepository
}

func withContractAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("ContractType").
		Preload("Package.Addons").
		Preload("AddonLinks.Addon").
		Preload("Dresses.Dress")
}

// GetById returns the full contract aggregate. Soft-deleted rows are
// returned as well, their lifecycle is the caller's concern.
func (cr ContractRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Contract, error) {
	cr.logger.Debugf("Get contract by id: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var contract model.Contract
	if err := withContractAggregate(db.WithContext(ctx).Model(&model.Contract{})).Where(model.Contract{
		BaseModel: model.BaseModel{
			ID: id,
		},
	}).First(&contract).Error; err != nil {
		return nil, err
	}

	return &contract, nil
}

func (cr ContractRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status constant.ContractStatus) error {
	cr.logger.Debugf("Update contract %s status to %s", id, status)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", id).
		Update("status", status).Error
}

// MarkSignedElectronically commits the signature transition in one update so
// the contract is durably signed before the sign-link row is removed.
func (cr ContractRepository) MarkSignedElectronically(ctx context.Context, tx *gorm.DB, id string, signedAt time.Time, ip, location, reference string) error {
	cr.logger.Debugf("Mark contract %s signed electronically from ip %s", id, ip)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":              constant.ContractStatusSignedElectronically,
			"signed_at":           signedAt,
			"signature_ip":        ip,
			"signature_location":  location,
			"signature_reference": reference,
		}).Error
}

func (cr ContractRepository) MarkManuallySigned(ctx context.Context, tx *gorm.DB, id string, signedAt time.Time, pdfUrl string) error {
	cr.logger.Debugf("Mark contract %s manually signed", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":         constant.ContractStatusSigned,
			"signed_at":      signedAt,
			"signed_pdf_url": pdfUrl,
		}).Error
}

func (cr ContractRepository) UpdateSignedPdfUrl(ctx context.Context, tx *gorm.DB, id string, url string) error {
	cr.logger.Debugf("Update contract %s signed pdf url", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", id).
		Update("signed_pdf_url", url).Error
}

func (cr ContractRepository) SoftDelete(ctx context.Context, tx *gorm.DB, id string, deletedBy *string) error {
	cr.logger.Debugf("Soft delete contract: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	now := time.Now()
	return db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": now,
			"deleted_by": deletedBy,
		}).Error
}

func (cr ContractRepository) Restore(ctx context.Context, tx *gorm.DB, id string) error {
	cr.logger.Debugf("Restore contract: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": nil,
			"deleted_by": nil,
		}).Error
}

// HardDelete removes the row entirely, irreversible. No referential checks
// happen at this layer.
func (cr ContractRepository) HardDelete(ctx context.Context, tx *gorm.DB, id string) error {
	cr.logger.Debugf("Hard delete contract: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contract{}).Error
}
