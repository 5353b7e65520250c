package docgen

import (
	"time"

	"github.com/narith-dev/RentSign/internal/model"
	"github.com/narith-dev/RentSign/pkg/contractdoc"
)

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// BuildContractData flattens the contract aggregate into the render input.
// includeApproval requests the blank read-and-approved block; a recorded
// signature always wins over it.
func BuildContractData(c *model.Contract, includeApproval bool) *contractdoc.ContractData {
	data := &contractdoc.ContractData{
		ContractID:     c.ID,
		ContractNumber: c.ContractNumber,
		OrganizationID: c.OrganizationID,
		CustomerName:   c.Customer.FullName(),
		CustomerEmail:  c.Customer.Email,
		CustomerPhone:  c.Customer.Phone,
		TypeName:       c.ContractType.Name,
		CreatedAt:      derefTime(c.CreatedAt),
		StartAt:        c.StartAt,
		EndAt:          c.EndAt,
		Financials: contractdoc.Financials{
			AccountAmount:        deref(c.AccountAmount),
			CautionAmount:        deref(c.CautionAmount),
			TotalHT:              deref(c.TotalHT),
			TotalTTC:             deref(c.TotalTTC),
			PaidAccount:          deref(c.PaidAccount),
			PaidCaution:          deref(c.PaidCaution),
			DepositPaymentMethod: c.DepositPaymentMethod,
		},
	}

	if c.Package != nil {
		data.PackageName = c.Package.Name
	}

	for _, link := range c.AddonLinks {
		included := c.Package != nil && c.Package.HasAddon(link.AddonID)
		price := deref(link.Price)
		if price == 0 {
			price = deref(link.Addon.Price)
		}
		data.Addons = append(data.Addons, contractdoc.Addon{
			ID:                link.AddonID,
			Name:              link.Addon.Name,
			Price:             price,
			IncludedInPackage: included,
		})
	}

	for _, link := range c.Dresses {
		data.Dresses = append(data.Dresses, contractdoc.Dress{
			Name:  link.Dress.Name,
			Size:  link.Dress.Size,
			Color: link.Dress.Color,
			Price: deref(link.Dress.Price),
		})
	}

	if c.SignedAt != nil {
		data.Signature = &contractdoc.Signature{
			SignedAt:  *c.SignedAt,
			SignerIP:  c.SignatureIP,
			Location:  c.SignatureLocation,
			Reference: c.SignatureReference,
		}
	} else {
		data.IncludeSignatureBlock = includeApproval
	}

	return data
}

// TemplateRefFor extracts the resolution inputs from a contract aggregate.
func TemplateRefFor(c *model.Contract) contractdoc.TemplateRef {
	return contractdoc.TemplateRef{
		TemplateID:     c.TemplateID,
		ContractTypeID: c.ContractTypeID,
		OrganizationID: c.OrganizationID,
		TypeName:       c.ContractType.Name,
	}
}
