package contractdoc

import "time"

/*
 * contractdoc turns a contract aggregate into final PDF bytes. It owns no
 * persistence: callers map their records into ContractData and receive raw
 * bytes back.
 */

type Addon struct {
	ID    string
	Name  string
	Price float64
	// Present both on the contract and in the selected package's addon set.
	// Rendered struck-through with an "included" badge when the clause
	// category supports packages.
	IncludedInPackage bool
}

type Dress struct {
	Name  string
	Size  string
	Color string
	Price float64
}

type Financials struct {
	AccountAmount        float64
	CautionAmount        float64
	TotalHT              float64
	TotalTTC             float64
	PaidAccount          float64
	PaidCaution          float64
	DepositPaymentMethod string
}

// Signature holds the audit trail of an electronic signature. Reference is
// the token that was redeemed, kept for non-repudiation even though the link
// row itself is gone.
type Signature struct {
	SignedAt  time.Time
	SignerIP  string
	Location  string
	Reference string
}

type ContractData struct {
	ContractID     string
	ContractNumber string
	OrganizationID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	TypeName    string
	PackageName string

	CreatedAt time.Time
	StartAt   *time.Time
	EndAt     *time.Time

	Addons     []Addon
	Dresses    []Dress
	Financials Financials

	// Set only when the contract carries an electronic signature.
	Signature *Signature
	// True on the manual-generation path: renders a blank read-&-approved
	// block dated at contract creation instead of an audit block.
	IncludeSignatureBlock bool

	Category ClauseCategory
}

// PackageInclusionApplies reports whether package-inclusion styling is
// rendered at all; the generic clause set never shows it.
func (d *ContractData) PackageInclusionApplies() bool {
	return d.Category == ClauseCategoryPackageService || d.Category == ClauseCategoryDailyRental
}

func (d *ContractData) HasIncludedAddon() bool {
	if !d.PackageInclusionApplies() {
		return false
	}
	for _, a := range d.Addons {
		if a.IncludedInPackage {
			return true
		}
	}
	return false
}
