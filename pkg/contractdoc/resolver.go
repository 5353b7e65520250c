package contractdoc

import (
	"context"
)

// TemplateRef carries the fields of a contract that matter for template
// resolution.
type TemplateRef struct {
	// Optional explicit template override on the contract.
	TemplateID     *string
	ContractTypeID string
	OrganizationID string
	// Contract type name, used for the compiled-in category fallback.
	TypeName string
}

// TemplateSource looks up stored template bodies. Lookups that find nothing
// return found=false with a nil error; errors are reserved for upstream
// failures.
type TemplateSource interface {
	ById(ctx context.Context, id string) (body string, found bool, err error)
	DefaultFor(ctx context.Context, contractTypeId string, organizationId *string) (body string, found bool, err error)
}

// ResolvedTemplate is either a stored placeholder-grammar body (Body set) or
// a compiled-in clause set (Builtin). Category is always populated; for
// stored bodies it only drives package-inclusion styling and telemetry.
type ResolvedTemplate struct {
	Body     string
	Builtin  bool
	Category ClauseCategory
}

// ResolveTemplate picks the template to render, first match wins:
//  1. the contract's explicit template id, when the row exists
//  2. the organization-scoped default for the contract type
//  3. the global default for the contract type
//  4. the compiled-in clause set matching the type name
//
// Resolution is read-only.
func ResolveTemplate(ctx context.Context, src TemplateSource, ref TemplateRef) (*ResolvedTemplate, error) {
	category := CategoryForTypeName(ref.TypeName)

	if ref.TemplateID != nil && *ref.TemplateID != "" {
		body, found, err := src.ById(ctx, *ref.TemplateID)
		if err != nil {
			return nil, err
		}
		if found {
			return &ResolvedTemplate{Body: body, Category: category}, nil
		}
	}

	orgId := ref.OrganizationID
	body, found, err := src.DefaultFor(ctx, ref.ContractTypeID, &orgId)
	if err != nil {
		return nil, err
	}
	if found {
		return &ResolvedTemplate{Body: body, Category: category}, nil
	}

	body, found, err = src.DefaultFor(ctx, ref.ContractTypeID, nil)
	if err != nil {
		return nil, err
	}
	if found {
		return &ResolvedTemplate{Body: body, Category: category}, nil
	}

	return &ResolvedTemplate{Builtin: true, Category: category}, nil
}
