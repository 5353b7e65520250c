package contractdoc

import (
	"context"
	"errors"
	"testing"
)

type fakeTemplateSource struct {
	byId     map[string]string
	orgBody  string
	orgFound bool
	glbBody  string
	glbFound bool
	err      error
}

func (f *fakeTemplateSource) ById(ctx context.Context, id string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	body, ok := f.byId[id]
	return body, ok, nil
}

func (f *fakeTemplateSource) DefaultFor(ctx context.Context, contractTypeId string, organizationId *string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	if organizationId != nil {
		return f.orgBody, f.orgFound, nil
	}
	return f.glbBody, f.glbFound, nil
}

func TestResolveTemplatePrecedence(t *testing.T) {
	explicitId := "tpl-explicit"
	missingId := "tpl-gone"
	ref := TemplateRef{
		ContractTypeID: "type-1",
		OrganizationID: "org-1",
		TypeName:       "Forfait mariage",
	}

	t.Run("Explicit template wins", func(t *testing.T) {
		src := &fakeTemplateSource{
			byId:     map[string]string{explicitId: "explicit body"},
			orgFound: true, orgBody: "org body",
			glbFound: true, glbBody: "global body",
		}
		r := ref
		r.TemplateID = &explicitId

		resolved, err := ResolveTemplate(context.Background(), src, r)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resolved.Builtin || resolved.Body != "explicit body" {
			t.Errorf("Expected explicit body, got %+v", resolved)
		}
		if resolved.Category != ClauseCategoryPackageService {
			t.Errorf("Expected package-service category, got %v", resolved.Category)
		}
	})

	t.Run("Missing explicit id falls through to org default", func(t *testing.T) {
		src := &fakeTemplateSource{
			byId:     map[string]string{},
			orgFound: true, orgBody: "org body",
		}
		r := ref
		r.TemplateID = &missingId

		resolved, err := ResolveTemplate(context.Background(), src, r)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resolved.Body != "org body" {
			t.Errorf("Expected org default, got %+v", resolved)
		}
	})

	t.Run("Org default before global default", func(t *testing.T) {
		src := &fakeTemplateSource{
			orgFound: true, orgBody: "org body",
			glbFound: true, glbBody: "global body",
		}

		resolved, err := ResolveTemplate(context.Background(), src, ref)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resolved.Body != "org body" {
			t.Errorf("Expected org default, got %+v", resolved)
		}
	})

	t.Run("Global default when org has none", func(t *testing.T) {
		src := &fakeTemplateSource{
			glbFound: true, glbBody: "global body",
		}

		resolved, err := ResolveTemplate(context.Background(), src, ref)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resolved.Body != "global body" {
			t.Errorf("Expected global default, got %+v", resolved)
		}
	})

	t.Run("Builtin when nothing stored", func(t *testing.T) {
		src := &fakeTemplateSource{}

		resolved, err := ResolveTemplate(context.Background(), src, ref)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !resolved.Builtin {
			t.Errorf("Expected builtin resolution, got %+v", resolved)
		}
		if resolved.Category != ClauseCategoryPackageService {
			t.Errorf("Expected category from type name, got %v", resolved.Category)
		}
	})

	t.Run("Source error propagates", func(t *testing.T) {
		src := &fakeTemplateSource{err: errors.New("db down")}

		_, err := ResolveTemplate(context.Background(), src, ref)
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}
