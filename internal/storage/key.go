package storage

import (
	"fmt"
	"strings"
	"time"

	constant "github.com/narith-dev/RentSign/internal/constant"
)

// KeyBuilder derives tenant-scoped object keys and public URLs. Keys follow
// "{organizationId}/{folder}/{filename}"; the legacy pre-tenant format
// "{folder}/{filename}" stays resolvable for reads but is never written.
type KeyBuilder struct {
	Bucket    string
	PublicURL string
}

func (kb KeyBuilder) BuildKey(organizationId, folder, filename string) string {
	return fmt.Sprintf("%s/%s/%s", organizationId, folder, filename)
}

func (kb KeyBuilder) LegacyKey(folder, filename string) string {
	return fmt.Sprintf("%s/%s", folder, filename)
}

// LegacyFromScoped rewrites a tenant-scoped key into its legacy form,
// returning false when the key carries no tenant segment to drop.
func (kb KeyBuilder) LegacyFromScoped(key string) (string, bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", false
	}
	return kb.LegacyKey(parts[1], parts[2]), true
}

func (kb KeyBuilder) DocumentKey(organizationId, filename string) string {
	return kb.BuildKey(organizationId, constant.ContractDocumentFolder, filename)
}

// DocumentPrefix is the key prefix under which all of a tenant's contract
// documents live, used for cleanup listing.
func (kb KeyBuilder) DocumentPrefix(organizationId string) string {
	return fmt.Sprintf("%s/%s/", organizationId, constant.ContractDocumentFolder)
}

func (kb KeyBuilder) ToPublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(kb.PublicURL, "/"), kb.Bucket, key)
}

// KeyFromURL recovers the object key from a public document URL.
func (kb KeyBuilder) KeyFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", strings.TrimRight(kb.PublicURL, "/"), kb.Bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}

	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}

	return key, true
}

// The filename convention is the sole signal separating documents the
// cleanup sweep may delete from ones an operator uploaded by hand.

func AutoGeneratedFileName(contractId string, at time.Time) string {
	return fmt.Sprintf("%s_signed_%d.pdf", contractId, at.UnixMilli())
}

func ManualUploadFileName(at time.Time) string {
	return fmt.Sprintf("signed_upload_%d.pdf", at.UnixMilli())
}

func IsManualUpload(filename string) bool {
	return strings.HasPrefix(baseName(filename), "signed_upload_")
}

// IsAutoGeneratedFor reports whether the object was auto-generated for the
// given contract and is therefore safe to delete during regeneration.
func IsAutoGeneratedFor(contractId, filename string) bool {
	return strings.HasPrefix(baseName(filename), contractId+"_signed_")
}

func baseName(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
