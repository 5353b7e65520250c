package controller

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/storage"
	"github.com/narith-dev/RentSign/internal/util"
	"gorm.io/gorm"
)

type ContractController struct {
	*baseController
}

const (
	ErrContractIdRequired = "contract id is required"
	ErrContractNotFound   = "contract not found"
)

// Uploaded documents are stored compressed, the cap applies to the raw file.
const maxUploadSignedPdfSize = 20 << 20

func (cc ContractController) GenerateSignature(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	if contractId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id is required", util.GenerateErrorMessages(errors.New(ErrContractIdRequired), "contractId"), nil)
		return
	}

	issued, err := cc.app.Signing.Issue(ctx, contractId)
	if err != nil {
		cc.app.Logger.Errorf("Failed to issue sign link for contract %s: %v", contractId, err)
		util.ResponseError(ctx, err, "Failed to generate signature link")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"signLink": gin.H{
			"token":     issued.Link.Token,
			"url":       issued.URL,
			"expiresAt": issued.Link.ExpiresAt,
		},
		"emailSentTo": issued.EmailSentTo,
	})
}

func (cc ContractController) GeneratePdf(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	if contractId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id is required", util.GenerateErrorMessages(errors.New(ErrContractIdRequired), "contractId"), nil)
		return
	}

	url, err := cc.app.Docgen.Generate(ctx, contractId, true)
	if err != nil {
		cc.app.Logger.Errorf("Failed to generate document for contract %s: %v", contractId, err)
		util.ResponseError(ctx, err, "Failed to generate contract document")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"signedPdfUrl": url,
	})
}

func (cc ContractController) UploadSignedPdf(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	if contractId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id is required", util.GenerateErrorMessages(errors.New(ErrContractIdRequired), "contractId"), nil)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No file uploaded", util.GenerateErrorMessages(errors.New("signed pdf file is required"), "file"), nil)
		return
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file type", util.GenerateErrorMessages(errors.New("only pdf files are accepted"), "file"), nil)
		return
	}

	if file.Size > maxUploadSignedPdfSize {
		util.ResponseFailed(ctx, http.StatusBadRequest, "File too large", util.GenerateErrorMessages(errors.New("file exceeds the upload size limit"), "file"), nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}

	url, err := cc.app.Docgen.StoreUploadedSignedPdf(ctx, contractId, payload)
	if err != nil {
		cc.app.Logger.Errorf("Failed to store uploaded signed pdf for contract %s: %v", contractId, err)
		util.ResponseError(ctx, err, "Failed to store signed document")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"signedPdfUrl": url,
	})
}

func (cc ContractController) SoftDelete(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	if contractId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id is required", util.GenerateErrorMessages(errors.New(ErrContractIdRequired), "contractId"), nil)
		return
	}

	if _, err := cc.app.Repository.Contract.GetById(ctx, nil, contractId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Contract not found", util.GenerateErrorMessages(errors.New(ErrContractNotFound), "contractId"), nil)
			return
		}

		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete contract", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := cc.app.Repository.Contract.SoftDelete(ctx, nil, contractId, cc.actorId(ctx)); err != nil {
		cc.app.Logger.Errorf("Failed to soft delete contract %s: %v", contractId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete contract", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (cc ContractController) Restore(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	if contractId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id is required", util.GenerateErrorMessages(errors.New(ErrContractIdRequired), "contractId"), nil)
		return
	}

	if err := cc.app.Repository.Contract.Restore(ctx, nil, contractId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Contract not found", util.GenerateErrorMessages(errors.New(ErrContractNotFound), "contractId"), nil)
			return
		}

		cc.app.Logger.Errorf("Failed to restore contract %s: %v", contractId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to restore contract", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (cc ContractController) HardDelete(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	if contractId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id is required", util.GenerateErrorMessages(errors.New(ErrContractIdRequired), "contractId"), nil)
		return
	}

	c, err := cc.app.Repository.Contract.GetById(ctx, nil, contractId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Contract not found", util.GenerateErrorMessages(errors.New(ErrContractNotFound), "contractId"), nil)
			return
		}

		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete contract", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := cc.app.Repository.Contract.HardDelete(ctx, nil, contractId); err != nil {
		cc.app.Logger.Errorf("Failed to hard delete contract %s: %v", contractId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete contract", util.GenerateErrorMessages(err), nil)
		return
	}

	// Row is gone, stored documents for it are now orphans. Manual uploads
	// carry no contract id in their filename, so the linked document URL is
	// the only handle we have on those.
	orphans := map[string]struct{}{}
	if key, ok := cc.app.Storage.Keys.KeyFromURL(c.SignedPdfURL); ok {
		orphans[key] = struct{}{}
	}

	keys, err := cc.app.Storage.List(ctx, cc.app.Storage.Keys.DocumentPrefix(c.OrganizationID))
	if err != nil {
		cc.app.Logger.Errorf("Failed to list documents of deleted contract %s: %v", contractId, err)
	}
	for _, key := range keys {
		if storage.IsAutoGeneratedFor(c.ID, key) {
			orphans[key] = struct{}{}
		}
	}

	for key := range orphans {
		if err := cc.app.Storage.Delete(ctx, key); err != nil {
			// Not fatal, the contract row is already gone.
			cc.app.Logger.Errorf("Failed to delete document %s of deleted contract %s: %v", key, contractId, err)
		}
	}

	util.ResponseSuccess(ctx, nil)
}
