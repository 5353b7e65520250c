package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/util"
)

type DownloadController struct {
	*baseController
}

// Download serves the signed document. The route is public, possession of the
// contract's signature reference is the credential.
func (dc DownloadController) Download(ctx *gin.Context) {
	contractId := ctx.Params.ByName("contractId")
	token := ctx.Params.ByName("token")
	if contractId == "" || token == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Contract id and token are required", util.GenerateErrorMessages(errors.New("contract id and token are required")), nil)
		return
	}

	doc, err := dc.app.Docgen.Download(ctx, contractId, token)
	if err != nil {
		util.ResponseError(ctx, err, "Failed to download contract document")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	ctx.Data(http.StatusOK, "application/pdf", doc.Payload)
}
