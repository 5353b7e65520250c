package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/signing"
	"github.com/narith-dev/RentSign/internal/util"
)

type SignLinkController struct {
	*baseController
}

const (
	ErrSignLinkTokenRequired = "sign link token is required"
)

// Resolve lets the customer review the contract behind a signature link
// before signing. The token alone authenticates the request.
func (slc SignLinkController) Resolve(ctx *gin.Context) {
	token := ctx.Params.ByName("token")
	if token == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Token is required", util.GenerateErrorMessages(errors.New(ErrSignLinkTokenRequired), "token"), nil)
		return
	}

	link, err := slc.app.Signing.Resolve(ctx, token)
	if err != nil {
		util.ResponseError(ctx, err, "Failed to resolve signature link")
		return
	}

	c := link.Contract
	util.ResponseSuccess(ctx, gin.H{
		"contract": gin.H{
			"contractNumber": c.ContractNumber,
			"status":         c.Status,
			"customerName":   c.Customer.FullName(),
			"contractType":   c.ContractType.Name,
			"startAt":        c.StartAt,
			"endAt":          c.EndAt,
			"totalTtc":       c.TotalTTC,
			"cautionAmount":  c.CautionAmount,
		},
		"expiresAt": link.ExpiresAt,
	})
}

// Sign redeems the link and signs the contract electronically.
func (slc SignLinkController) Sign(ctx *gin.Context) {
	token := ctx.Params.ByName("token")
	if token == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Token is required", util.GenerateErrorMessages(errors.New(ErrSignLinkTokenRequired), "token"), nil)
		return
	}

	c, err := slc.app.Signing.Redeem(ctx, token, signing.ClientIP(ctx.Request))
	if err != nil {
		util.ResponseError(ctx, err, "Failed to sign contract")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"contract": gin.H{
			"contractNumber": c.ContractNumber,
			"status":         c.Status,
			"signedAt":       c.SignedAt,
		},
	})
}
