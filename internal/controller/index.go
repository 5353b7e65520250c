package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/util"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"service": "rentsign-api",
		"env":     ic.app.Config.ENV,
	})
}
