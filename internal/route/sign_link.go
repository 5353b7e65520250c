package route

import (
	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/controller"
)

func V1_SignLinks(r *gin.RouterGroup, slc *controller.SignLinkController) {
	// No auth middleware, the single-use token is the credential.
	v1 := r.Group("/v1/sign-links")
	{
		v1.GET("/:token", slc.Resolve)
		v1.POST("/:token/sign", slc.Sign)
	}
}
