package route

import (
	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/controller"
	"github.com/narith-dev/RentSign/internal/middleware"
)

func V1_Contracts(r *gin.RouterGroup, cc *controller.ContractController, dc *controller.DownloadController, middleware *middleware.Middleware) {
	// Token-gated, the signature reference in the path is the credential.
	public := r.Group("/v1/contracts")
	{
		public.GET("/download/:contractId/:token", dc.Download)
	}

	v1 := r.Group("/v1/contracts")
	v1.Use(middleware.OperatorAuthMiddleware)
	{
		v1.POST("/:contractId/generate-signature", cc.GenerateSignature)
		v1.POST("/:contractId/generate-pdf", cc.GeneratePdf)
		v1.POST("/:contractId/upload-signed-pdf", cc.UploadSignedPdf)
		v1.DELETE("/:contractId", cc.SoftDelete)
		v1.POST("/:contractId/restore", cc.Restore)
		v1.DELETE("/:contractId/hard", cc.HardDelete)
	}
}
