package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/util"
)

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, 401, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		ctx.Abort()
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, 401, "Invalid token", util.GenerateErrorMessages(err, "unauthorized"), nil)
		ctx.Abort()
		return
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		m.app.Logger.Debugf("Invalid token type: %s", claim.Type)
		util.ResponseFailed(ctx, 401, "Invalid access token type", util.GenerateErrorMessages(errors.New("invalid access token type"), "unauthorized"), nil)
		ctx.Abort()
		return
	}

	ctx.Set("user", claim.User)
	ctx.Next()
}

// OperatorAuthMiddleware accepts either an operator bearer token or the
// back-office API key. Integrations like the booking system authenticate
// with the key, humans with their JWT.
func (m Middleware) OperatorAuthMiddleware(ctx *gin.Context) {
	if key, err := util.ReadApiKey(ctx); err == nil {
		expected := m.app.Config.Auth.API_KEY
		if expected != "" && subtle.ConstantTimeCompare([]byte(key), []byte(expected)) == 1 {
			ctx.Next()
			return
		}

		m.app.Logger.Debug("Invalid api key")
		util.ResponseFailed(ctx, 401, "Invalid api key", util.GenerateErrorMessages(errors.New("invalid api key"), "unauthorized"), nil)
		ctx.Abort()
		return
	}

	m.AuthMiddleware(ctx)
}
