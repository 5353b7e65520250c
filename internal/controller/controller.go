package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	appcontext "github.com/narith-dev/RentSign/internal/app_context"
	"github.com/narith-dev/RentSign/internal/auth"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index    *IndexController
	Contract *ContractController
	SignLink *SignLinkController
	Download *DownloadController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:    &IndexController{baseController: bc},
		Contract: &ContractController{baseController: bc},
		SignLink: &SignLinkController{baseController: bc},
		Download: &DownloadController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

// actorId identifies who performed an operator action for the audit columns.
// API-key callers carry no user, that is fine, the columns stay null.
func (b *baseController) actorId(ctx *gin.Context) *string {
	user, err := b.getAuthUser(ctx)
	if err != nil || user == nil {
		return nil
	}
	return &user.ID
}
