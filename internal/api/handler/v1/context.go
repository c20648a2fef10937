package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/api/middleware"
	"github.com/kiotdev/contesthub-api/internal/domain"
)

// identityFromContext pulls the authenticated identity set by VerifyJWT.
// It renders a 401 and returns false when the identity is missing, which
// only happens if a route forgot the middleware.
func identityFromContext(ctx *gin.Context) (domain.Identity, bool) {
	value, ok := ctx.Get(middleware.IdentityKey)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("authentication required")))

		return domain.Identity{}, false
	}

	identity, ok := value.(domain.Identity)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("authentication required")))

		return domain.Identity{}, false
	}

	return identity, true
}
