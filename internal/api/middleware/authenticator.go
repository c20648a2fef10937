package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/pkg/jwthelper"
)

// IdentityKey is where VerifyJWT stores the decoded identity in the gin
// context.
const IdentityKey = "identity"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a well-formed, valid bearer token and
// attaches the decoded identity to the context for downstream handlers.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("authorization token required")))
			ctx.Abort()

			return
		}

		identity, err := jwthelper.ParseToken(a.signingKey, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			ctx.Abort()

			return
		}

		ctx.Set(IdentityKey, identity)
		ctx.Next()
	}
}

// RequireRoles allows only the whitelisted roles past. It must run after
// VerifyJWT.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, ok := ctx.Get(IdentityKey)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("authentication required")))
			ctx.Abort()

			return
		}

		identity, ok := value.(domain.Identity)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("authentication required")))
			ctx.Abort()

			return
		}

		for _, role := range roles {
			if identity.Role == role {
				ctx.Next()

				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(
			fmt.Errorf("role %q is not allowed to perform this action", identity.Role)))
		ctx.Abort()
	}
}
