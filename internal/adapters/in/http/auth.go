package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
)

// actorContextKey is where the JWT middleware stores the resolved actor on
// the echo context.
const actorContextKey = "actor"

// sessionClaims are the custom claims of a dispatch session token.
type sessionClaims struct {
	ActorID  string `json:"actor_id"`
	AgencyID string `json:"agency_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTMiddleware verifies the Bearer token with the given HS256 secret and
// resolves it into a ports.Actor for downstream handlers. Requests without
// a valid token are rejected with the UNAUTHORIZED envelope.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized,
					"missing Authorization header", nil)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized,
					"Authorization header must be a Bearer token", nil)
			}

			claims := &sessionClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized,
					"invalid or expired token", nil)
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized,
					"token claims are malformed", nil)
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFromClaims(claims *sessionClaims) (ports.Actor, error) {
	actorID, err := kernel.UUIDFromString(claims.ActorID)
	if err != nil {
		return ports.Actor{}, fmt.Errorf("actor_id: %w", err)
	}

	agencyID, err := kernel.UUIDFromString(claims.AgencyID)
	if err != nil {
		return ports.Actor{}, fmt.Errorf("agency_id: %w", err)
	}

	if claims.Role == "" {
		return ports.Actor{}, fmt.Errorf("role claim is empty")
	}

	return ports.Actor{
		ID:       actorID,
		AgencyID: agencyID,
		Role:     claims.Role,
	}, nil
}

// actorFrom reads the actor the JWT middleware resolved for this request.
func actorFrom(ctx echo.Context) (ports.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(ports.Actor)
	return actor, ok
}
