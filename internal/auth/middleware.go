package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "taskboard/internal/errors"
)

// identityKey is the context key the gate stores the decoded identity under.
const identityKey = "identity"

const bearerPrefix = "Bearer "

// Identity is the decoded token payload attached to authenticated requests.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Gate guards routes with bearer token verification. Both middleware variants
// share the single verify function; they differ only in how they react to its
// result.
type Gate struct {
	jwt *JWTService
}

// NewGate creates an authorization gate backed by the token service.
func NewGate(jwt *JWTService) *Gate {
	return &Gate{jwt: jwt}
}

// verify runs the full decision table for an Authorization header value and
// returns the decoded identity or one of the closed token error kinds.
func (g *Gate) verify(header string) (*Identity, error) {
	if header == "" {
		return nil, apperrors.ErrTokenMissing
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, apperrors.ErrTokenMalformed
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return nil, apperrors.ErrTokenMissing
	}

	claims, err := g.jwt.Verify(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	return &Identity{UserID: userID, Email: claims.Email}, nil
}

// Required rejects requests that do not carry a valid bearer token. Token
// failures from the closed set are answered with 401; an unexpected
// verification fault is surfaced as a server error.
func (g *Gate) Required() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := g.verify(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if isTokenKind(err) {
					httpErr := apperrors.MapErrorToHTTP(err)
					return c.JSON(httpErr.StatusCode, httpErr.Body)
				}
				return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error:   "Token verification failed.",
					Message: err.Error(),
				})
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Optional attaches an identity when a valid token is present and silently
// continues unauthenticated on any failure.
func (g *Gate) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity, err := g.verify(c.Request().Header.Get(echo.HeaderAuthorization)); err == nil {
				c.Set(identityKey, identity)
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by the gate, if any.
func IdentityFrom(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(identityKey).(*Identity)
	return identity, ok
}

func isTokenKind(err error) bool {
	return errors.Is(err, apperrors.ErrTokenMissing) ||
		errors.Is(err, apperrors.ErrTokenMalformed) ||
		errors.Is(err, apperrors.ErrTokenInvalid) ||
		errors.Is(err, apperrors.ErrTokenExpired)
}
