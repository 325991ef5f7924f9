package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/items-api/internal/domain"
	apperrors "github.com/spec-kit/items-api/pkg/util/errorutil"
)

const (
	principalKey = "auth_principal"
	bearerScheme = "Bearer"
)

// ErrMissingToken is returned when no bearer credential is presented.
var ErrMissingToken = errors.New("auth: missing bearer token")

// Principal represents the authenticated caller.
type Principal struct {
	SubjectID string
	Role      domain.Role
}

// AuthMiddleware validates bearer tokens and exposes the caller's principal.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate turns an Authorization header value into a principal.
func (m *AuthMiddleware) Authenticate(authHeader string) (Principal, error) {
	token, err := extractBearerToken(authHeader)
	if err != nil {
		return Principal{}, err
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{SubjectID: claims.Subject, Role: claims.Role}, nil
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.Authenticate(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return apperrors.NewUnauthorized(err)
	}

	c.Locals(principalKey, &principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}

func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
