package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/models"
)

// Gin context keys set by the authentication middleware.
const (
	ContextUserID          = "userID"
	ContextUserEmail       = "userEmail"
	ContextUserDisplayName = "userDisplayName"
	ContextUserPhotoURL    = "userPhotoURL"
)

// ErrorResponse mirrors api.ErrorResponse; it is declared here because api imports this package.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

var errInvalidToken = errors.New("invalid or expired authentication token")

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

// FirebaseTokenClient is the part of *auth.Client used to verify Firebase ID tokens.
type FirebaseTokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens. The subject is the Firebase UID.
type FirebaseVerifier struct {
	client FirebaseTokenClient
}

func NewFirebaseVerifier(client FirebaseTokenClient) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*models.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidToken, err)
	}
	identity := &models.Identity{Subject: token.UID}
	identity.Email, _ = token.Claims["email"].(string)
	identity.Name, _ = token.Claims["name"].(string)
	identity.Picture, _ = token.Claims["picture"].(string)
	return identity, nil
}

// oidcClaims are the access-token claims read from Auth0 (or any OIDC issuer).
type oidcClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// JWTVerifier verifies signed JWT bearer tokens against an issuer and audience.
type JWTVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewJWTVerifier builds a verifier that accepts only the given signing methods.
func NewJWTVerifier(keyFunc jwt.Keyfunc, issuer, audience string, methods ...string) *JWTVerifier {
	return &JWTVerifier{
		keyfunc: keyFunc,
		parser: jwt.NewParser(
			jwt.WithValidMethods(methods),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
	}
}

// NewAuth0Verifier verifies RS256 access tokens with keys fetched from the tenant's JWKS
// endpoint. The key set is refreshed in the background.
func NewAuth0Verifier(jwksURL, issuer, audience string) (*JWTVerifier, error) {
	jwks, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return NewJWTVerifier(jwks.Keyfunc, issuer, audience, jwt.SigningMethodRS256.Alg()), nil
}

func (v *JWTVerifier) Verify(_ context.Context, raw string) (*models.Identity, error) {
	claims := &oidcClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, v.keyfunc); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", errInvalidToken)
	}
	return &models.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// AuthMiddleware authenticates requests with a bearer token.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if verifier == nil {
		panic("AuthMiddleware requires a TokenVerifier")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// VerifyToken verifies the Authorization bearer token and stores the caller identity in the
// Gin context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header is required")
			return
		}

		scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthenticated(c, "Authorization header format must be 'Bearer {token}'")
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			m.logger.Warn("Rejected bearer token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			abortUnauthenticated(c, errInvalidToken.Error())
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// HeaderIdentity trusts a subject forwarded by an authenticating proxy in the named header.
func HeaderIdentity(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := strings.TrimSpace(c.GetHeader(header))
		if subject == "" {
			abortUnauthenticated(c, header+" header is required")
			return
		}
		setIdentity(c, &models.Identity{Subject: subject})
		c.Next()
	}
}

// ResolveOwnerID returns the authenticated caller's identity string.
func ResolveOwnerID(c *gin.Context) (string, error) {
	ownerID := strings.TrimSpace(c.GetString(ContextUserID))
	if ownerID == "" {
		return "", core.ErrUnauthenticated
	}
	return ownerID, nil
}

// CurrentIdentity returns the identity stored by the authentication middleware.
func CurrentIdentity(c *gin.Context) models.Identity {
	return models.Identity{
		Subject: c.GetString(ContextUserID),
		Email:   c.GetString(ContextUserEmail),
		Name:    c.GetString(ContextUserDisplayName),
		Picture: c.GetString(ContextUserPhotoURL),
	}
}

func setIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(ContextUserID, identity.Subject)
	if identity.Email != "" {
		c.Set(ContextUserEmail, identity.Email)
	}
	if identity.Name != "" {
		c.Set(ContextUserDisplayName, identity.Name)
	}
	if identity.Picture != "" {
		c.Set(ContextUserPhotoURL, identity.Picture)
	}
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message, Code: "unauthenticated"})
}
