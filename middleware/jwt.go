package middleware

import (
	"fmt"
	"strings"
	"time"

	"edhub/config"
	"edhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// TokenService issues and verifies signed session tokens
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTKey),
		expiry: time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

// Generate produces a signed JWT carrying the user's identity and role
func (s *TokenService) Generate(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"role":   string(user.Role),
		"email":  user.Email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token and returns the user ID it was issued for
func (s *TokenService) Parse(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, fmt.Errorf("invalid token payload")
	}

	// JWT numeric claims decode as float64
	userID := claims["userId"].(float64)
	return uint(userID), nil
}

// Auth gates requests by authentication and role membership
type Auth struct {
	DB     *gorm.DB
	Tokens *TokenService
}

func NewAuth(db *gorm.DB, tokens *TokenService) *Auth {
	return &Auth{DB: db, Tokens: tokens}
}

// bearerToken extracts the session token from the Authorization header or the
// token cookie. The header takes precedence when both are present.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ""
		}
		return authHeader[len("Bearer "):]
	}
	return c.Cookies("token")
}

// Required verifies the session token and hydrates the full user record.
// Re-reading the user on every request is deliberate: the role may have
// changed since the token was issued.
func (a *Auth) Required(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	userID, err := a.Tokens.Parse(tokenString)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	var user models.User
	if err := a.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.IsBlocked {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Account is blocked!", nil)
	}

	c.Locals("userId", user.ID)
	c.Locals("currentUser", &user)

	return c.Next()
}

// RequireRoles returns a middleware that rejects authenticated users whose
// role is not in the allowed set. Must run after Required.
func (a *Auth) RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("currentUser").(*models.User)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// CurrentUser returns the hydrated user set by Required
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("currentUser").(*models.User)
	return user, ok
}
