package middleware

import (
	"net/http"
	"strings"
	"time"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const requesterKey = "requester"

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken signs a JWT for the user. tokenKey is the key of the server
// side AuthToken row and travels as the jti claim: the signature proves the
// token was ours, the row proves it has not been revoked by logout.
func GenerateToken(user *models.User, tokenKey string) (string, error) {
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenKey,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.Cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}

// resolveRequester turns the Authorization header into a requester identity.
// Returns an anonymous requester when no credentials are presented and an
// error string when credentials are presented but bad.
func resolveRequester(c *gin.Context) (authz.Requester, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return authz.Anonymous(), ""
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return authz.Anonymous(), "Authorization header must be 'Bearer <token>'"
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return authz.Anonymous(), "Invalid or expired token"
	}

	// The signed token is only half the story: logout deletes the backing
	// row, after which the token is dead no matter what its expiry says.
	var row models.AuthToken
	if err := config.DB.Where("key = ?", claims.ID).First(&row).Error; err != nil {
		return authz.Anonymous(), "Token has been revoked"
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		return authz.Anonymous(), "Unknown user"
	}
	if !user.IsActive {
		return authz.Anonymous(), "Account is deactivated"
	}
	return authz.Requester{User: &user}, ""
}

// OptionalAuth resolves the requester when credentials are present but lets
// anonymous requests through. Bad credentials are still rejected, so a caller
// can never silently fall back to anonymous visibility.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		r, errMsg := resolveRequester(c)
		if errMsg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			c.Abort()
			return
		}
		c.Set(requesterKey, r)
		c.Next()
	}
}

// AuthRequired rejects anonymous requests outright.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		r, errMsg := resolveRequester(c)
		if errMsg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			c.Abort()
			return
		}
		if !r.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		c.Set(requesterKey, r)
		c.Next()
	}
}

// GetRequester extracts the resolved identity from the context.
func GetRequester(c *gin.Context) authz.Requester {
	val, exists := c.Get(requesterKey)
	if !exists {
		return authz.Anonymous()
	}
	return val.(authz.Requester)
}

// TokenKey returns the jti of the presented token, for logout.
func TokenKey(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.ID
}
