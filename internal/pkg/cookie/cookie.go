package cookie

import (
	"net/http"
	"strings"
	"time"

	"rentcar-backend/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"

	accessTokenPath = "/"
	// The refresh token is only ever sent to the auth endpoints.
	refreshTokenPath = "/api/auth"
)

func SetTokenCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessExpiry, refreshExpiry time.Duration) {
	c.SetSameSite(sameSite(cfg.SameSite))
	set(c, cfg, AccessTokenCookieName, accessToken, accessTokenPath, int(accessExpiry.Seconds()))
	set(c, cfg, RefreshTokenCookieName, refreshToken, refreshTokenPath, int(refreshExpiry.Seconds()))
}

func ClearTokenCookies(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(sameSite(cfg.SameSite))
	set(c, cfg, AccessTokenCookieName, "", accessTokenPath, -1)
	set(c, cfg, RefreshTokenCookieName, "", refreshTokenPath, -1)
}

func set(c *gin.Context, cfg config.CookieConfig, name, value, path string, maxAge int) {
	c.SetCookie(name, value, maxAge, path, cfg.Domain, cfg.Secure, true)
}

// AccessToken prefers the cookie and falls back to an Authorization bearer header.
func AccessToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func RefreshToken(c *gin.Context) string {
	token, _ := c.Cookie(RefreshTokenCookieName)
	return token
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
