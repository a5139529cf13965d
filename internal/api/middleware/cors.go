package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/traymate/mealmenu/internal/config"
)

// CORS returns a middleware permitting cross-origin calls, mainly from the
// mobile app during development.
//
// With allow_all_origins (or an empty origin list) every origin is accepted.
// When credentials are also allowed the caller's origin is echoed back,
// since browsers reject a literal "*" together with credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding",
			"Authorization", "Cache-Control", "X-CSRF-Token", "X-Requested-With", "X-Request-ID",
		},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: cfg.AllowCredentials,
		AllowWildcard:    true,
		MaxAge:           12 * time.Hour,
	}

	switch {
	case cfg.AllowAllOrigins || len(cfg.AllowedOrigins) == 0:
		if cfg.AllowCredentials {
			c.AllowOriginFunc = func(string) bool { return true }
		} else {
			c.AllowAllOrigins = true
		}
	default:
		c.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(c)
}
