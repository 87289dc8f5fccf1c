package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS allows cross-origin requests from allowOrigins. A "*" entry allows
// any origin.
func CORS(allowOrigins []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowOrigins, "*")

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")
		if origin != "" && (allowAll || slices.Contains(allowOrigins, origin)) {
			if allowAll {
				ctx.Header("Access-Control-Allow-Origin", "*")
			} else {
				ctx.Header("Access-Control-Allow-Origin", origin)
				ctx.Header("Vary", "Origin")
			}
			ctx.Header("Access-Control-Allow-Methods", strings.Join([]string{
				http.MethodGet, http.MethodPost, http.MethodOptions,
			}, ", "))
			ctx.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
			ctx.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Input-Format, X-Output-Format")
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
