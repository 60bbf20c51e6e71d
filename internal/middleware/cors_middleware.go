package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/config"
)

const defaultClientURL = "http://localhost:3000"

// CORSMiddleware allows the origins listed in CLIENT_URL (comma separated) and the headers
// the web client sends, including the configured identity header.
func CORSMiddleware(appConfig *config.Config, logger *zap.Logger) gin.HandlerFunc {
	origins := splitOrigins(appConfig.ClientURL)
	if len(origins) == 0 {
		if logger != nil {
			logger.Warn("CLIENT_URL is not set, allowing the local development origin", zap.String("origin", defaultClientURL))
		}
		origins = []string{defaultClientURL}
	}

	headers := []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	if appConfig.IdentityHeader != "" {
		headers = append(headers, appConfig.IdentityHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     headers,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func splitOrigins(value string) []string {
	var origins []string
	for _, o := range strings.Split(value, ",") {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
