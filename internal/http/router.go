package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creative-scribe/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	chatH *ChatHandler,
	profileH *ProfileHandler,
	eventsH *EventsHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth", jsonContentTypeMiddleware())
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)
	auth.POST("/logout", authH.Logout)

	// Todo lo demás va detrás del gate de autenticación.
	private := r.Group("/", JWTAuthMiddleware(jwtSvc))

	chat := private.Group("/chat", jsonContentTypeMiddleware())
	chat.POST("/message", chatH.SendMessage)
	chat.GET("/sessions", chatH.ListSessions)
	chat.GET("/sessions/:id", chatH.LoadSession)
	chat.DELETE("/sessions/:id", chatH.DeleteSession)

	profile := private.Group("/profile", jsonContentTypeMiddleware())
	profile.GET("", profileH.GetProfile)
	profile.PUT("", profileH.UpdateProfile)
	profile.PUT("/password", profileH.ChangePassword)

	// SSE no pasa por el middleware de JSON.
	private.GET("/events", eventsH.Stream)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
