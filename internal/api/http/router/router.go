package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nivelab/authcore/internal/api/http/handler"
	"github.com/nivelab/authcore/internal/api/http/middleware"
)

type Config struct {
	AuthHandler   *handler.Auth
	Authenticator middleware.Authenticator
}

// New builds the HTTP routing tree.
func New(cfg Config) *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := g.Group("/api/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := g.Group("/api/auth", middleware.Authenticate(cfg.Authenticator))
	{
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.POST("/change-password", cfg.AuthHandler.ChangePassword)
		protected.POST("/force-logout", cfg.AuthHandler.ForceLogout)
		protected.GET("/profile", cfg.AuthHandler.Profile)
		protected.GET("/revocation-stats", cfg.AuthHandler.RevocationStats)
	}

	return g
}
