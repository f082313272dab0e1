package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/internal/http/handlers"
	"github.com/Thebob0072/skillmatch-auth/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, vh *handlers.VerificationHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Public sign-in surface.
	r.POST("/login", ah.Login)
	r.POST("/register", ah.Register)

	auth := r.Group("/auth")
	auth.POST("/google", ah.LoginWithGoogle)
	auth.POST("/otp/send", ah.SendOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/refresh", ah.Refresh)

	// Signed-in surface. Verification status is not checked here: an
	// unapproved user still reads their own profile and files documents.
	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.POST("/verification/submit", vh.Submit)
	v.GET("/verification/status", vh.Status)

	// Admin review desk.
	adm := r.Group("/admin").Use(jwtmw.WithJWT(), middleware.RequireRole(domain.RoleAdmin), cb.Enforce())
	adm.GET("/verifications", vh.ListPending)
	adm.POST("/verifications/:id/review", vh.Review)

	// Policy management is god tier only.
	god := r.Group("/admin/policies").Use(jwtmw.WithJWT(), middleware.RequireRole(domain.RoleGod))
	god.GET("", ph.List)
	god.POST("", ph.Add)
	god.DELETE("", ph.Remove)

	return r
}
