package routes

import (
	"github.com/gin-gonic/gin"

	"meals_on_wheels/internal/controllers"
	"meals_on_wheels/internal/middleware"
)

func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, jwt *middleware.JWTManager) {
	r.POST("/register", ac.Register)
	r.POST("/login", ac.Login)
	r.GET("/check-email", ac.CheckEmail)

	authed := r.Group("/")
	authed.Use(jwt.RequireAuth())
	{
		authed.POST("/logout", ac.Logout)
		authed.GET("/me", ac.Me)
	}
}
