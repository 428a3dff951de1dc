package routes

import (
	"github.com/gin-gonic/gin"

	"meals_on_wheels/internal/controllers"
)

func MealRoutes(r *gin.Engine, mc *controllers.MealController) {
	meals := r.Group("/meals")
	{
		meals.GET("", mc.Index)
		meals.POST("", mc.Store)
		meals.POST("/import", mc.Import)
		meals.GET("/:id", mc.Show)
		meals.PUT("/:id", mc.Update)
		meals.DELETE("/:id", mc.Destroy)
	}
}
