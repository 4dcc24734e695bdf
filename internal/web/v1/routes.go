package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the portal API under /api. authMW guards the
// routes that require a bearer token.
func RegisterRoutes(r *gin.Engine, h *Handler, authMW gin.HandlerFunc) {
	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.Login)
			authGroup.POST("/signup", h.Signup)
			authGroup.POST("/logout", h.Logout)
			authGroup.GET("/profile", authMW, h.Profile)
		}

		services := api.Group("/services")
		{
			services.GET("", h.ListServices)
			services.GET("/requests", authMW, h.ListRequests)
			services.POST("/request", authMW, h.CreateRequest)
			services.GET("/:id", h.GetService)
		}

		search := api.Group("/search")
		{
			search.GET("", h.Search)
			search.GET("/suggestions", h.Suggestions)
			search.GET("/popular-tags", h.PopularTags)
		}
	}
}
