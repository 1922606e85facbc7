package routes

import (
	"github.com/Vithyatharshanaa/ctf-buddy-learn/controllers"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/middlewares"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/monitoring"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.CORS())
	r.Use(middlewares.Secure())
	r.Use(monitoring.MetricsMiddleware())

	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", monitoring.PrometheusHandler())

	apiV1 := r.Group("/api/v1")
	{
		// 判题核心，必须登录
		apiV1.POST("/validate-flag", middlewares.JWTAuthMiddleware(), controllers.ValidateFlag)

		// 题目浏览，匿名可看，带 Token 时标注已解状态
		challengeRoutes := apiV1.Group("/challenges")
		challengeRoutes.Use(middlewares.JWTTryAuthMiddleware())
		{
			challengeRoutes.GET("", controllers.ListChallenges)
			challengeRoutes.GET("/:id", controllers.GetChallengeDetail)
		}

		// 个人主页
		profileRoutes := apiV1.Group("/profile")
		profileRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			profileRoutes.GET("/solves", controllers.GetMySolves)
		}
	}

	return r
}
