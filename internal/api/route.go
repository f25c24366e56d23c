package api

import (
	"net/http"

	"leakerflow/internal/api/middleware"
	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		articleGroup := apiGroup.Group("/articles")
		{
			// Anonymous access resolves visibility per article.
			authOptGroup := articleGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware(), middleware.RateLimitMiddleware())
			{
				authOptGroup.GET("", group.ArticleHandler.ListArticles)
				authOptGroup.GET("/:article_id", group.ArticleHandler.GetArticle)
				authOptGroup.POST("/:article_id/events", group.EventHandler.RecordEvent)
			}

			authGroup := articleGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware(), middleware.RateLimitMiddleware())
			{
				authGroup.POST("", group.ArticleHandler.CreateArticle)
				authGroup.PUT("/:article_id", group.ArticleHandler.UpdateArticle)
				authGroup.DELETE("/:article_id", group.ArticleHandler.DeleteArticle)

				authGroup.POST("/:article_id/vote", group.VoteHandler.CastVote)
				authGroup.GET("/:article_id/vote", group.VoteHandler.GetUserVote)

				authGroup.POST("/:article_id/save", group.EventHandler.SaveArticle)
				authGroup.DELETE("/:article_id/save", group.EventHandler.UnsaveArticle)
				authGroup.GET("/:article_id/save", group.EventHandler.IsSaved)

				authGroup.POST("/:article_id/submit", group.ApprovalHandler.SubmitForApproval)

				authGroup.GET("/:article_id/analytics", group.AnalyticsHandler.GetArticleAnalytics)
			}
		}

		// Separate group: a /articles/saved route would collide with the
		// :article_id wildcard in gin's routing tree.
		savedGroup := apiGroup.Group("/saved-articles")
		savedGroup.Use(middleware.AuthMiddleware(), middleware.RateLimitMiddleware())
		{
			savedGroup.GET("", group.ArticleHandler.GetSavedArticles)
		}

		accountGroup := apiGroup.Group("/accounts")
		accountGroup.Use(middleware.AuthMiddleware())
		{
			accountGroup.GET("/:account_id/stats", group.ArticleHandler.GetAccountStats)
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleGlobalAdmin))
		{
			adminGroup.GET("/articles", group.AdminHandler.ListAllArticles)
			adminGroup.POST("/articles/:article_id/approve", group.ApprovalHandler.ApproveArticle)
			adminGroup.POST("/articles/:article_id/reject", group.ApprovalHandler.RejectArticle)
			adminGroup.GET("/articles/:article_id/audit-logs", group.AdminHandler.GetArticleAuditLogs)
			adminGroup.POST("/analytics/rollup", group.AdminHandler.TriggerRollup)
			adminGroup.POST("/trends/recompute", group.AdminHandler.TriggerTrendRecompute)
		}
	}

	return r
}
