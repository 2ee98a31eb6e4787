package routes

import (
	"expense-backend/internal/config"
	"expense-backend/internal/handlers"
	"expense-backend/internal/middleware"
	"expense-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(60))

	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	tagService := services.NewTagService(db)
	expenseService := services.NewExpenseService(db)
	invoiceService := services.NewInvoiceService(db)
	statsService := services.NewStatsService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	tagHandler := handlers.NewTagHandler(tagService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, invoiceService, statsService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)

	api := router.Group("/api")

	public := api.Group("")
	{
		users := public.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/active", tagHandler.GetActiveTags)
			tags.GET("/system", tagHandler.GetSystemTags)
			tags.GET("/user/:userId", tagHandler.GetUserTags)
			tags.GET("/available/:userId", tagHandler.GetAvailableTags)

			tags.GET("/favorites", tagHandler.GetFavorites)
			tags.POST("/favorites/:id", tagHandler.AddFavorite)
			tags.DELETE("/favorites/:id", tagHandler.RemoveFavorite)
			tags.GET("/favorites/check/:id", tagHandler.CheckFavorite)

			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("", expenseHandler.GetExpenses)
			expenses.POST("", expenseHandler.CreateExpense)

			expenses.GET("/stats/weekly/:userId", expenseHandler.GetWeeklyStats)
			expenses.GET("/stats/monthly/:userId", expenseHandler.GetMonthlyStats)
			expenses.GET("/stats/yearly/:userId", expenseHandler.GetYearlyStats)
			expenses.GET("/stats/weekly-tags/:userId", expenseHandler.GetWeeklyTagStats)
			expenses.GET("/stats/monthly-tags/:userId", expenseHandler.GetMonthlyTagStats)
			expenses.GET("/stats/yearly-tags/:userId", expenseHandler.GetYearlyTagStats)
			expenses.GET("/tags/timeseries", expenseHandler.GetTagTimeSeries)

			expenses.GET("/:id", expenseHandler.GetExpense)
			expenses.PUT("/:id", expenseHandler.UpdateExpense)
			expenses.DELETE("/:id", expenseHandler.DeleteExpense)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("/recent", invoiceHandler.GetRecentInvoices)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}
