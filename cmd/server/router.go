package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"flyerhub-backend/internal/config"
	"flyerhub-backend/internal/handlers"
	"flyerhub-backend/internal/middleware"
	"flyerhub-backend/internal/notify"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/storage"
	"flyerhub-backend/internal/supabase"
)

type app struct {
	cfg      *config.Config
	db       *supabase.DatabaseClient
	backend  storage.Backend
	notifier *notify.Dispatcher
	composer *services.Composer
	uploader *services.Uploader
}

func (a *app) router() (*gin.Engine, *middleware.RateLimiter) {
	cfg, db := a.cfg, a.db

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !containsWildcard(cfg.CORSAllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	if local, ok := a.backend.(*storage.LocalStorage); ok {
		router.Static(cfg.UploadsURLPrefix, local.Root())
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "FlyerHub API is running")
	})
	router.GET("/health", handlers.HealthHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.AuthMiddleware(cfg)
	admin := []gin.HandlerFunc{auth, middleware.AdminOnly()}
	customer := []gin.HandlerFunc{auth, middleware.WebOnly()}
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	orders := handlers.NewOrdersHandler(a.composer, db, a.notifier, cfg.MaxUploadBytes())
	cart := handlers.NewCartHandler(a.composer, db, cfg.MaxUploadBytes())
	flyers := handlers.NewFlyersHandler(db, a.uploader)
	banners := handlers.NewBannersHandler(db, a.uploader)
	categories := handlers.NewCategoriesHandler(db)
	notifications := handlers.NewNotificationsHandler(db)
	orderFiles := handlers.NewOrderFilesHandler(db, a.uploader)
	media := handlers.NewUserMediaHandler(db, a.uploader)
	favorites := handlers.NewFavoritesHandler(db)
	contact := handlers.NewContactHandler(db, a.notifier)
	adminAuth := handlers.NewAuthHandler(db, cfg)
	webAuth := handlers.NewWebAuthHandler(db, cfg)

	api := router.Group("/api")

	g := api.Group("/orders")
	g.POST("", orders.CreateOrder)
	g.GET("", append(admin, orders.ListOrders)...)
	g.GET("/user/:web_user_id", orders.ListUserOrders)
	g.GET("/:id", orders.GetOrder)
	g.PATCH("/:id/status", append(admin, orders.UpdateOrderStatus)...)

	g = api.Group("/cart")
	g.POST("/add", cart.AddToCart)
	g.GET("/:user_id", cart.GetCart)
	g.DELETE("/remove/:id", cart.RemoveCartItem)
	g.DELETE("/clear/:user_id", cart.ClearCart)

	g = api.Group("/flyers")
	g.GET("", flyers.ListFlyers)
	g.GET("/:id", flyers.GetFlyer)
	g.POST("", append(admin, flyers.CreateFlyers)...)
	g.PUT("/:id", append(admin, flyers.UpdateFlyer)...)
	g.DELETE("/:id", append(admin, flyers.DeleteFlyer)...)

	g = api.Group("/banners")
	g.GET("", banners.ListBanners)
	g.GET("/categories", banners.ListLinkCategories)
	g.GET("/:id", banners.GetBanner)
	g.POST("/create", append(admin, banners.CreateBanner)...)
	g.PUT("/update/:id", append(admin, banners.UpdateBanner)...)
	g.DELETE("/delete/:id", append(admin, banners.DeleteBanner)...)
	g.PATCH("/status/:id", append(admin, banners.SetBannerStatus)...)
	g.PUT("/reorder", append(admin, banners.ReorderBanners)...)

	g = api.Group("/categories")
	g.GET("", categories.ListCategories)
	g.POST("", append(admin, categories.CreateCategory)...)
	g.PATCH("/:id/rank", append(admin, categories.UpdateCategoryRank)...)
	g.DELETE("/:id", append(admin, categories.DeleteCategory)...)

	g = api.Group("/notifications", admin...)
	g.GET("", notifications.ListNotifications)
	g.PATCH("/read-all", notifications.MarkAllRead)
	g.PATCH("/:id/read", notifications.MarkRead)

	g = api.Group("/order-files")
	g.POST("/:order_id", append(admin, orderFiles.UploadOrderFile)...)
	g.GET("/order/:order_id", orderFiles.ListOrderFiles)
	g.GET("/user/:user_id", orderFiles.ListUserOrderFiles)
	g.DELETE("/:id", append(admin, orderFiles.DeleteOrderFile)...)

	g = api.Group("/user-media")
	g.POST("", media.UploadMedia)
	g.GET("/:web_user_id", media.ListMedia)
	g.PATCH("/:id/rename", media.RenameMedia)
	g.PATCH("/:id/replace", media.ReplaceMedia)
	g.PATCH("/:id/set-logo", media.SetLogo)
	g.PATCH("/:id/set-image", media.SetImage)
	g.DELETE("/:id", media.DeleteMedia)

	g = api.Group("/favorites")
	g.POST("/add", favorites.AddFavorite)
	g.POST("/remove", favorites.RemoveFavorite)
	g.GET("/user/:user_id", favorites.ListFavorites)

	g = api.Group("/contact")
	g.POST("", contact.SubmitContact)
	g.GET("", append(admin, contact.ListContactMessages)...)

	g = api.Group("/auth")
	g.POST("/register", append(admin, adminAuth.Register)...)
	g.POST("/login", adminAuth.Login)

	g = api.Group("/web/auth", limiter.Middleware())
	g.POST("/register", webAuth.Register)
	g.POST("/login", webAuth.Login)
	g.PUT("/profile", append(customer, webAuth.UpdateProfile)...)
	g.PUT("/password", append(customer, webAuth.ChangePassword)...)

	return router, limiter
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
