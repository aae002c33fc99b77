package routes

import (
	"log/slog"
	"net/http"

	"mithai-mahal/controllers"
	_ "mithai-mahal/docs"
	"mithai-mahal/middleware"
	"mithai-mahal/models"
	"mithai-mahal/services"
	"mithai-mahal/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Dependencies struct {
	Sweets            services.SweetStore
	Users             services.UserStore
	Revoker           services.TokenRevoker
	Tokens            *utils.TokenManager
	Notifier          services.StockNotifier
	LowStockThreshold int
	OriginURL         string
	Logger            *slog.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Logger != nil {
		router.Use(middleware.RequestLogger(deps.Logger))
	}
	router.Use(middleware.CORSMiddleware(deps.OriginURL))

	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	catalog := services.NewCatalogService(deps.Sweets)
	inventory := services.NewInventoryService(deps.Sweets, deps.Notifier, deps.LowStockThreshold)
	auth := services.NewAuthService(deps.Users, deps.Tokens, deps.Revoker)

	authCtrl := controllers.NewAuthController(auth)
	sweetCtrl := controllers.NewSweetController(catalog, inventory)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Message: "Mithai Mahal API running"})
	}
	router.GET("/", health)
	router.GET("/health", health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthMiddleware(deps.Tokens, deps.Revoker))
	{
		authenticated.GET("/auth/me", authCtrl.Me)
		authenticated.POST("/auth/logout", authCtrl.Logout)
	}

	customer := api.Group("/sweets")
	customer.Use(middleware.AuthMiddleware(deps.Tokens, deps.Revoker), middleware.RequireRoles(models.RoleUser, models.RoleAdmin))
	{
		customer.GET("", sweetCtrl.GetAllSweets)
		customer.GET("/search", sweetCtrl.SearchSweets)
		customer.GET("/:id", sweetCtrl.GetSweetByID)
		customer.POST("/:id/purchase", sweetCtrl.PurchaseSweet)
	}

	admin := api.Group("/sweets")
	admin.Use(middleware.AuthMiddleware(deps.Tokens, deps.Revoker), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("", sweetCtrl.CreateSweet)
		admin.PUT("/:id", sweetCtrl.UpdateSweet)
		admin.DELETE("/:id", sweetCtrl.DeleteSweet)
		admin.POST("/:id/restock", sweetCtrl.RestockSweet)
	}
}
