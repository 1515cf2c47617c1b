package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shoppit/config"
	"shoppit/controllers"
	"shoppit/gateway"
	"shoppit/middleware"
	"shoppit/models"
	"shoppit/repositories"
	"shoppit/services"
)

func SetupRoutes(router *gin.Engine) {
	cfg := config.AppConfig

	productRepo := repositories.NewProductRepository(config.DB)
	cartRepo := repositories.NewCartRepository(config.DB)
	transactionRepo := repositories.NewTransactionRepository(config.DB)
	userRepo := repositories.NewUserRepository(config.DB)

	flutterwave := gateway.NewFlutterwave(cfg.FlutterwaveSecretKey, cfg.FlutterwaveBaseURL)

	productCtrl := controllers.NewProductController(
		services.NewProductService(productRepo, models.RedisClient))
	cartCtrl := controllers.NewCartController(
		services.NewCartService(cartRepo, productRepo))
	paymentCtrl := controllers.NewPaymentController(
		services.NewPaymentService(
			transactionRepo, cartRepo, userRepo, flutterwave,
			cfg.PaymentTax, cfg.PaymentCurrency, cfg.PaymentRedirectURL))
	authCtrl := controllers.NewAuthController(
		services.NewAuthService(userRepo))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/register", authCtrl.Register)
	router.POST("/login", authCtrl.Login)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/product_detail/:slug", productCtrl.GetProductDetail)

	router.POST("/add_item", cartCtrl.AddItem)
	router.PATCH("/update_quantity", cartCtrl.UpdateQuantity)
	router.GET("/get_cart", cartCtrl.GetCart)
	router.GET("/get_cart_stat", cartCtrl.GetCartSummary)
	router.GET("/product_in_cart", cartCtrl.ProductInCart)

	// The provider drives the callback, so it stays outside the auth group.
	router.GET("/payment_callback", paymentCtrl.PaymentCallback)
	router.POST("/payment_callback", paymentCtrl.PaymentCallback)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/get_username", authCtrl.GetUsername)
		auth.GET("/user_info", authCtrl.UserInfo)
		auth.POST("/initiate_payment", paymentCtrl.InitiatePayment)
		auth.POST("/import_products", productCtrl.ImportProducts)
	}
}
