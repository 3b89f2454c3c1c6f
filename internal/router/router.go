package router

import (
	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/config"
	"github.com/marcp/critics-eye-backend/internal/app/controller"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	reviewController       *controller.ReviewController
	commentController      *controller.CommentController
	genreController        *controller.GenreController
	productTypeController  *controller.ProductTypeController
	productGenreController *controller.ProductGenreController
	userController         *controller.UserController
	uploadController       *controller.UploadController
	scoreFeedController    *controller.ScoreFeedController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	reviewController *controller.ReviewController,
	commentController *controller.CommentController,
	genreController *controller.GenreController,
	productTypeController *controller.ProductTypeController,
	productGenreController *controller.ProductGenreController,
	userController *controller.UserController,
	uploadController *controller.UploadController,
	scoreFeedController *controller.ScoreFeedController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		reviewController:       reviewController,
		commentController:      commentController,
		genreController:        genreController,
		productTypeController:  productTypeController,
		productGenreController: productGenreController,
		userController:         userController,
		uploadController:       uploadController,
		scoreFeedController:    scoreFeedController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "The Critic's Eye API is running",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/register", r.authController.Register)
		api.POST("/login", r.authController.Login)
		api.POST("/sendPasswordReset", r.authController.SendPasswordReset)
		api.POST("/resetPassword", r.authController.ResetPassword)

		// browsers cannot set headers on the handshake, so the feed takes ?token=
		api.GET("/ws/scores", r.authMiddleware.AuthenticateWebSocket(), r.scoreFeedController.Subscribe)

		protected := api.Group("")
		protected.Use(r.authMiddleware.Authenticate())
		{
			protected.GET("/user", r.authController.Me)
			protected.POST("/logout", r.authController.Logout)

			products := protected.Group("/products")
			{
				products.GET("", r.productController.ListProducts)
				products.POST("", r.productController.CreateProduct)
				products.GET("/:id", r.productController.GetProduct)
				products.PUT("/:id", r.productController.UpdateProduct)
				products.DELETE("/:id", r.productController.DeleteProduct)
			}

			reviews := protected.Group("/reviews")
			{
				reviews.GET("", r.reviewController.ListReviews)
				reviews.POST("", r.reviewController.CreateReview)
				reviews.GET("/has-review", r.reviewController.HasReview)
				reviews.GET("/:id", r.reviewController.GetReview)
				reviews.PUT("/:id", r.reviewController.UpdateReview)
				reviews.DELETE("/:id", r.reviewController.DeleteReview)
			}
			protected.GET("/hasReview", r.reviewController.HasReview)

			comments := protected.Group("/comments")
			{
				comments.GET("", r.commentController.ListComments)
				comments.POST("", r.commentController.CreateComment)
				comments.GET("/:id", r.commentController.GetComment)
				comments.PUT("/:id", r.commentController.UpdateComment)
				comments.DELETE("/:id", r.commentController.DeleteComment)
			}

			genres := protected.Group("/genres")
			{
				genres.GET("", r.genreController.ListGenres)
				genres.POST("", r.genreController.CreateGenre)
				genres.GET("/:id", r.genreController.GetGenre)
				genres.PUT("/:id", r.genreController.UpdateGenre)
				genres.DELETE("/:id", r.genreController.DeleteGenre)
			}

			productTypes := protected.Group("/product-types")
			{
				productTypes.GET("", r.productTypeController.ListProductTypes)
				productTypes.POST("", r.productTypeController.CreateProductType)
				productTypes.GET("/:id", r.productTypeController.GetProductType)
				productTypes.PUT("/:id", r.productTypeController.UpdateProductType)
				productTypes.DELETE("/:id", r.productTypeController.DeleteProductType)
			}

			productGenres := protected.Group("/product-genres")
			{
				productGenres.GET("", r.productGenreController.ListRelations)
				productGenres.POST("", r.productGenreController.AttachGenre)
				productGenres.DELETE("", r.productGenreController.DetachAll)
				productGenres.PUT("/:product_id", r.productGenreController.ReplaceGenres)
			}

			users := protected.Group("/users")
			{
				users.GET("", r.userController.ListUsers)
				users.POST("", r.userController.CreateUser)
				users.GET("/:id", r.userController.GetUser)
				users.PUT("/:id", r.userController.UpdateUser)
				users.DELETE("/:id", r.userController.DeleteUser)
			}

			protected.POST("/uploadProductImage", r.uploadController.UploadProductImage)
			protected.POST("/uploadProfileImage", r.uploadController.UploadProfileImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
