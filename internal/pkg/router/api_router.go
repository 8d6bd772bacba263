package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MarcoBender/GrubGo/app/controllers"
	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/database"
	"github.com/MarcoBender/GrubGo/internal/pkg/env"
	"github.com/MarcoBender/GrubGo/internal/pkg/mail"
	"github.com/MarcoBender/GrubGo/internal/pkg/middleware"
	"github.com/MarcoBender/GrubGo/internal/pkg/oauth"
	"github.com/MarcoBender/GrubGo/internal/pkg/token"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	repository.InitializeFactory(database.GetDB())
	factory := repository.GetGlobalFactory()
	users := factory.GetUserRepository()

	codec := token.NewCodec(
		env.GetEnv("JWT_ACCESS_SECRET", ""),
		env.GetEnv("JWT_REFRESH_SECRET", ""),
	)

	authController := controllers.NewAuthController(users, codec, oauth.NewGoogleVerifier(), oauth.NewFacebookVerifier())
	passwordController := controllers.NewPasswordResetController(users, mail.NewSMTPMailer())
	restaurantController := controllers.NewRestaurantController(factory.GetRestaurantRepository())
	cartController := controllers.NewCartController(factory.GetCartRepository())
	orderController := controllers.NewOrderController(factory.GetOrderRepository())
	locationController := controllers.NewLocationController()

	requireAuth := middleware.RequireAccessToken(codec, users)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authController.HandleSignup)
	auth.Post("/login", authController.HandleLogin)
	auth.Post("/google-login", authController.HandleGoogleLogin)
	auth.Post("/facebook-login", authController.HandleFacebookLogin)
	auth.Post("/refresh", authController.HandleRefresh)
	auth.Post("/logout", authController.HandleLogout)
	auth.Get("/me", authController.HandleMe)
	auth.Post("/forgot-password", passwordController.HandleForgotPassword)
	auth.Post("/reset-password/:token", passwordController.HandleResetPassword)

	restaurants := api.Group("/restaurants")
	restaurants.Get("/", restaurantController.HandleList)
	restaurants.Get("/nearby", restaurantController.HandleNearby)
	restaurants.Get("/:id", restaurantController.HandleGet)

	location := api.Group("/location")
	location.Get("/geocode", locationController.HandleGeocode)

	cart := api.Group("/cart", requireAuth)
	cart.Get("/:userId", middleware.RequireOwnUser, cartController.HandleGet)
	cart.Post("/:userId/items", middleware.RequireOwnUser, cartController.HandleAddItem)
	cart.Put("/:userId/items/:itemId", middleware.RequireOwnUser, cartController.HandleUpdateItem)
	cart.Delete("/:userId/items/:itemId", middleware.RequireOwnUser, cartController.HandleRemoveItem)
	cart.Delete("/:userId", middleware.RequireOwnUser, cartController.HandleClear)

	orders := api.Group("/orders", requireAuth)
	orders.Post("/create-order", orderController.HandleCreate)
	orders.Get("/user-orders", orderController.HandleUserOrders)
	orders.Get("/user/:userId", orderController.HandleUserOrders)
	orders.Get("/", orderController.HandleListAll)
	orders.Get("/:orderId", orderController.HandleGet)
	orders.Patch("/:orderId/status", orderController.HandleUpdateStatus)
	orders.Patch("/:orderId/cancel", orderController.HandleCancel)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
