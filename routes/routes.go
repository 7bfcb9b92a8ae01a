package routes

import (
	"reflect"
	"strings"

	"restaurant-admin/handlers"
	"restaurant-admin/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Unknown JSON keys are rejected instead of silently dropped
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("orderstatus", handlers.ValidateOrderStatus); err != nil {
			panic(err)
		}
	}
}

// jsonFieldName reports validation failures under their wire names
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.TokenIssuer) {
	auth := middleware.AuthRequired(tokens)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/client", h.Signup)
		public.POST("/login", h.Login)

		// Restaurants (no auth needed)
		public.GET("/restaurants/nearby", h.ListRestaurantsByOwner)
		public.GET("/restaurants/:id", h.GetRestaurant)

		// State machine info
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	private := r.Group("/api")
	private.Use(auth)
	{
		// Profile
		private.GET("/client", h.GetProfile)
		private.GET("/client/:id", h.GetClient)
		private.PATCH("/client/:id", h.UpdateClient)
		private.GET("/users", h.ListUsers)

		// Restaurant management
		private.POST("/restaurants/nearby", h.CreateRestaurant)
		private.PATCH("/restaurants/nearby/:id", h.UpdateRestaurant)
		private.PUT("/restaurants/:id", h.ReplaceMenu)
		private.DELETE("/restaurants/:id", h.DeleteRestaurant)

		// Order management
		private.GET("/orders", h.GetRestaurantOrders)
		private.PATCH("/orders", h.BulkUpdateOrderStatus)
		private.POST("/orders", h.PlaceOrder)
		private.GET("/orders/mine", h.GetMyOrders)
		private.GET("/orders/pending", h.GetPendingOrders)
		private.GET("/orders/:orderId", h.GetOrder)
		private.GET("/orders/:orderId/delivery", h.GetDeliveryInfo)
		private.PATCH("/orders/:orderId", h.UpdateOrderStatus)
	}

	// ── Live order feed ────────────────────────────────────────────
	r.GET("/api/ws/orders", middleware.WSAuth(tokens), h.Hub().HandleWebSocket)
}
