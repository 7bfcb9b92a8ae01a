package handlers

import (
	"log"
	"math"
	"strings"
	"time"

	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"
	"restaurant-admin/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PlaceOrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	RestaurantID string           `json:"restaurantId" binding:"required"`
	Items        []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
	Date         string           `json:"date"`
	Latitude     *models.Float    `json:"latitude"`
	Longitude    *models.Float    `json:"longitude"`
}

// PlaceOrder creates a new order for the caller
func (h *Handler) PlaceOrder(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := callerID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isNotNumeric(err) {
			resp.BadRequest(c, "latitude and longitude must be valid numbers")
			return
		}
		resp.BadRequest(c, bindErrorMessage(err, "restaurantId and items are required"))
		return
	}

	// Validate restaurant exists
	restaurant, err := h.store.Restaurants.FindByID(ctx, req.RestaurantID)
	if err != nil {
		storeFailure(c, err, msgRestaurantAbsent, "Failed to place order")
		return
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	} else if _, err := parseDate(date); err != nil {
		resp.BadRequest(c, "date must be an ISO-8601 timestamp")
		return
	}

	// Build order items and calculate total. Menu prices win over what the
	// client sent when the restaurant publishes a menu.
	menu := map[string]float64{}
	for _, m := range restaurant.Menu {
		menu[strings.ToLower(m.Name)] = m.Price
	}
	items := make([]models.OrderItem, 0, len(req.Items))
	var total float64
	for _, it := range req.Items {
		price := it.Price
		if len(menu) > 0 {
			menuPrice, ok := menu[strings.ToLower(strings.TrimSpace(it.Name))]
			if !ok {
				resp.BadRequest(c, "Item '"+it.Name+"' is not on the menu")
				return
			}
			price = menuPrice
		}
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		total += price * float64(it.Quantity)
		items = append(items, models.OrderItem{ID: id, Name: strings.TrimSpace(it.Name), Price: price, Quantity: it.Quantity})
	}

	order := models.Order{
		Date:         date,
		Items:        datatypes.JSONSlice[models.OrderItem](items),
		Amount:       math.Round(total*100) / 100,
		OrderStatus:  models.StatusOrdered,
		UserID:       customerID,
		RestaurantID: restaurant.ID,
		Latitude:     req.Latitude.Ptr(),
		Longitude:    req.Longitude.Ptr(),
	}
	if err := h.store.Orders.Create(ctx, &order); err != nil {
		storeFailure(c, err, msgRestaurantAbsent, "Failed to place order")
		return
	}

	h.hub.Publish(restaurant.UserID, realtime.Event{Type: realtime.EventOrderCreated, Order: &order})
	log.Printf("🧾 Order %s placed at %s", order.ID, restaurant.ID)

	resp.Created(c, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns all orders placed by the caller
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.store.Orders.ListByCustomer(c.Request.Context(), callerID(c))
	if err != nil {
		resp.ServerError(c, "Failed to fetch orders", err)
		return
	}
	resp.OK(c, gin.H{"count": len(orders), "orders": orders})
}
