package handlers

import (
	"context"
	"sort"

	"restaurant-admin/enrich"
	"restaurant-admin/geocode"
	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"

	"github.com/gin-gonic/gin"
)

// SetGeocoder enables street addresses in delivery info. Without one the
// address falls back to the raw coordinates.
func (h *Handler) SetGeocoder(g geocode.Geocoder) {
	h.geocoder = g
}

// GetPendingOrders lists the caller's orders that still need handing over,
// oldest first
func (h *Handler) GetPendingOrders(c *gin.Context) {
	ctx := c.Request.Context()

	restaurants, err := h.store.Restaurants.ListByOwner(ctx, callerID(c))
	if err != nil {
		resp.ServerError(c, "Failed to fetch orders", err)
		return
	}
	ids := make([]string, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.ID
	}
	orders, err := h.store.Orders.ListByRestaurants(ctx, ids)
	if err != nil {
		resp.ServerError(c, "Failed to fetch orders", err)
		return
	}

	pending := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderStatus != models.StatusDelivered {
			pending = append(pending, o)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Date < pending[j].Date })

	resp.OK(c, gin.H{"count": len(pending), "orders": pending})
}

// GetDeliveryInfo returns one order with customer, distance, address and a
// directions link
func (h *Handler) GetDeliveryInfo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := callerID(c)

	order, err := h.store.Orders.FindByID(ctx, c.Param("orderId"))
	if err != nil {
		storeFailure(c, err, "Order not found", "Failed to fetch order")
		return
	}
	if order.UserID != userID {
		owned, err := h.ownsOrder(ctx, order, userID)
		if err != nil {
			resp.ServerError(c, "Failed to fetch order", err)
			return
		}
		if !owned {
			resp.Forbidden(c, "This order does not belong to your restaurant")
			return
		}
	}

	users := map[string]models.User{}
	if customer, err := h.store.Users.FindByID(ctx, order.UserID); err == nil {
		users[customer.ID] = *customer
	}

	geocoder := h.geocoder
	if geocoder == nil {
		geocoder = geocode.Offline{}
	}
	fetch := enrich.RestaurantFetcherFunc(func(ctx context.Context, id string) (*models.Restaurant, error) {
		return h.store.Restaurants.FindByID(ctx, id)
	})
	pipeline := enrich.New(fetch, geocoder)
	// One lookup per request, no need to space calls out
	pipeline.Pause = 0

	enriched := pipeline.Enrich(ctx, []models.Order{*order}, users)
	resp.OK(c, gin.H{"order": enriched[0]})
}
