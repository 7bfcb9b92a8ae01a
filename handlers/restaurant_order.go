package handlers

import (
	"context"
	"log"
	"net/http"

	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"
	"restaurant-admin/realtime"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns all orders for the caller's restaurants,
// newest first
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := callerID(c)

	restaurants, err := h.store.Restaurants.ListByOwner(ctx, ownerID)
	if err != nil {
		resp.ServerError(c, "Failed to fetch orders", err)
		return
	}

	// Narrow to one restaurant when asked
	if wanted := c.Query("restaurantId"); wanted != "" {
		var picked []models.Restaurant
		for _, r := range restaurants {
			if r.ID == wanted {
				picked = append(picked, r)
			}
		}
		restaurants = picked
	}
	if len(restaurants) == 0 {
		resp.NotFound(c, "Restaurant not found for this user")
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

	// Dashboard summary: count per status
	summary := map[string]int{}
	for _, s := range models.OrderStatuses {
		summary[string(s)] = 0
	}
	for _, o := range orders {
		summary[string(o.OrderStatus)]++
	}

	resp.OK(c, gin.H{
		"restaurantCoords": restaurants[0].Coords(),
		"summary":          summary,
		"count":            len(orders),
		"orders":           orders,
	})
}

// GetOrder returns one order with its status history. The restaurant owner
// and the ordering customer may read it.
func (h *Handler) GetOrder(c *gin.Context) {
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

	history, err := h.store.Orders.History(ctx, order.ID)
	if err != nil {
		resp.ServerError(c, "Failed to fetch order history", err)
		return
	}
	resp.OK(c, gin.H{"order": order, "history": history})
}

// ownsOrder reports whether ownerID owns the restaurant the order was placed at
func (h *Handler) ownsOrder(ctx context.Context, order *models.Order, ownerID string) (bool, error) {
	restaurant, err := h.store.Restaurants.FindByID(ctx, order.RestaurantID)
	if err != nil {
		return false, err
	}
	return restaurant.UserID == ownerID, nil
}

type UpdateOrderStatusRequest struct {
	OrderStatus models.OrderStatus `json:"orderStatus" binding:"required,orderstatus"`
}

type BulkUpdateOrderStatusRequest struct {
	OrderIDs    []string           `json:"orderIds" binding:"required,min=1,dive,required"`
	OrderStatus models.OrderStatus `json:"orderStatus" binding:"required,orderstatus"`
}

// UpdateOrderStatus overwrites an order's status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := callerID(c)

	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req, "orderStatus is required") {
		return
	}

	order, err := h.store.Orders.FindByID(ctx, c.Param("orderId"))
	if err != nil {
		storeFailure(c, err, "Order not found", "Failed to update order")
		return
	}
	owned, err := h.ownsOrder(ctx, order, ownerID)
	if err != nil {
		resp.ServerError(c, "Failed to update order", err)
		return
	}
	if !owned {
		resp.Forbidden(c, "This order does not belong to your restaurant")
		return
	}

	if err := h.policy.CanTransition(order.OrderStatus, req.OrderStatus); err != nil {
		h.rejectTransition(c, order, req.OrderStatus, err)
		return
	}

	prevStatus := order.OrderStatus
	updated, err := h.store.Orders.UpdateStatus(ctx, order.ID, req.OrderStatus, ownerID)
	if err != nil {
		storeFailure(c, err, "Order not found", "Failed to update order")
		return
	}
	h.hub.Publish(ownerID, realtime.Event{Type: realtime.EventOrderStatus, Order: updated, PreviousStatus: prevStatus})
	log.Printf("📦 Order %s: %s → %s", updated.ID, prevStatus, updated.OrderStatus)

	resp.OK(c, gin.H{
		"message":        "Order status updated successfully",
		"previousStatus": prevStatus,
		"order":          updated,
	})
}

// BulkUpdateOrderStatus applies one status to several orders. Every id is
// checked before anything is written.
func (h *Handler) BulkUpdateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := callerID(c)

	var req BulkUpdateOrderStatusRequest
	if !bindJSON(c, &req, "orderIds and orderStatus are required") {
		return
	}

	orders := make([]*models.Order, 0, len(req.OrderIDs))
	ownership := map[string]bool{} // restaurantID -> owned by caller
	for _, id := range req.OrderIDs {
		order, err := h.store.Orders.FindByID(ctx, id)
		if err != nil {
			storeFailure(c, err, "Order not found: "+id, "Failed to update orders")
			return
		}
		owned, seen := ownership[order.RestaurantID]
		if !seen {
			if owned, err = h.ownsOrder(ctx, order, ownerID); err != nil {
				resp.ServerError(c, "Failed to update orders", err)
				return
			}
			ownership[order.RestaurantID] = owned
		}
		if !owned {
			resp.Forbidden(c, "Order "+id+" does not belong to your restaurant")
			return
		}
		if err := h.policy.CanTransition(order.OrderStatus, req.OrderStatus); err != nil {
			h.rejectTransition(c, order, req.OrderStatus, err)
			return
		}
		orders = append(orders, order)
	}

	updated := make([]*models.Order, 0, len(orders))
	for _, order := range orders {
		u, err := h.store.Orders.UpdateStatus(ctx, order.ID, req.OrderStatus, ownerID)
		if err != nil {
			storeFailure(c, err, "Order not found: "+order.ID, "Failed to update orders")
			return
		}
		h.hub.Publish(ownerID, realtime.Event{Type: realtime.EventOrderStatus, Order: u, PreviousStatus: order.OrderStatus})
		updated = append(updated, u)
	}

	resp.OK(c, gin.H{
		"message": "Order statuses updated successfully",
		"count":   len(updated),
		"orders":  updated,
	})
}

func (h *Handler) rejectTransition(c *gin.Context, order *models.Order, requested models.OrderStatus, reason error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success":         false,
		"message":         "Invalid state transition",
		"orderId":         order.ID,
		"currentStatus":   order.OrderStatus,
		"requested":       requested,
		"reason":          reason.Error(),
		"validNextStates": h.policy.ValidTransitionsFrom(order.OrderStatus),
	})
}
