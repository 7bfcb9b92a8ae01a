package handlers

import (
	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every user without password hashes. The order dashboard
// uses it to build its customer lookup.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.Users.List(c.Request.Context())
	if err != nil {
		resp.ServerError(c, "Failed to fetch users", err)
		return
	}

	// Optional narrowing: ?city=
	if city := c.Query("city"); city != "" {
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.City == city {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	resp.OK(c, gin.H{"count": len(users), "users": users})
}
