package handlers

import (
	"errors"
	"log"
	"strings"

	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ── Restaurant Management ────────────────────────────────────────────────────

const (
	msgInvalidNumbers   = "Rating, latitude, or longitude must be valid numbers."
	msgMissingFields    = "Missing required fields (name, address) or invalid format."
	msgNotOwned         = "Restaurant not found or not owned by user"
	msgInvalidMenu      = "Invalid menu data"
	msgRestaurantAbsent = "Restaurant not found"
)

type CreateRestaurantRequest struct {
	Name       string            `json:"name" binding:"required"`
	Cuisine    string            `json:"cuisine"`
	Rating     *models.Float     `json:"rating"`
	PriceRange string            `json:"priceRange"`
	Address    string            `json:"address" binding:"required"`
	ImageURL   string            `json:"imageUrl"`
	Img        string            `json:"img"`
	Latitude   *models.Float     `json:"latitude"`
	Longitude  *models.Float     `json:"longitude"`
	Menu       []models.MenuItem `json:"menu"`
	UserID     string            `json:"userId"`
}

type UpdateRestaurantRequest struct {
	Name       *string            `json:"name"`
	Cuisine    *string            `json:"cuisine"`
	Rating     *models.Float      `json:"rating"`
	PriceRange *string            `json:"priceRange"`
	Address    *string            `json:"address"`
	ImageURL   *string            `json:"imageUrl"`
	Img        *string            `json:"img"`
	Latitude   *models.Float      `json:"latitude"`
	Longitude  *models.Float      `json:"longitude"`
	Menu       *[]models.MenuItem `json:"menu"`
}

type ReplaceMenuRequest struct {
	Menu *[]models.MenuItem `json:"menu"`
}

// restaurantBindError keeps the numeric coercion message distinct from the
// generic decode failures
func restaurantBindError(c *gin.Context, err error) {
	if isNotNumeric(err) {
		resp.BadRequest(c, msgInvalidNumbers)
		return
	}
	resp.BadRequest(c, bindErrorMessage(err, msgMissingFields))
}

func isNotNumeric(err error) bool {
	return errors.Is(err, models.ErrNotNumeric)
}

// CreateRestaurant adds a restaurant owned by the caller
func (h *Handler) CreateRestaurant(c *gin.Context) {
	ownerID := callerID(c)

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		restaurantBindError(c, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Address) == "" {
		resp.BadRequest(c, msgMissingFields)
		return
	}
	if req.Rating == nil || req.Latitude == nil || req.Longitude == nil {
		resp.BadRequest(c, msgInvalidNumbers)
		return
	}
	if req.UserID != "" && req.UserID != ownerID {
		resp.Forbidden(c, "userId does not match the authenticated user")
		return
	}
	if err := models.ValidateMenu(req.Menu); err != nil {
		resp.BadRequest(c, msgInvalidMenu)
		return
	}

	restaurant := models.Restaurant{
		Name:       strings.TrimSpace(req.Name),
		Cuisine:    req.Cuisine,
		Rating:     float64(*req.Rating),
		PriceRange: req.PriceRange,
		Address:    strings.TrimSpace(req.Address),
		ImageURL:   req.ImageURL,
		Img:        req.Img,
		Latitude:   float64(*req.Latitude),
		Longitude:  float64(*req.Longitude),
		Menu:       datatypes.JSONSlice[models.MenuItem](req.Menu),
		UserID:     ownerID,
	}
	if err := h.store.Restaurants.Create(c.Request.Context(), &restaurant); err != nil {
		storeFailure(c, err, msgRestaurantAbsent, "Failed to add restaurant. Server or database error.")
		return
	}

	log.Printf("🏪 Restaurant %s created by %s", restaurant.ID, ownerID)
	resp.Created(c, gin.H{
		"message":    "Restaurant added successfully!",
		"restaurant": restaurant,
	})
}

// ListRestaurantsByOwner returns the restaurants of ?userId= (public)
func (h *Handler) ListRestaurantsByOwner(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		resp.BadRequest(c, "User ID is required")
		return
	}

	restaurants, err := h.store.Restaurants.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		resp.ServerError(c, "Failed to fetch restaurant data.", err)
		return
	}
	resp.OK(c, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// ownedRestaurant loads a restaurant and checks it belongs to the caller.
// A foreign restaurant is reported the same way as a missing one.
func (h *Handler) ownedRestaurant(c *gin.Context, id string) (*models.Restaurant, bool) {
	restaurant, err := h.store.Restaurants.FindByID(c.Request.Context(), id)
	if err != nil {
		storeFailure(c, err, msgNotOwned, "Failed to fetch restaurant data.")
		return nil, false
	}
	// Verify ownership
	if restaurant.UserID != callerID(c) {
		resp.NotFound(c, msgNotOwned)
		return nil, false
	}
	return restaurant, true
}

// UpdateRestaurant overwrites only the fields present in the body
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.ownedRestaurant(c, id); !ok {
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		restaurantBindError(c, err)
		return
	}

	patch := models.RestaurantPatch{
		Name:       trimmed(req.Name),
		Cuisine:    req.Cuisine,
		Rating:     req.Rating.Ptr(),
		PriceRange: req.PriceRange,
		Address:    trimmed(req.Address),
		ImageURL:   req.ImageURL,
		Img:        req.Img,
		Latitude:   req.Latitude.Ptr(),
		Longitude:  req.Longitude.Ptr(),
		Menu:       req.Menu,
	}
	if (patch.Name != nil && *patch.Name == "") || (patch.Address != nil && *patch.Address == "") {
		resp.BadRequest(c, "name and address cannot be empty")
		return
	}
	if patch.Menu != nil {
		if err := models.ValidateMenu(*patch.Menu); err != nil {
			resp.BadRequest(c, msgInvalidMenu)
			return
		}
	}
	if patch.IsEmpty() {
		resp.BadRequest(c, "No fields to update")
		return
	}

	restaurant, err := h.store.Restaurants.Update(c.Request.Context(), id, patch)
	if err != nil {
		storeFailure(c, err, msgNotOwned, "Failed to update restaurant")
		return
	}
	resp.OK(c, gin.H{
		"message":    "Restaurant updated successfully",
		"restaurant": restaurant,
	})
}

// GetRestaurant returns a single restaurant (public)
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.store.Restaurants.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeFailure(c, err, msgRestaurantAbsent, "Failed to fetch restaurant data.")
		return
	}
	resp.OK(c, gin.H{"restaurant": restaurant})
}

// ── Menu Management ──────────────────────────────────────────────────────────

// ReplaceMenu swaps the whole menu list
func (h *Handler) ReplaceMenu(c *gin.Context) {
	var req ReplaceMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Menu == nil {
		resp.BadRequest(c, msgInvalidMenu)
		return
	}
	if err := models.ValidateMenu(*req.Menu); err != nil {
		resp.BadRequest(c, msgInvalidMenu)
		return
	}

	id := c.Param("id")
	if _, ok := h.ownedRestaurant(c, id); !ok {
		return
	}

	restaurant, err := h.store.Restaurants.ReplaceMenu(c.Request.Context(), id, *req.Menu)
	if err != nil {
		storeFailure(c, err, msgRestaurantAbsent, "Error updating menu")
		return
	}
	resp.OK(c, gin.H{
		"message":    "Menu updated successfully",
		"restaurant": restaurant,
	})
}

// DeleteRestaurant removes a restaurant that no order references
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.ownedRestaurant(c, id); !ok {
		return
	}

	if err := h.store.Restaurants.Delete(c.Request.Context(), id); err != nil {
		storeFailure(c, err, msgRestaurantAbsent, "Failed to delete restaurant")
		return
	}

	log.Printf("🗑️  Restaurant %s deleted", id)
	resp.OK(c, gin.H{"message": "Restaurant deleted successfully"})
}
