package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"
	"restaurant-admin/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a new user account
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req, "All fields are required") {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, "Failed to hash password", err)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Password: string(hash),
	}
	// Email and phone uniqueness is checked by the store before insert
	if err := h.store.Users.Create(c.Request.Context(), &user); err != nil {
		storeFailure(c, err, "User not found", "Internal Server Error")
		return
	}

	log.Printf("👤 New user %s registered", user.ID)
	resp.Created(c, gin.H{
		"message": "User created successfully",
		"user":    user.Summary(),
	})
}

// Login authenticates a user by phone number and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req, "Phone number and password are required") {
		return
	}

	user, err := h.store.Users.FindByPhone(c.Request.Context(), strings.TrimSpace(req.Phone))
	if errors.Is(err, store.ErrNotFound) {
		resp.Fail(c, http.StatusUnauthorized, "Invalid phone number or password")
		return
	}
	if err != nil {
		resp.ServerError(c, "Internal Server Error", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Fail(c, http.StatusUnauthorized, "Invalid phone number or password")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		resp.ServerError(c, "Failed to generate token", err)
		return
	}

	resp.OK(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.store.Users.FindByID(c.Request.Context(), callerID(c))
	if err != nil {
		storeFailure(c, err, "User not found", "Failed to fetch user")
		return
	}
	resp.OK(c, gin.H{"user": user})
}

// ── Profile by id ─────────────────────────────────────────────────

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	State   *string `json:"state"`
	City    *string `json:"city"`
	Pincode *string `json:"pincode"`
	DOB     *string `json:"dob"`
}

// GetClient returns a profile; users may only read their own
func (h *Handler) GetClient(c *gin.Context) {
	id := c.Param("id")
	if id != callerID(c) {
		resp.Forbidden(c, "You can only access your own profile")
		return
	}

	user, err := h.store.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		storeFailure(c, err, "User not found", "Failed to fetch user")
		return
	}
	resp.OK(c, gin.H{"user": user})
}

// UpdateClient applies a partial profile update
func (h *Handler) UpdateClient(c *gin.Context) {
	id := c.Param("id")
	if id != callerID(c) {
		resp.Forbidden(c, "You can only update your own profile")
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req, "") {
		return
	}

	patch := models.UserPatch{
		Name:    trimmed(req.Name),
		Email:   trimmed(req.Email),
		Phone:   trimmed(req.Phone),
		Address: req.Address,
		State:   req.State,
		City:    req.City,
		Pincode: req.Pincode,
	}
	if req.Email != nil {
		lower := strings.ToLower(*patch.Email)
		patch.Email = &lower
	}
	required := []struct {
		field string
		value *string
	}{{"name", patch.Name}, {"email", patch.Email}, {"phone", patch.Phone}}
	for _, r := range required {
		if r.value != nil && *r.value == "" {
			resp.BadRequest(c, r.field+" cannot be empty")
			return
		}
	}
	if req.DOB != nil {
		dob, err := parseDate(*req.DOB)
		if err != nil {
			resp.BadRequest(c, "dob must be a date (YYYY-MM-DD)")
			return
		}
		patch.DOB = &dob
	}
	if patch.IsEmpty() {
		resp.BadRequest(c, "No fields to update")
		return
	}

	user, err := h.store.Users.Update(c.Request.Context(), id, patch)
	if err != nil {
		storeFailure(c, err, "User not found", "Failed to update user")
		return
	}
	resp.OK(c, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
