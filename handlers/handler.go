package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"restaurant-admin/geocode"
	"restaurant-admin/middleware"
	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"
	"restaurant-admin/realtime"
	"restaurant-admin/statemachine"
	"restaurant-admin/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler carries the dependencies every endpoint needs
type Handler struct {
	store  *store.Store
	tokens *middleware.TokenIssuer
	hub    *realtime.Hub
	policy statemachine.Policy

	geocoder geocode.Geocoder
}

func New(s *store.Store, tokens *middleware.TokenIssuer, hub *realtime.Hub, policy statemachine.Policy) *Handler {
	if hub == nil {
		hub = realtime.NewHub()
	}
	if policy == "" {
		policy = statemachine.Permissive
	}
	return &Handler{store: s, tokens: tokens, hub: hub, policy: policy}
}

// Hub exposes the websocket hub so routes can mount it
func (h *Handler) Hub() *realtime.Hub {
	return h.hub
}

// callerID returns the authenticated user's id. Routes using it sit behind
// middleware.AuthRequired.
func callerID(c *gin.Context) string {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return ""
	}
	return s.UserID
}

// bindJSON decodes the body and writes a 400 on failure. missingMsg replaces
// the message when a required field is absent.
func bindJSON(c *gin.Context, req any, missingMsg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		resp.BadRequest(c, bindErrorMessage(err, missingMsg))
		return false
	}
	return true
}

func bindErrorMessage(err error, missingMsg string) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			if fe.Tag() == "required" && missingMsg != "" {
				return missingMsg
			}
		}
		return validationMessage(verrs[0])
	case errors.Is(err, io.EOF):
		if missingMsg != "" {
			return missingMsg
		}
		return "Request body is required"
	}
	return "Invalid request body: " + err.Error()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "orderstatus":
		return fe.Field() + " must be one of: " + statusList()
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
}

func statusList() string {
	names := make([]string, len(models.OrderStatuses))
	for i, s := range models.OrderStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ValidateOrderStatus backs the `orderstatus` binding tag
func ValidateOrderStatus(fl validator.FieldLevel) bool {
	return models.OrderStatus(fl.Field().String()).Valid()
}

// storeFailure maps a store error onto the response envelope
func storeFailure(c *gin.Context, err error, notFoundMsg, serverMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		resp.NotFound(c, notFoundMsg)
	case errors.Is(err, store.ErrDuplicateEmail):
		resp.BadRequest(c, "A user with this email already exists")
	case errors.Is(err, store.ErrDuplicatePhone):
		resp.BadRequest(c, "A user with this phone number already exists")
	case errors.Is(err, store.ErrInvalidReference):
		resp.BadRequest(c, "Referenced record does not exist")
	case errors.Is(err, store.ErrHasDependents):
		resp.Fail(c, http.StatusConflict, "Restaurant still has orders and cannot be deleted")
	default:
		resp.ServerError(c, serverMsg, err)
	}
}
