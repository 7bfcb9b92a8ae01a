package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-admin/handlers"
	"restaurant-admin/middleware"
	"restaurant-admin/models"
	"restaurant-admin/realtime"
	"restaurant-admin/routes"
	"restaurant-admin/statemachine"
	"restaurant-admin/store"
	"restaurant-admin/store/sqlstore"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *store.Store
	tokens *middleware.TokenIssuer
}

func newTestAPI(t *testing.T, policy statemachine.Policy) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := sqlstore.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })

	tokens := middleware.NewTokenIssuer(testSecret, 7*24*time.Hour)
	h := handlers.New(s, tokens, realtime.NewHub(), policy)
	r := gin.New()
	routes.SetupRoutes(r, h, tokens)
	return &testAPI{t: t, router: r, store: s, tokens: tokens}
}

func (a *testAPI) call(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

// signupAndLogin registers a user and returns its id and token
func (a *testAPI) signupAndLogin(name, email, phone string) (string, string) {
	a.t.Helper()
	code, body := a.call(http.MethodPost, "/api/client", "", gin.H{
		"name": name, "email": email, "phone": phone, "password": "pass1234",
	})
	require.Equal(a.t, http.StatusCreated, code, body)

	code, body = a.call(http.MethodPost, "/api/login", "", gin.H{"phone": phone, "password": "pass1234"})
	require.Equal(a.t, http.StatusOK, code, body)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func (a *testAPI) createRestaurant(token string, fields gin.H) string {
	a.t.Helper()
	body := gin.H{"name": "Spice Hub", "address": "MG Road", "rating": 4.2, "latitude": 12.9716, "longitude": 77.5946}
	for k, v := range fields {
		body[k] = v
	}
	code, out := a.call(http.MethodPost, "/api/restaurants/nearby", token, body)
	require.Equal(a.t, http.StatusCreated, code, out)
	return out["restaurant"].(map[string]any)["id"].(string)
}

func (a *testAPI) placeOrder(token, restaurantID, date string) string {
	a.t.Helper()
	code, out := a.call(http.MethodPost, "/api/orders", token, gin.H{
		"restaurantId": restaurantID,
		"date":         date,
		"items":        []gin.H{{"name": "Dosa", "price": 80, "quantity": 2}},
		"latitude":     12.93,
		"longitude":    77.62,
	})
	require.Equal(a.t, http.StatusCreated, code, out)
	return out["order"].(map[string]any)["id"].(string)
}

func countUsers(t *testing.T, s *store.Store) int {
	users, err := s.Users.List(context.Background())
	require.NoError(t, err)
	return len(users)
}

// ── Auth ─────────────────────────────────────────────────────────

func TestSignupRejectsDuplicates(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	api.signupAndLogin("Asha", "asha@example.com", "9990001111")

	code, body := api.call(http.MethodPost, "/api/client", "", gin.H{
		"name": "Other", "email": "asha@example.com", "phone": "9990002222", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A user with this email already exists", body["message"])

	code, body = api.call(http.MethodPost, "/api/client", "", gin.H{
		"name": "Other", "email": "other@example.com", "phone": "9990001111", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A user with this phone number already exists", body["message"])

	assert.Equal(t, 1, countUsers(t, api.store))
}

func TestSignupRequiresAllFields(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	code, body := api.call(http.MethodPost, "/api/client", "", gin.H{"name": "Asha", "email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "All fields are required", body["message"])
	assert.Zero(t, countUsers(t, api.store))
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	id, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")

	claims, err := api.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "9990001111", claims.Phone)

	code, body := api.call(http.MethodPost, "/api/login", "", gin.H{"phone": "9990001111", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.NotContains(t, body, "token")

	code, body = api.call(http.MethodPost, "/api/login", "", gin.H{"phone": "0000000000", "password": "pass1234"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid phone number or password", body["message"])
	assert.NotContains(t, body, "token")
}

func TestAuthCheck(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	id, _ := api.signupAndLogin("Asha", "asha@example.com", "9990001111")

	code, _ := api.call(http.MethodGet, "/api/client", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	forged, err := middleware.NewTokenIssuer("another-secret", time.Hour).Issue(&models.User{ID: id, Name: "Asha"})
	require.NoError(t, err)
	code, _ = api.call(http.MethodGet, "/api/client", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	valid, err := api.tokens.Issue(&models.User{ID: id, Name: "Asha"})
	require.NoError(t, err)
	code, body := api.call(http.MethodGet, "/api/client", valid, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, id, body["user"].(map[string]any)["id"])
	assert.NotContains(t, body["user"], "password")
}

func TestProfileIsSelfOnly(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	asha, ashaToken := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	ravi, _ := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")

	code, _ := api.call(http.MethodGet, "/api/client/"+ravi, ashaToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := api.call(http.MethodPatch, "/api/client/"+asha, ashaToken, gin.H{"city": "Pune", "dob": "1990-05-17"})
	require.Equal(t, http.StatusOK, code, body)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Pune", user["city"])
	assert.Equal(t, "Asha", user["name"])
	assert.Contains(t, user["dob"], "1990-05-17")

	code, body = api.call(http.MethodPatch, "/api/client/"+asha, ashaToken, gin.H{"phone": "9990002222"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A user with this phone number already exists", body["message"])

	code, _ = api.call(http.MethodPatch, "/api/client/"+asha, ashaToken, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListUsersHidesPasswords(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")

	code, body := api.call(http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, code)
	users := body["users"].([]any)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password")
	}
}

// ── Restaurants ──────────────────────────────────────────────────

func TestCreateRestaurantRejectsNonNumeric(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	owner, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")

	for _, field := range []string{"rating", "latitude", "longitude"} {
		body := gin.H{"name": "Spice Hub", "address": "MG Road", "rating": "4.5", "latitude": "12.97", "longitude": "77.59"}
		body[field] = "abc"
		code, out := api.call(http.MethodPost, "/api/restaurants/nearby", token, body)
		assert.Equal(t, http.StatusBadRequest, code, field)
		assert.Equal(t, "Rating, latitude, or longitude must be valid numbers.", out["message"], field)
	}

	list, err := api.store.Restaurants.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateRestaurantCoercesNumericStrings(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	owner, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")

	code, out := api.call(http.MethodPost, "/api/restaurants/nearby", token, gin.H{
		"name": "Spice Hub", "address": "MG Road", "rating": "4.5", "latitude": "12.97", "longitude": 77.59,
		"menu": []gin.H{{"name": "Dosa", "price": 80}},
	})
	require.Equal(t, http.StatusCreated, code, out)
	r := out["restaurant"].(map[string]any)
	assert.Equal(t, 4.5, r["rating"])
	assert.Equal(t, 12.97, r["latitude"])
	assert.Equal(t, owner, r["userId"])

	code, out = api.call(http.MethodGet, "/api/restaurants/nearby?userId="+owner, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])

	code, out = api.call(http.MethodGet, "/api/restaurants/nearby", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User ID is required", out["message"])
}

func TestCreateRestaurantForAnotherUser(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	ravi, _ := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")

	code, _ := api.call(http.MethodPost, "/api/restaurants/nearby", token, gin.H{
		"name": "X", "address": "Y", "rating": 1, "latitude": 1, "longitude": 1, "userId": ravi,
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestUnknownFieldsRejected(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")

	code, out := api.call(http.MethodPost, "/api/restaurants/nearby", token, gin.H{
		"name": "X", "address": "Y", "rating": 1, "latitude": 1, "longitude": 1, "isAdmin": true,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out["message"], "isAdmin")
}

func TestPartialRestaurantUpdate(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	id := api.createRestaurant(token, gin.H{"cuisine": "South Indian"})

	code, out := api.call(http.MethodPatch, "/api/restaurants/nearby/"+id, token, gin.H{"rating": 4.9})
	require.Equal(t, http.StatusOK, code, out)

	code, out = api.call(http.MethodGet, "/api/restaurants/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)
	r := out["restaurant"].(map[string]any)
	assert.Equal(t, 4.9, r["rating"])
	assert.Equal(t, "Spice Hub", r["name"])
	assert.Equal(t, "South Indian", r["cuisine"])
	assert.Equal(t, 12.9716, r["latitude"])
}

func TestRestaurantUpdateIsOwnerScoped(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, ashaToken := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	_, raviToken := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")
	id := api.createRestaurant(ashaToken, nil)

	code, out := api.call(http.MethodPatch, "/api/restaurants/nearby/"+id, raviToken, gin.H{"name": "Mine now"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Restaurant not found or not owned by user", out["message"])

	code, _ = api.call(http.MethodDelete, "/api/restaurants/"+id, raviToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.call(http.MethodGet, "/api/restaurants/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReplaceMenu(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	id := api.createRestaurant(token, nil)

	code, out := api.call(http.MethodPut, "/api/restaurants/"+id, token, gin.H{"menu": "dosa"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid menu data", out["message"])

	code, out = api.call(http.MethodPut, "/api/restaurants/"+id, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid menu data", out["message"])

	code, out = api.call(http.MethodPut, "/api/restaurants/"+id, token, gin.H{
		"menu": []gin.H{{"name": "Dosa", "price": 80}, {"name": "Vada", "price": 30}},
	})
	require.Equal(t, http.StatusOK, code, out)
	menu := out["restaurant"].(map[string]any)["menu"].([]any)
	assert.Len(t, menu, 2)
}

func TestDeleteRestaurant(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	busy := api.createRestaurant(token, nil)
	idle := api.createRestaurant(token, gin.H{"name": "Idle"})
	api.placeOrder(token, busy, "2024-03-01T10:00:00Z")

	code, _ := api.call(http.MethodDelete, "/api/restaurants/"+busy, token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, out := api.call(http.MethodDelete, "/api/restaurants/"+idle, token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Restaurant deleted successfully", out["message"])

	code, _ = api.call(http.MethodGet, "/api/restaurants/"+idle, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

// ── Orders ───────────────────────────────────────────────────────

func TestOrdersSortedByDateWithCoords(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, ownerToken := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	_, customerToken := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")
	id := api.createRestaurant(ownerToken, gin.H{"menu": []gin.H{{"name": "Dosa", "price": 80}}})

	for _, date := range []string{"2024-03-02T10:00:00Z", "2024-03-05T09:00:00Z", "2024-03-01T08:00:00Z"} {
		api.placeOrder(customerToken, id, date)
	}

	code, out := api.call(http.MethodGet, "/api/orders", ownerToken, nil)
	require.Equal(t, http.StatusOK, code, out)
	coords := out["restaurantCoords"].(map[string]any)
	assert.Equal(t, 12.9716, coords["latitude"])
	assert.Equal(t, 77.5946, coords["longitude"])
	assert.EqualValues(t, 3, out["count"])
	assert.EqualValues(t, 3, out["summary"].(map[string]any)["ordered"])

	orders := out["orders"].([]any)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		prev := orders[i-1].(map[string]any)["date"].(string)
		cur := orders[i].(map[string]any)["date"].(string)
		assert.GreaterOrEqual(t, prev, cur)
	}
	first := orders[0].(map[string]any)
	assert.EqualValues(t, 160, first["amount"])

	code, _ = api.call(http.MethodGet, "/api/orders", customerToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPlaceOrderValidation(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	id := api.createRestaurant(token, gin.H{"menu": []gin.H{{"name": "Dosa", "price": 80}}})

	code, _ := api.call(http.MethodPost, "/api/orders", token, gin.H{
		"restaurantId": "missing", "items": []gin.H{{"name": "Dosa", "price": 80, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, out := api.call(http.MethodPost, "/api/orders", token, gin.H{
		"restaurantId": id, "items": []gin.H{{"name": "Pizza", "price": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Item 'Pizza' is not on the menu", out["message"])

	code, out = api.call(http.MethodPost, "/api/orders", token, gin.H{
		"restaurantId": id, "items": []gin.H{{"name": "Dosa", "price": 1, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, code, out)
	order := out["order"].(map[string]any)
	assert.EqualValues(t, 240, order["amount"])
	assert.Equal(t, "ordered", order["orderStatus"])
	assert.NotEmpty(t, order["date"])

	code, out = api.call(http.MethodGet, "/api/orders/mine", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])
}

func TestUpdateOrderStatus(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, ownerToken := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	_, customerToken := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")
	rid := api.createRestaurant(ownerToken, nil)
	oid := api.placeOrder(customerToken, rid, "2024-03-01T10:00:00Z")

	code, out := api.call(http.MethodPatch, "/api/orders/"+oid, ownerToken, gin.H{"orderStatus": "in process"})
	require.Equal(t, http.StatusOK, code, out)
	assert.Equal(t, "Order status updated successfully", out["message"])
	assert.Equal(t, "ordered", out["previousStatus"])

	code, out = api.call(http.MethodGet, "/api/orders/"+oid, ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "in process", out["order"].(map[string]any)["orderStatus"])
	assert.Len(t, out["history"], 2)

	// Permissive policy: delivered may go back to ordered
	code, _ = api.call(http.MethodPatch, "/api/orders/"+oid, ownerToken, gin.H{"orderStatus": "delivered"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.call(http.MethodPatch, "/api/orders/"+oid, ownerToken, gin.H{"orderStatus": "ordered"})
	assert.Equal(t, http.StatusOK, code)

	code, out = api.call(http.MethodPatch, "/api/orders/"+oid, ownerToken, gin.H{"orderStatus": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "orderStatus must be one of: ordered, in process, delivered", out["message"])

	code, out = api.call(http.MethodPatch, "/api/orders/"+oid, ownerToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "orderStatus is required", out["message"])

	code, _ = api.call(http.MethodPatch, "/api/orders/"+oid, customerToken, gin.H{"orderStatus": "delivered"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.call(http.MethodPatch, "/api/orders/missing", ownerToken, gin.H{"orderStatus": "delivered"})
	assert.Equal(t, http.StatusNotFound, code)

	// The customer can still read their own order
	code, _ = api.call(http.MethodGet, "/api/orders/"+oid, customerToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestForwardPolicyRejectsBackwardMove(t *testing.T) {
	api := newTestAPI(t, statemachine.Forward)
	_, token := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	rid := api.createRestaurant(token, nil)
	oid := api.placeOrder(token, rid, "2024-03-01T10:00:00Z")

	code, _ := api.call(http.MethodPatch, "/api/orders/"+oid, token, gin.H{"orderStatus": "delivered"})
	require.Equal(t, http.StatusOK, code)

	code, out := api.call(http.MethodPatch, "/api/orders/"+oid, token, gin.H{"orderStatus": "ordered"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "delivered", out["currentStatus"])
	assert.Empty(t, out["validNextStates"])
}

func TestBulkUpdateOrderStatus(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, ownerToken := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	_, otherToken := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")
	rid := api.createRestaurant(ownerToken, nil)
	otherRid := api.createRestaurant(otherToken, gin.H{"name": "Other"})
	a := api.placeOrder(ownerToken, rid, "2024-03-01T10:00:00Z")
	b := api.placeOrder(ownerToken, rid, "2024-03-02T10:00:00Z")
	foreign := api.placeOrder(ownerToken, otherRid, "2024-03-03T10:00:00Z")

	code, _ := api.call(http.MethodPatch, "/api/orders", ownerToken, gin.H{"orderIds": []string{a, foreign}, "orderStatus": "delivered"})
	assert.Equal(t, http.StatusForbidden, code)

	// Nothing was written by the rejected request
	order, err := api.store.Orders.FindByID(context.Background(), a)
	require.NoError(t, err)
	assert.EqualValues(t, "ordered", order.OrderStatus)

	code, out := api.call(http.MethodPatch, "/api/orders", ownerToken, gin.H{"orderIds": []string{a, b}, "orderStatus": "delivered"})
	require.Equal(t, http.StatusOK, code, out)
	assert.EqualValues(t, 2, out["count"])
}

func TestStateMachineInfo(t *testing.T) {
	api := newTestAPI(t, statemachine.Forward)
	code, out := api.call(http.MethodGet, "/api/state-machine", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "forward", out["policy"])
	assert.Len(t, out["transitions"], 3)
}

// ── Delivery ─────────────────────────────────────────────────────

func TestDeliveryInfoAndPending(t *testing.T) {
	api := newTestAPI(t, statemachine.Permissive)
	_, ownerToken := api.signupAndLogin("Asha", "asha@example.com", "9990001111")
	_, customerToken := api.signupAndLogin("Ravi", "ravi@example.com", "9990002222")
	rid := api.createRestaurant(ownerToken, nil)
	first := api.placeOrder(customerToken, rid, "2024-03-01T10:00:00Z")
	second := api.placeOrder(customerToken, rid, "2024-03-02T10:00:00Z")

	code, out := api.call(http.MethodGet, "/api/orders/"+first+"/delivery", ownerToken, nil)
	require.Equal(t, http.StatusOK, code, out)
	order := out["order"].(map[string]any)
	assert.Equal(t, "Ravi", order["userData"].(map[string]any)["name"])
	location := order["userLocation"].(map[string]any)
	assert.Equal(t, "Lat: 12.9300, Lng: 77.6200", location["address"])
	assert.Greater(t, location["distance"], 0.0)
	assert.Contains(t, order["directionsUrl"], "google.com/maps/dir")

	code, _ = api.call(http.MethodPatch, "/api/orders/"+first, ownerToken, gin.H{"orderStatus": "delivered"})
	require.Equal(t, http.StatusOK, code)

	code, out = api.call(http.MethodGet, "/api/orders/pending", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	pending := out["orders"].([]any)
	require.Len(t, pending, 1)
	assert.Equal(t, second, pending[0].(map[string]any)["id"])
}
