package handlers_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/testutil"
)

func TestOrders_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	customer := testutil.NewUserBuilder().WithID("c1").Build(t, ts.DB.DB)
	other := testutil.NewUserBuilder().WithID("c2").Build(t, ts.DB.DB)
	admin := testutil.NewUserBuilder().WithID("a1").AsAdmin().Build(t, ts.DB.DB)

	t.Run("customer order gets defaults and server fields", func(t *testing.T) {
		client := ts.Login(t, customer)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/orders"), map[string]any{
			"title":       "Navy Suit",
			"serviceType": "formal",
			"price":       "499.00",
			"dueDate":     "2025-12-01",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var order domain.Order
		testutil.AssertJSONResponse(t, resp, &order)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, customer.ID, order.CustomerID)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, domain.PriorityMedium, order.Priority)
		require.NotNil(t, order.Price)
		assert.True(t, order.Price.Equal(decimal.RequireFromString("499.00")))
		require.NotNil(t, order.DueDate)
		assert.False(t, order.CreatedAt.IsZero())
	})

	t.Run("customer cannot file for someone else", func(t *testing.T) {
		client := ts.Login(t, customer)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/orders"), map[string]any{
			"customerId":  other.ID,
			"title":       "Sneaky Jacket",
			"serviceType": "casual",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var order domain.Order
		testutil.AssertJSONResponse(t, resp, &order)
		assert.Equal(t, customer.ID, order.CustomerID, "customerId is forced to the caller")
	})

	t.Run("admin files on a customer's behalf", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/orders"), map[string]any{
			"customerId":  other.ID,
			"title":       "Wedding Suit",
			"serviceType": "wedding",
			"priority":    "high",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var order domain.Order
		testutil.AssertJSONResponse(t, resp, &order)
		assert.Equal(t, other.ID, order.CustomerID)
		assert.Equal(t, domain.PriorityHigh, order.Priority)
	})

	t.Run("empty body lists every missing field", func(t *testing.T) {
		callers := []struct {
			name string
			user *domain.User
		}{
			{"admin", admin},
			{"customer", customer},
		}
		for _, tc := range callers {
			t.Run(tc.name, func(t *testing.T) {
				client := ts.Login(t, tc.user)

				resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/orders"), map[string]any{})
				defer resp.Body.Close()
				require.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var errResp struct {
					Message string `json:"message"`
					Errors  []struct {
						Field string `json:"field"`
					} `json:"errors"`
				}
				testutil.AssertJSONResponse(t, resp, &errResp)
				fields := make([]string, 0, len(errResp.Errors))
				for _, fe := range errResp.Errors {
					fields = append(fields, fe.Field)
				}
				assert.ElementsMatch(t, []string{"customerId", "title", "serviceType"}, fields)
			})
		}
	})

	t.Run("unknown enum value", func(t *testing.T) {
		client := ts.Login(t, customer)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/orders"), map[string]any{
			"title":       "Odd Order",
			"serviceType": "formal",
			"status":      "shipped",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown fields are dropped, not rejected", func(t *testing.T) {
		client := ts.Login(t, customer)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/orders"), map[string]any{
			"title":       "Plain Shirt",
			"serviceType": "casual",
			"id":          "attacker-chosen",
			"createdAt":   "1999-01-01T00:00:00Z",
			"discount":    true,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var order domain.Order
		testutil.AssertJSONResponse(t, resp, &order)
		assert.NotEqual(t, "attacker-chosen", order.ID)
		assert.NotEqual(t, 1999, order.CreatedAt.Year())
	})
}

func TestOrders_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	c1 := testutil.NewUserBuilder().WithID("c1").Build(t, ts.DB.DB)
	c2 := testutil.NewUserBuilder().WithID("c2").Build(t, ts.DB.DB)
	admin := testutil.NewUserBuilder().WithID("a1").AsAdmin().Build(t, ts.DB.DB)

	mine := testutil.NewOrderBuilder(c1.ID).WithTitle("mine").Build(t, ts.DB.DB)
	theirs := testutil.NewOrderBuilder(c2.ID).WithTitle("theirs").Build(t, ts.DB.DB)

	t.Run("customer sees only their own orders", func(t *testing.T) {
		client := ts.Login(t, c1)

		resp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/orders"), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var orders []domain.Order
		testutil.AssertJSONResponse(t, resp, &orders)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/orders"), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var orders []domain.Order
		testutil.AssertJSONResponse(t, resp, &orders)
		ids := []string{orders[0].ID, orders[1].ID}
		assert.ElementsMatch(t, []string{mine.ID, theirs.ID}, ids)
	})

	t.Run("limit caps the page", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/orders?limit=1"), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var orders []domain.Order
		testutil.AssertJSONResponse(t, resp, &orders)
		assert.Len(t, orders, 1)
	})
}

func TestOrders_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	c1 := testutil.NewUserBuilder().WithID("c1").Build(t, ts.DB.DB)
	c2 := testutil.NewUserBuilder().WithID("c2").Build(t, ts.DB.DB)
	admin := testutil.NewUserBuilder().WithID("a1").AsAdmin().Build(t, ts.DB.DB)

	order := testutil.NewOrderBuilder(c2.ID).Build(t, ts.DB.DB)

	t.Run("cross-tenant patch is forbidden and leaves the order alone", func(t *testing.T) {
		client := ts.Login(t, c1)

		resp := testutil.DoJSON(t, client, http.MethodPatch, ts.APIURL("/orders/"+order.ID), map[string]any{
			"status": "completed",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var current domain.Order
		require.NoError(t, ts.DB.DB.First(&current, "id = ?", order.ID).Error)
		assert.Equal(t, domain.StatusPending, current.Status)
	})

	t.Run("admin patches any order", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodPatch, ts.APIURL("/orders/"+order.ID), map[string]any{
			"status": "completed",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated domain.Order
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("owner patches their own order", func(t *testing.T) {
		own := testutil.NewOrderBuilder(c1.ID).Build(t, ts.DB.DB)
		client := ts.Login(t, c1)

		resp := testutil.DoJSON(t, client, http.MethodPatch, ts.APIURL("/orders/"+own.ID), map[string]any{
			"priority": "urgent",
			"price":    125.5,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated domain.Order
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, domain.PriorityUrgent, updated.Priority)
		require.NotNil(t, updated.Price)
		assert.True(t, updated.Price.Equal(decimal.RequireFromString("125.50")))
	})

	t.Run("missing order is 404, never 403", func(t *testing.T) {
		client := ts.Login(t, c1)

		resp := testutil.DoJSON(t, client, http.MethodPatch, ts.APIURL("/orders/no-such-order"), map[string]any{
			"status": "completed",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		doomed := testutil.NewOrderBuilder(c1.ID).Build(t, ts.DB.DB)

		client := ts.Login(t, c1)
		resp := testutil.DoJSON(t, client, http.MethodDelete, ts.APIURL("/orders/"+doomed.ID), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		adminClient := ts.Login(t, admin)
		resp = testutil.DoJSON(t, adminClient, http.MethodDelete, ts.APIURL("/orders/"+doomed.ID), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		// Deleting again is still a success.
		resp = testutil.DoJSON(t, adminClient, http.MethodDelete, ts.APIURL("/orders/"+doomed.ID), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("invalid enum in patch", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodPatch, ts.APIURL("/orders/"+order.ID), map[string]any{
			"status": "teleported",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
