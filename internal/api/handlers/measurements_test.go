package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/testutil"
)

func TestMeasurements_SaveIsAnUpsert(t *testing.T) {
	ts := testutil.NewTestServer(t)

	customer := testutil.NewUserBuilder().WithID("c1").Build(t, ts.DB.DB)
	client := ts.Login(t, customer)

	resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/measurements"), map[string]any{
		"chest": "42.0",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first domain.Measurement
	testutil.AssertJSONResponse(t, resp, &first)
	require.NotNil(t, first.Chest)
	assert.True(t, first.Chest.Equal(decimal.RequireFromString("42.0")))

	resp = testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/measurements"), map[string]any{
		"chest": "42.5",
		"waist": "34.0",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second domain.Measurement
	testutil.AssertJSONResponse(t, resp, &second)
	assert.Equal(t, first.ID, second.ID, "same row is replaced, not a new one")
	require.NotNil(t, second.Chest)
	assert.True(t, second.Chest.Equal(decimal.RequireFromString("42.5")))
	require.NotNil(t, second.Waist)
	assert.True(t, second.Waist.Equal(decimal.RequireFromString("34.0")))
	assert.Nil(t, second.Hip, "fields omitted from the replacement are cleared")

	var count int64
	require.NoError(t, ts.DB.DB.Model(&domain.Measurement{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMeasurements_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	c1 := testutil.NewUserBuilder().WithID("c1").Build(t, ts.DB.DB)
	c2 := testutil.NewUserBuilder().WithID("c2").Build(t, ts.DB.DB)
	admin := testutil.NewUserBuilder().WithID("a1").AsAdmin().Build(t, ts.DB.DB)

	c1Client := ts.Login(t, c1)
	resp := testutil.DoJSON(t, c1Client, http.MethodPost, ts.APIURL("/measurements"), map[string]any{
		"chest": "40.0",
		"notes": "prefers a slim fit",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("defaults to the caller", func(t *testing.T) {
		resp := testutil.DoJSON(t, c1Client, http.MethodGet, ts.APIURL("/measurements"), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var m domain.Measurement
		testutil.AssertJSONResponse(t, resp, &m)
		assert.Equal(t, c1.ID, m.CustomerID)
		assert.Equal(t, "prefers a slim fit", m.Notes)
	})

	t.Run("null when nothing is on file", func(t *testing.T) {
		client := ts.Login(t, c2)

		resp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/measurements"), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, "null", string(body))
	})

	t.Run("customer cannot read someone else's", func(t *testing.T) {
		client := ts.Login(t, c2)

		resp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/measurements?customerId="+c1.ID), nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin reads any customer's", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/measurements?customerId="+c1.ID), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var m domain.Measurement
		testutil.AssertJSONResponse(t, resp, &m)
		assert.Equal(t, c1.ID, m.CustomerID)
	})
}

func TestMeasurements_Save_Authorization(t *testing.T) {
	ts := testutil.NewTestServer(t)

	c1 := testutil.NewUserBuilder().WithID("c1").Build(t, ts.DB.DB)
	c2 := testutil.NewUserBuilder().WithID("c2").Build(t, ts.DB.DB)
	admin := testutil.NewUserBuilder().WithID("a1").AsAdmin().Build(t, ts.DB.DB)

	t.Run("customerId in the body is forced to the caller", func(t *testing.T) {
		client := ts.Login(t, c1)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/measurements"), map[string]any{
			"customerId": c2.ID,
			"inseam":     "32.0",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var m domain.Measurement
		testutil.AssertJSONResponse(t, resp, &m)
		assert.Equal(t, c1.ID, m.CustomerID)
	})

	t.Run("admin records for a customer", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/measurements"), map[string]any{
			"customerId":   c2.ID,
			"sleeveLength": "25.5",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var m domain.Measurement
		testutil.AssertJSONResponse(t, resp, &m)
		assert.Equal(t, c2.ID, m.CustomerID)
	})

	t.Run("admin naming a nonexistent customer gets 404", func(t *testing.T) {
		client := ts.Login(t, admin)

		resp := testutil.DoJSON(t, client, http.MethodPost, ts.APIURL("/measurements"), map[string]any{
			"customerId": "no-such-customer",
			"chest":      "41.0",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errResp struct {
			Message string `json:"message"`
		}
		testutil.AssertJSONResponse(t, resp, &errResp)
		assert.Equal(t, "Customer not found", errResp.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := ts.Login(t, c1)

		req, err := http.NewRequest(http.MethodPost, ts.APIURL("/measurements"), nil)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, "Invalid request body", errResp.Message)
	})
}
