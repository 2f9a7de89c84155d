package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"metalmart-gateway/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *CartHandler) {
	h := NewCartHandler(service.NewCartService())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/api/cart", h.GetCart)
	app.Post("/api/cart/items", h.AddItem)
	app.Put("/api/cart/items/:productId", h.UpdateQuantity)
	app.Delete("/api/cart", h.ClearCart)

	return app, h
}

// TestCartHandler_MintsSession verifies a session id is minted and echoed.
func TestCartHandler_MintsSession(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cart", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(SessionHeader))
}

// TestCartHandler_AddAndGet verifies an added item shows up in the same session.
func TestCartHandler_AddAndGet(t *testing.T) {
	app, _ := newTestApp()

	body, _ := json.Marshal(map[string]interface{}{
		"product_id":   "p1",
		"product_name": "Bear Hoodie",
		"unit_price":   "39.99",
		"quantity":     2,
		"image_url":    "https://img.test/p1.jpg",
	})

	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "session-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	getReq := httptest.NewRequest("GET", "/api/cart", nil)
	getReq.Header.Set(SessionHeader, "session-1")
	getResp, err := app.Test(getReq)
	require.NoError(t, err)

	var view struct {
		Items []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ProductID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.Count)
}

// TestCartHandler_AddValidation verifies bad add payloads are rejected.
func TestCartHandler_AddValidation(t *testing.T) {
	app, _ := newTestApp()

	cases := []map[string]interface{}{
		{"product_name": "no id", "quantity": 1},
		{"product_id": "p1", "quantity": 0},
		{"product_id": "p1", "quantity": 1, "unit_price": "-1"},
	}

	for _, payload := range cases {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

// TestCartHandler_UpdateQuantityRemoves verifies a zero quantity removes the line.
func TestCartHandler_UpdateQuantityRemoves(t *testing.T) {
	app, _ := newTestApp()

	body, _ := json.Marshal(map[string]interface{}{
		"product_id": "p1",
		"quantity":   3,
		"unit_price": "10",
	})
	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "s")
	_, err := app.Test(req)
	require.NoError(t, err)

	update, _ := json.Marshal(map[string]int{"quantity": 0})
	putReq := httptest.NewRequest("PUT", "/api/cart/items/p1", bytes.NewReader(update))
	putReq.Header.Set("Content-Type", "application/json")
	putReq.Header.Set(SessionHeader, "s")

	resp, err := app.Test(putReq)
	require.NoError(t, err)

	var view struct {
		Items []interface{} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Empty(t, view.Items)
}

// TestCartHandler_Clear verifies DELETE empties the session cart.
func TestCartHandler_Clear(t *testing.T) {
	app, _ := newTestApp()

	body, _ := json.Marshal(map[string]interface{}{
		"product_id": "p1",
		"quantity":   1,
		"unit_price": "5",
	})
	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "s")
	_, err := app.Test(req)
	require.NoError(t, err)

	delReq := httptest.NewRequest("DELETE", "/api/cart", nil)
	delReq.Header.Set(SessionHeader, "s")
	resp, err := app.Test(delReq)
	require.NoError(t, err)

	var view struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, 0, view.Count)
}
