package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealorders/pkg/logger"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/order"
	"mealorders/pkg/session/memory"
)

type stubLookup struct {
	meals map[string][]mealdb.Meal
	err   error
}

func (s stubLookup) FilterByIngredient(_ context.Context, ingredient string) ([]mealdb.Meal, error) {
	if s.err != nil {
		return nil, s.err
	}
	if m := s.meals[ingredient]; len(m) > 0 {
		return m, nil
	}
	return nil, mealdb.ErrNoMeals
}

var testMeals = map[string][]mealdb.Meal{
	"chicken": {
		{ID: "52795", Name: "Chicken Handi", Thumb: "https://img/handi.jpg"},
		{ID: "52831", Name: "Chicken Karaage", Thumb: "https://img/karaage.jpg"},
	},
	"pasta": {{ID: "52982", Name: "Spaghetti", Thumb: "img1"}},
}

type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T, lookup stubLookup) (*client, *memory.Store) {
	t.Helper()
	kv := memory.New()
	srv := New(kv, lookup, logger.Nop(), WithIntn(func(int) int { return 0 }))
	return &client{t: t, h: srv.Router()}, kv
}

func (c *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) form(path string, vals url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", vals.Encode())
}

func (c *client) json(method, path string, body string, out any) *httptest.ResponseRecorder {
	c.t.Helper()
	rec := c.do(method, path, "application/json", body)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func TestHealth(t *testing.T) {
	c, _ := newClient(t, stubLookup{})
	rec := c.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Nil(t, c.cookie, "health checks do not start sessions")
}

func TestPageStartsSession(t *testing.T) {
	c, _ := newClient(t, stubLookup{})
	rec := c.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)
	assert.True(t, c.cookie.Expires.IsZero(), "session cookie must not outlive the browser session")

	body := rec.Body.String()
	assert.Contains(t, body, "No incomplete orders")
	assert.NotContains(t, body, "Completed Orders")

	first := c.cookie.Value
	c.do(http.MethodGet, "/", "", "")
	assert.Equal(t, first, c.cookie.Value, "existing session is kept")
}

func TestPageFlow(t *testing.T) {
	c, _ := newClient(t, stubLookup{meals: testMeals})

	rec := c.form("/submit", url.Values{"input": {" Pasta "}, "mode": {"random"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Added Spaghetti to incomplete orders")
	assert.Contains(t, body, `action="/orders/1/complete"`)
	assert.NotContains(t, body, "Completed Orders")

	rec = c.form("/submit", url.Values{"input": {"chicken"}, "mode": {"random"}})
	assert.Contains(t, rec.Body.String(), "Added Chicken Handi to incomplete orders")

	rec = c.form("/orders/1/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Order 1 has been marked as complete.")
	assert.Contains(t, body, "Completed Orders")
	assert.NotContains(t, body, `action="/orders/1/complete"`)
	assert.Contains(t, body, `action="/orders/2/complete"`)

	rec = c.form("/submit", url.Values{"input": {"1"}})
	assert.Contains(t, rec.Body.String(), "Order 1 is already complete.")
	assert.Contains(t, rec.Body.String(), "output-error")
}

func TestPageChooseAndPick(t *testing.T) {
	c, _ := newClient(t, stubLookup{meals: testMeals})

	rec := c.form("/submit", url.Values{"input": {"chicken"}, "mode": {"choose"}})
	body := rec.Body.String()
	assert.Contains(t, body, `<dialog id="mealModal" open>`)
	assert.Contains(t, body, "Chicken Karaage")
	assert.Contains(t, body, "No incomplete orders")

	rec = c.form("/orders", url.Values{"name": {"Chicken Karaage"}, "image": {"https://img/karaage.jpg"}})
	body = rec.Body.String()
	assert.Contains(t, body, "Added Chicken Karaage to incomplete orders")
	assert.Contains(t, body, `action="/orders/1/complete"`)
	assert.NotContains(t, body, "<dialog")
}

func TestSessionsAreIsolated(t *testing.T) {
	lookup := stubLookup{meals: testMeals}
	kv := memory.New()
	h := New(kv, lookup, logger.Nop()).Router()
	alice := &client{t: t, h: h}
	bob := &client{t: t, h: h}

	alice.form("/submit", url.Values{"input": {"pasta"}})
	var bobs []order.Order
	bob.json(http.MethodGet, "/api/orders", "", &bobs)
	assert.Empty(t, bobs)

	var alices []order.Order
	alice.json(http.MethodGet, "/api/orders", "", &alices)
	require.Len(t, alices, 1)
	assert.Equal(t, "Spaghetti", alices[0].Name)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
}

func TestForgedCookieIsReplaced(t *testing.T) {
	c, _ := newClient(t, stubLookup{})
	c.cookie = &http.Cookie{Name: SessionCookie, Value: "../../etc"}
	c.do(http.MethodGet, "/", "", "")
	assert.NotEqual(t, "../../etc", c.cookie.Value)
}

func TestAPISubmit(t *testing.T) {
	c, kv := newClient(t, stubLookup{meals: testMeals})

	var resp submitResponse
	rec := c.json(http.MethodPost, "/api/submit", `{"input":"pasta"}`, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Added Spaghetti to incomplete orders", resp.Message.Text)
	require.Len(t, resp.Pending.Rows, 1)
	assert.Equal(t, 1, resp.Pending.Rows[0].ID)
	assert.False(t, resp.Completed.Visible)

	raw, ok, _ := kv.Get(context.Background(), "session:"+c.cookie.Value+":lastOrderId")
	require.True(t, ok)
	assert.Equal(t, "2", raw)

	resp = submitResponse{}
	rec = c.json(http.MethodPost, "/api/submit", `{"input":"1"}`, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", string(resp.Message.Severity))
	assert.Empty(t, resp.Pending.Rows)
	assert.Equal(t, "No incomplete orders", resp.Pending.Placeholder)
	assert.True(t, resp.Completed.Visible)
}

func TestAPISubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		lookup stubLookup
		body   string
		status int
		text   string
	}{
		{"empty", stubLookup{}, `{"input":"  "}`, http.StatusBadRequest, "Please enter an ingredient or order number."},
		{"unknown id", stubLookup{}, `{"input":"99"}`, http.StatusNotFound, "Cannot find order number: 99"},
		{"no meals", stubLookup{}, `{"input":"beef cheese"}`, http.StatusNotFound, "We could not find any meals with beef_cheese, please try again"},
		{"no meals choose", stubLookup{}, `{"input":"beef cheese","mode":"choose"}`, http.StatusNotFound, "No meals found for 'beef_cheese'."},
		{"transport", stubLookup{err: mealdb.ErrTransport}, `{"input":"egg"}`, http.StatusBadGateway, "Something went wrong. Please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newClient(t, tc.lookup)
			var resp errorResponse
			rec := c.json(http.MethodPost, "/api/submit", tc.body, &resp)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.text, resp.Error)
			require.NotNil(t, resp.Message)
			assert.Equal(t, "error", string(resp.Message.Severity))
		})
	}
}

func TestAPIOrders(t *testing.T) {
	c, _ := newClient(t, stubLookup{meals: testMeals})

	rec := c.json(http.MethodPost, "/api/orders", `{"name":"Curry","image":"img2"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	c.json(http.MethodPost, "/api/orders", `{"name":"Tacos","image":"img3"}`, nil)

	rec = c.json(http.MethodPost, "/api/orders", `{"name":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.json(http.MethodPost, "/api/orders/2/complete", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.json(http.MethodPost, "/api/orders/2/complete", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = c.json(http.MethodPost, "/api/orders/7/complete", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = c.json(http.MethodPost, "/api/orders/x/complete", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var pending, completed, all []order.Order
	c.json(http.MethodGet, "/api/orders?status=pending", "", &pending)
	c.json(http.MethodGet, "/api/orders?status=completed", "", &completed)
	c.json(http.MethodGet, "/api/orders", "", &all)
	assert.Equal(t, []order.Order{{ID: 1, Name: "Curry", Image: "img2"}}, pending)
	assert.Equal(t, []order.Order{{ID: 2, Name: "Tacos", Image: "img3", Completed: true}}, completed)
	assert.Len(t, all, 2)

	rec = c.json(http.MethodGet, "/api/orders?status=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var views viewsResponse
	c.json(http.MethodGet, "/api/views", "", &views)
	require.Len(t, views.Pending.Rows, 1)
	assert.Equal(t, "/orders/1/complete", views.Pending.Rows[0].CompleteURL)
	require.Len(t, views.Completed.Rows, 1)
	assert.Empty(t, views.Completed.Rows[0].CompleteURL)
}

func TestAPIMeals(t *testing.T) {
	c, _ := newClient(t, stubLookup{meals: testMeals})

	var resp mealsResponse
	rec := c.json(http.MethodGet, "/api/meals?i=Chicken", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chicken", resp.Token)
	assert.Len(t, resp.Meals, 2)

	rec = c.json(http.MethodGet, "/api/meals?i=tofu", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = c.json(http.MethodGet, "/api/meals", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var all []order.Order
	c.json(http.MethodGet, "/api/orders", "", &all)
	assert.Empty(t, all, "searching alone must not create orders")
}
