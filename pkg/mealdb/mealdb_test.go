package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/filter.php" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("i")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotQuery
}

func TestFilterByIngredient(t *testing.T) {
	srv, q := newServer(t, http.StatusOK, `{"meals":[
		{"strMeal":"Chicken Handi","strMealThumb":"https://img/1.jpg","idMeal":"52795"},
		{"strMeal":"Chicken Karaage","strMealThumb":"https://img/2.jpg","idMeal":"52831"}]}`)
	c := New(srv.URL+"/", time.Second)

	meals, err := c.FilterByIngredient(context.Background(), "chicken_breast")
	require.NoError(t, err)
	assert.Equal(t, "chicken_breast", *q)
	require.Len(t, meals, 2)
	assert.Equal(t, Meal{ID: "52795", Name: "Chicken Handi", Thumb: "https://img/1.jpg"}, meals[0])
}

func TestFilterByIngredientNoMeals(t *testing.T) {
	for _, body := range []string{`{"meals":null}`, `{}`, `{"meals":[]}`} {
		srv, _ := newServer(t, http.StatusOK, body)
		_, err := New(srv.URL, time.Second).FilterByIngredient(context.Background(), "beef_cheese")
		assert.ErrorIs(t, err, ErrNoMeals, body)
	}
}

func TestFilterByIngredientTransportFailures(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusInternalServerError, `oops`)
		_, err := New(srv.URL, time.Second).FilterByIngredient(context.Background(), "egg")
		assert.ErrorIs(t, err, ErrTransport)
	})
	t.Run("bad json", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `<html>`)
		_, err := New(srv.URL, time.Second).FilterByIngredient(context.Background(), "egg")
		assert.ErrorIs(t, err, ErrTransport)
	})
	t.Run("unreachable", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{}`)
		srv.Close()
		_, err := New(srv.URL, time.Second).FilterByIngredient(context.Background(), "egg")
		assert.ErrorIs(t, err, ErrTransport)
	})
	t.Run("canceled", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(srv.URL, time.Second).FilterByIngredient(ctx, "egg")
		assert.ErrorIs(t, err, ErrTransport)
	})
}
