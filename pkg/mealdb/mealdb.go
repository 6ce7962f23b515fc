// Package mealdb is a client for TheMealDB ingredient filter endpoint.
package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"mealorders/pkg/logger"
	"mealorders/pkg/otel"
)

// DefaultBaseURL is the public free-tier API root.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

var (
	// ErrNoMeals is returned when the search matched nothing.
	ErrNoMeals = errors.New("no meals found")
	// ErrTransport covers network, status and decoding failures.
	ErrTransport = errors.New("meal lookup failed")
)

// Meal is one search result. The field names follow the upstream API.
type Meal struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

type filterResponse struct {
	Meals []Meal `json:"meals"`
}

// Client queries the lookup service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for failed lookups.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a Client rooted at baseURL. An empty baseURL means
// DefaultBaseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FilterByIngredient lists meals that use ingredient. The ingredient is
// expected to be normalized already.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]Meal, error) {
	ctx, span := otel.AddSpan(ctx, "mealdb.FilterByIngredient", attribute.String("ingredient", ingredient))
	defer span.End()

	u := c.baseURL + "/filter.php?i=" + url.QueryEscape(ingredient)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "meal lookup", "ingredient", ingredient, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "meal lookup", "ingredient", ingredient, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	var body filterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn(ctx, "meal lookup decode", "ingredient", ingredient, "error", err)
		return nil, fmt.Errorf("%w: decoding response: %v", ErrTransport, err)
	}
	span.SetAttributes(attribute.Int("meals", len(body.Meals)))
	if len(body.Meals) == 0 {
		return nil, ErrNoMeals
	}
	return body.Meals, nil
}
