// Package controller turns raw user input into order operations and a
// single status message for the user.
package controller

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"mealorders/pkg/logger"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/order"
)

var (
	// ErrValidation means the input was empty after normalization.
	ErrValidation = errors.New("empty input")
	// ErrSuperseded means a newer submit began while this one was waiting
	// on the lookup; its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer submit")
)

// Severity of a status message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Message is the text shown in the status region.
type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Mode selects what a successful ingredient search does.
type Mode string

const (
	// ModeRandom orders one matching meal picked at random.
	ModeRandom Mode = "random"
	// ModeChoose returns every match so the user can pick one.
	ModeChoose Mode = "choose"
)

// ParseMode maps a form or flag value to a Mode, defaulting to ModeRandom.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeChoose {
		return ModeChoose
	}
	return ModeRandom
}

// Path records which branch a submit took.
type Path string

const (
	PathValidation Path = "validation"
	PathComplete   Path = "complete"
	PathSearch     Path = "search"
	PathPick       Path = "pick"
)

// Outcome is the result of one controller call.
type Outcome struct {
	Path    Path          `json:"path"`
	Token   string        `json:"token,omitempty"`
	Message *Message      `json:"message,omitempty"`
	Order   *order.Order  `json:"order,omitempty"`
	Choices []mealdb.Meal `json:"choices,omitempty"`
	// Refresh is set when the order views changed and must be re-rendered.
	Refresh bool `json:"refresh"`
	// ResetInput asks the surface to clear and refocus the input.
	ResetInput bool `json:"resetInput"`
}

// Orders is the part of order.Store the controller needs.
type Orders interface {
	Create(ctx context.Context, name, image string) (order.Order, error)
	Complete(ctx context.Context, id int) error
}

// Lookup searches meals by ingredient.
type Lookup interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.Meal, error)
}

// Controller handles submits for one session.
type Controller struct {
	orders  Orders
	lookup  Lookup
	flights *Flights
	key     string
	intn    func(n int) int
	log     *logger.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithFlights shares a flight tracker across controllers; key identifies
// the session whose submits supersede each other.
func WithFlights(f *Flights, key string) Option {
	return func(c *Controller) {
		c.flights = f
		c.key = key
	}
}

// WithIntn sets the random source used by ModeRandom. intn(n) must return
// a value in [0,n).
func WithIntn(intn func(n int) int) Option {
	return func(c *Controller) { c.intn = intn }
}

// WithLogger sets the logger for unexpected failures.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New builds a Controller.
func New(orders Orders, lookup Lookup, opts ...Option) *Controller {
	c := &Controller{
		orders: orders,
		lookup: lookup,
		intn:   rand.IntN,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.flights == nil {
		c.flights = NewFlights()
	}
	return c
}

// Normalize trims raw, lowercases it and joins whitespace runs with "_",
// which is the form the lookup service expects.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}

// Submit handles one input. A token that is entirely an integer completes
// that order; anything else is searched as an ingredient. The returned
// error is the classified failure, if any; the Outcome always carries the
// message to show, except for ErrSuperseded.
func (c *Controller) Submit(ctx context.Context, raw string, mode Mode) (Outcome, error) {
	ticket := c.flights.Begin(c.key)
	defer ticket.Done()

	token := Normalize(raw)
	if token == "" {
		text := "Please enter an ingredient or order number."
		if mode == ModeChoose {
			text = "Please enter an ingredient first."
		}
		return Outcome{Path: PathValidation, Message: errorMsg(text), ResetInput: true}, ErrValidation
	}

	if id, err := strconv.Atoi(token); err == nil {
		return c.complete(ctx, token, id)
	}
	return c.search(ctx, ticket, token, mode)
}

// Pick orders a meal the user chose from a ModeChoose result.
func (c *Controller) Pick(ctx context.Context, name, image string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Outcome{Path: PathPick, Message: errorMsg("Please choose a meal."), ResetInput: true}, ErrValidation
	}
	return c.create(ctx, PathPick, "", name, strings.TrimSpace(image))
}

// Complete marks order id complete, as the per-row control does.
func (c *Controller) Complete(ctx context.Context, id int) (Outcome, error) {
	return c.complete(ctx, strconv.Itoa(id), id)
}

func (c *Controller) complete(ctx context.Context, token string, id int) (Outcome, error) {
	out := Outcome{Path: PathComplete, Token: token, ResetInput: true}
	err := c.orders.Complete(ctx, id)
	switch {
	case err == nil:
		out.Message = &Message{Severity: SeveritySuccess, Text: fmt.Sprintf("Order %d has been marked as complete.", id)}
		out.Refresh = true
		return out, nil
	case errors.Is(err, order.ErrNotFound):
		out.Message = errorMsg(fmt.Sprintf("Cannot find order number: %d", id))
	case errors.Is(err, order.ErrAlreadyComplete):
		out.Message = errorMsg(fmt.Sprintf("Order %d is already complete.", id))
	default:
		c.log.Error(ctx, "complete order", "id", id, "error", err)
		out.Message = genericFailure()
	}
	return out, err
}

func (c *Controller) search(ctx context.Context, ticket Ticket, token string, mode Mode) (Outcome, error) {
	out := Outcome{Path: PathSearch, Token: token, ResetInput: true}

	meals, err := c.lookup.FilterByIngredient(ctx, token)
	if !ticket.Current() {
		return Outcome{Path: PathSearch, Token: token}, ErrSuperseded
	}
	switch {
	case err == nil:
	case errors.Is(err, mealdb.ErrNoMeals):
		if mode == ModeChoose {
			out.Message = errorMsg(fmt.Sprintf("No meals found for '%s'.", token))
		} else {
			out.Message = errorMsg(fmt.Sprintf("We could not find any meals with %s, please try again", token))
		}
		return out, err
	default:
		c.log.Warn(ctx, "ingredient search", "token", token, "error", err)
		out.Message = genericFailure()
		return out, err
	}

	if mode == ModeChoose {
		out.Choices = meals
		out.Message = &Message{Severity: SeverityInfo, Text: fmt.Sprintf("Pick a meal made with %s.", token)}
		return out, nil
	}
	meal := meals[c.intn(len(meals))]
	return c.create(ctx, PathSearch, token, meal.Name, meal.Thumb)
}

func (c *Controller) create(ctx context.Context, path Path, token, name, image string) (Outcome, error) {
	out := Outcome{Path: path, Token: token, ResetInput: true}
	o, err := c.orders.Create(ctx, name, image)
	if err != nil {
		c.log.Error(ctx, "create order", "name", name, "error", err)
		out.Message = genericFailure()
		return out, err
	}
	out.Order = &o
	out.Refresh = true
	out.Message = &Message{Severity: SeverityInfo, Text: fmt.Sprintf("Added %s to incomplete orders", o.Name)}
	return out, nil
}

func errorMsg(text string) *Message {
	return &Message{Severity: SeverityError, Text: text}
}

func genericFailure() *Message {
	return errorMsg("Something went wrong. Please try again.")
}
