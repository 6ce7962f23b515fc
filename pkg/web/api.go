package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mealorders/pkg/controller"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/order"
	"mealorders/pkg/otel"
	"mealorders/pkg/view"
)

// createOrderRequest is a manual pick from a search result.
type createOrderRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// submitRequest is the JSON form of the text input.
type submitRequest struct {
	Input string `json:"input"`
	Mode  string `json:"mode"`
}

// submitResponse carries the outcome and both refreshed views.
type submitResponse struct {
	controller.Outcome
	Pending   view.Pending   `json:"pending"`
	Completed view.Completed `json:"completed"`
}

// viewsResponse holds both order views.
type viewsResponse struct {
	Pending   view.Pending   `json:"pending"`
	Completed view.Completed `json:"completed"`
}

// mealsResponse lists search results for manual selection.
type mealsResponse struct {
	Token string        `json:"token"`
	Meals []mealdb.Meal `json:"meals"`
}

type errorResponse struct {
	Error   string              `json:"error"`
	Message *controller.Message `json:"message,omitempty"`
}

// listOrdersHandler lists the session's orders.
// @Summary List orders
// @Produce json
// @Param status query string false "pending, completed or all" Enums(pending, completed, all)
// @Success 200 {array} order.Order
// @Router /api/orders [get]
func (s *Server) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	var p order.Predicate
	switch r.URL.Query().Get("status") {
	case "", "all":
		p = order.All
	case "pending":
		p = order.Pending
	case "completed":
		p = order.Completed
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status must be pending, completed or all"})
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.failJSON(w, r, "list orders", err)
		return
	}
	orders, err := store.List(ctx, p)
	if err != nil {
		s.failJSON(w, r, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// createOrderHandler orders a meal picked from search results.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Picked meal"
// @Success 201 {object} controller.Outcome
// @Failure 400 {object} errorResponse
// @Router /api/orders [post]
func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.failJSON(w, r, "create order", err)
		return
	}
	out, err := s.controller(ctx, store).Pick(ctx, req.Name, req.Image)
	if err != nil {
		writeOutcomeError(w, out, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// completeOrderHandler marks an order complete.
// @Summary Complete order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} controller.Outcome
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/orders/{id}/complete [post]
func (s *Server) completeOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "completeOrderHandler")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.failJSON(w, r, "complete order", err)
		return
	}
	out, err := s.controller(ctx, store).Complete(ctx, id)
	if err != nil {
		writeOutcomeError(w, out, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// viewsHandler returns the pending and completed views.
// @Summary Order views
// @Produce json
// @Success 200 {object} viewsResponse
// @Router /api/views [get]
func (s *Server) viewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "viewsHandler")
	defer span.End()

	store, err := s.orders(ctx)
	if err != nil {
		s.failJSON(w, r, "views", err)
		return
	}
	pending, completed, err := store.Snapshot(ctx)
	if err != nil {
		s.failJSON(w, r, "views", err)
		return
	}
	writeJSON(w, http.StatusOK, viewsResponse{
		Pending:   view.BuildPending(pending),
		Completed: view.BuildCompleted(completed),
	})
}

// apiSubmitHandler handles the text input: an order number completes that
// order, anything else searches by ingredient.
// @Summary Submit input
// @Accept json
// @Produce json
// @Param input body submitRequest true "Input"
// @Success 200 {object} submitResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/submit [post]
func (s *Server) apiSubmitHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "apiSubmitHandler")
	defer span.End()

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.failJSON(w, r, "submit", err)
		return
	}
	out, err := s.controller(ctx, store).Submit(ctx, req.Input, controller.ParseMode(req.Mode))
	if err != nil {
		writeOutcomeError(w, out, err)
		return
	}
	pending, completed, err := store.Snapshot(ctx)
	if err != nil {
		s.failJSON(w, r, "submit", err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Outcome:   out,
		Pending:   view.BuildPending(pending),
		Completed: view.BuildCompleted(completed),
	})
}

// mealsHandler searches meals by ingredient without ordering anything.
// @Summary Search meals
// @Produce json
// @Param i query string true "Ingredient"
// @Success 200 {object} mealsResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/meals [get]
func (s *Server) mealsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "mealsHandler")
	defer span.End()

	token := controller.Normalize(r.URL.Query().Get("i"))
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Please enter an ingredient first."})
		return
	}
	meals, err := s.lookup.FilterByIngredient(ctx, token)
	switch {
	case errors.Is(err, mealdb.ErrNoMeals):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "No meals found for '" + token + "'."})
		return
	case err != nil:
		s.log.Warn(ctx, "search meals", "token", token, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Something went wrong. Please try again."})
		return
	}
	writeJSON(w, http.StatusOK, mealsResponse{Token: token, Meals: meals})
}

// statusFor maps a classified controller error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, controller.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound), errors.Is(err, mealdb.ErrNoMeals):
		return http.StatusNotFound
	case errors.Is(err, order.ErrAlreadyComplete), errors.Is(err, controller.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, mealdb.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeOutcomeError(w http.ResponseWriter, out controller.Outcome, err error) {
	text := err.Error()
	if out.Message != nil {
		text = out.Message.Text
	}
	writeJSON(w, statusFor(err), errorResponse{Error: text, Message: out.Message})
}

func (s *Server) failJSON(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error(r.Context(), op, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Something went wrong. Please try again."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
