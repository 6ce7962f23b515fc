package web

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mealorders/pkg/controller"
	"mealorders/pkg/order"
	"mealorders/pkg/otel"
	"mealorders/pkg/view"
)

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "pageHandler")
	defer span.End()

	store, err := s.orders(ctx)
	if err != nil {
		s.fail(ctx, w, "page", err)
		return
	}
	s.renderPage(ctx, w, store, controller.ModeRandom, controller.Outcome{})
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "submitHandler")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.fail(ctx, w, "submit", err)
		return
	}
	mode := controller.ParseMode(r.PostForm.Get("mode"))
	out, err := s.controller(ctx, store).Submit(ctx, r.PostForm.Get("input"), mode)
	if err != nil {
		s.log.Info(ctx, "submit", "path", out.Path, "token", out.Token, "error", err)
	}
	s.renderPage(ctx, w, store, mode, out)
}

func (s *Server) pickHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "pickHandler")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.fail(ctx, w, "pick", err)
		return
	}
	out, err := s.controller(ctx, store).Pick(ctx, r.PostForm.Get("name"), r.PostForm.Get("image"))
	if err != nil {
		s.log.Info(ctx, "pick", "error", err)
	}
	s.renderPage(ctx, w, store, controller.ModeChoose, out)
}

func (s *Server) completeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "completeHandler")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	store, err := s.orders(ctx)
	if err != nil {
		s.fail(ctx, w, "complete", err)
		return
	}
	out, err := s.controller(ctx, store).Complete(ctx, id)
	if err != nil {
		s.log.Info(ctx, "complete", "id", id, "error", err)
	}
	s.renderPage(ctx, w, store, controller.ModeRandom, out)
}

// renderPage re-reads the store and renders both views along with the
// outcome's message and choices.
func (s *Server) renderPage(ctx context.Context, w http.ResponseWriter, store *order.Store, mode controller.Mode, out controller.Outcome) {
	pending, completed, err := store.Snapshot(ctx)
	if err != nil {
		s.fail(ctx, w, "snapshot", err)
		return
	}
	var buf bytes.Buffer
	err = view.RenderPage(&buf, view.Page{
		Message:     out.Message,
		Mode:        mode,
		Pending:     view.BuildPending(pending),
		Completed:   view.BuildCompleted(completed),
		Choices:     out.Choices,
		ChoiceToken: out.Token,
	})
	if err != nil {
		s.fail(ctx, w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	s.log.Error(ctx, op, "error", err)
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}
