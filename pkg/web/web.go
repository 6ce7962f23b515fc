// Package web serves the order page, the JSON API and the swagger UI for a
// browser session identified by an anonymous cookie.
package web

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"mealorders/pkg/controller"
	"mealorders/pkg/logger"
	"mealorders/pkg/order"
	"mealorders/pkg/otel"
	"mealorders/pkg/session"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "session_id"

const lockStripes = 64

type sessionKey struct{}

// Server holds the dependencies shared by every request.
type Server struct {
	kv      session.Store
	lookup  controller.Lookup
	flights *controller.Flights
	locks   [lockStripes]sync.Mutex
	log     *logger.Logger
	tracer  trace.Tracer
	intn    func(n int) int
	secure  bool
}

// Option configures a Server.
type Option func(*Server)

// WithTracer sets the tracer injected into each request context.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithSecureCookie marks the session cookie Secure, for TLS deployments.
func WithSecureCookie(secure bool) Option {
	return func(s *Server) { s.secure = secure }
}

// WithIntn sets the random source used to pick a meal in random mode.
func WithIntn(intn func(n int) int) Option {
	return func(s *Server) { s.intn = intn }
}

// New builds a Server over the session key-value store and lookup client.
func New(kv session.Store, lookup controller.Lookup, log *logger.Logger, opts ...Option) *Server {
	s := &Server{
		kv:      kv,
		lookup:  lookup,
		flights: controller.NewFlights(),
		log:     log,
		intn:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router wires every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.traceMiddleware)
	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.sessionMiddleware)
	api.HandleFunc("/orders", s.listOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders", s.createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/complete", s.completeOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/views", s.viewsHandler).Methods(http.MethodGet)
	api.HandleFunc("/submit", s.apiSubmitHandler).Methods(http.MethodPost)
	api.HandleFunc("/meals", s.mealsHandler).Methods(http.MethodGet)

	page := r.PathPrefix("/").Subrouter()
	page.Use(s.sessionMiddleware)
	page.HandleFunc("/", s.pageHandler).Methods(http.MethodGet)
	page.HandleFunc("/submit", s.submitHandler).Methods(http.MethodPost)
	page.HandleFunc("/orders", s.pickHandler).Methods(http.MethodPost)
	page.HandleFunc("/orders/{id:[0-9]+}/complete", s.completeHandler).Methods(http.MethodPost)

	return r
}

func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.tracer != nil {
			ctx = otel.InjectTracing(ctx, s.tracer)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionMiddleware makes sure every request carries a session id. New
// ids are handed out in a cookie without an expiry, so the browser drops
// it when the session ends.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})
			s.log.Debug(r.Context(), "session started", "session", sid)
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}

// orders returns the order store of the request's session. Stores for the
// same session share a lock stripe.
func (s *Server) orders(ctx context.Context) (*order.Store, error) {
	sid := sessionID(ctx)
	kv, err := session.Namespace(s.kv, sid)
	if err != nil {
		return nil, err
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(sid))
	return order.NewStore(kv, order.WithLock(&s.locks[h.Sum32()%lockStripes])), nil
}

func (s *Server) controller(ctx context.Context, store *order.Store) *controller.Controller {
	return controller.New(store, s.lookup,
		controller.WithFlights(s.flights, sessionID(ctx)),
		controller.WithIntn(s.intn),
		controller.WithLogger(s.log),
	)
}

// healthHandler reports liveness.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
