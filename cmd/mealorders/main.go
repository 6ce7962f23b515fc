// Command mealorders searches meals by ingredient and tracks them as orders
// from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mealorders/pkg/config"
	"mealorders/pkg/controller"
	"mealorders/pkg/logger"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/order"
	"mealorders/pkg/otel"
	"mealorders/pkg/session"
	"mealorders/pkg/session/backend"
	"mealorders/pkg/view"
)

// errReported means the failure was already shown to the user as a status
// message. main only sets the exit code for it.
var errReported = errors.New("reported")

type deps struct {
	openStore func(ctx context.Context, cfg config.Config) (session.Store, func(), error)
	newLookup func(cfg config.Config, log *logger.Logger) controller.Lookup
	intn      func(n int) int
}

func defaultDeps() deps {
	return deps{
		openStore: backend.Open,
		newLookup: func(cfg config.Config, log *logger.Logger) controller.Lookup {
			return mealdb.New(cfg.MealDBBaseURL, cfg.MealDBTimeout, mealdb.WithLogger(log))
		},
	}
}

type app struct {
	deps    deps
	session string
	backend string

	log    *logger.Logger
	orders *order.Store
	ctrl   *controller.Controller
	closer func()
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{deps: d}

	root := &cobra.Command{
		Use:   "mealorders",
		Short: "Order meals by ingredient and track them until they are done",
		Long: `mealorders searches TheMealDB by ingredient and keeps the picked meals as orders.

Input that is a whole number completes that order; anything else is searched
as an ingredient. Orders live in the session store named by --session.

Examples:
  mealorders submit chicken breast     # order a random chicken breast meal
  mealorders submit 3                  # complete order 3
  mealorders search beef               # list beef meals
  mealorders search beef --pick 2      # order the second one
  mealorders list --status pending     # show incomplete orders
  mealorders shell                     # interactive mode, Enter submits`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.session, "session", "cli", "Session whose orders are used")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Session store backend (memory, redis, postgres); overrides SESSION_BACKEND")

	root.AddCommand(
		newSubmitCmd(a),
		newSearchCmd(a),
		newListCmd(a),
		newCompleteCmd(a),
		newShellCmd(a),
	)
	return root
}

// run opens the session store around fn and releases it afterwards.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd); err != nil {
			return err
		}
		defer a.closer()
		return fn(cmd, args)
	}
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.backend != "" {
		cfg.SessionBackend = strings.ToLower(a.backend)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.log = logger.New(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel), "mealorders-cli", otel.GetTraceID)

	kv, closeKV, err := a.deps.openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening %s session store: %w", cfg.SessionBackend, err)
	}
	ns, err := session.Namespace(kv, a.session)
	if err != nil {
		closeKV()
		return err
	}

	a.orders = order.NewStore(ns)
	opts := []controller.Option{controller.WithLogger(a.log)}
	if a.deps.intn != nil {
		opts = append(opts, controller.WithIntn(a.deps.intn))
	}
	a.ctrl = controller.New(a.orders, a.deps.newLookup(cfg, a.log), opts...)
	a.closer = func() {
		closeKV()
		_ = a.log.Sync()
	}
	return nil
}

// report shows an outcome and turns a classified failure into errReported.
func (a *app) report(ctx context.Context, w io.Writer, out controller.Outcome, err error) error {
	if showErr := a.show(ctx, w, out); showErr != nil {
		return showErr
	}
	if err != nil {
		return errReported
	}
	return nil
}

func (a *app) show(ctx context.Context, w io.Writer, out controller.Outcome) error {
	if err := view.RenderMessage(w, out.Message); err != nil {
		return err
	}
	if len(out.Choices) > 0 {
		if err := view.RenderChoices(w, out.Token, out.Choices); err != nil {
			return err
		}
	}
	if !out.Refresh {
		return nil
	}
	return a.showViews(ctx, w)
}

func (a *app) showViews(ctx context.Context, w io.Writer) error {
	pending, completed, err := a.orders.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("reading orders: %w", err)
	}
	return view.RenderTerminal(w, view.BuildPending(pending), view.BuildCompleted(completed))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, view.MessageStyle(controller.SeverityError).Render("Error: "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}
