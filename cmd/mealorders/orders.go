package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mealorders/pkg/controller"
	"mealorders/pkg/order"
	"mealorders/pkg/view"
)

func newSubmitCmd(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "submit <input...>",
		Short: "Complete an order by number or order a meal by ingredient",
		Long: `Submit one input the way the order box does.

A whole number completes that order. Anything else is searched as an
ingredient: in random mode one match is ordered, in choose mode the matches
are listed.`,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			out, err := a.ctrl.Submit(cmd.Context(), strings.Join(args, " "), controller.ParseMode(mode))
			return a.report(cmd.Context(), cmd.OutOrStdout(), out, err)
		}),
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(controller.ModeRandom), "What a search does: random or choose")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var pick int
	cmd := &cobra.Command{
		Use:   "search <ingredient...>",
		Short: "List meals with an ingredient, optionally ordering one",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			out, err := a.ctrl.Submit(ctx, strings.Join(args, " "), controller.ModeChoose)
			if err != nil || out.Path != controller.PathSearch || pick == 0 {
				return a.report(ctx, w, out, err)
			}
			if pick < 0 || pick > len(out.Choices) {
				return fmt.Errorf("--pick %d is out of range 1-%d", pick, len(out.Choices))
			}
			meal := out.Choices[pick-1]
			res, err := a.ctrl.Pick(ctx, meal.Name, meal.Thumb)
			return a.report(ctx, w, res, err)
		}),
	}
	cmd.Flags().IntVarP(&pick, "pick", "p", 0, "Order the Nth listed meal")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		status string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show orders",
		Long: `Show the orders of the session.

Examples:
  mealorders list                      # incomplete and completed orders
  mealorders list --status completed   # completed orders only
  mealorders list --json               # raw orders as JSON`,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			pred, err := statusPredicate(status)
			if err != nil {
				return err
			}
			orders, err := a.orders.List(cmd.Context(), pred)
			if err != nil {
				return fmt.Errorf("reading orders: %w", err)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(orders)
			}
			switch status {
			case "pending":
				return view.RenderPendingTerminal(w, view.BuildPending(orders))
			case "completed":
				done := view.BuildCompleted(orders)
				if !done.Visible {
					return view.RenderMessage(w, &controller.Message{Severity: controller.SeverityInfo, Text: "No completed orders"})
				}
				return view.RenderCompletedTerminal(w, done)
			default:
				return view.RenderTerminal(w, view.BuildPending(orders), view.BuildCompleted(orders))
			}
		}),
	}
	cmd.Flags().StringVarP(&status, "status", "s", "all", "Filter by status: pending, completed or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func statusPredicate(status string) (order.Predicate, error) {
	switch status {
	case "", "all":
		return order.All, nil
	case "pending":
		return order.Pending, nil
	case "completed":
		return order.Completed, nil
	default:
		return nil, fmt.Errorf("unknown status %q (want pending, completed or all)", status)
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an order complete",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid order number %q", args[0])
			}
			out, err := a.ctrl.Complete(cmd.Context(), id)
			return a.report(cmd.Context(), cmd.OutOrStdout(), out, err)
		}),
	}
}
