// Package view derives the pending and completed order views from a store
// snapshot and renders them as HTML or terminal text. Every render is a
// full re-render; nothing is diffed.
package view

import (
	"fmt"

	"mealorders/pkg/controller"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/order"
)

// PendingPlaceholder is shown instead of an empty pending list.
const PendingPlaceholder = "No incomplete orders"

// Row is one order line.
type Row struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	// CompleteURL is the target of the row's complete control. It is empty
	// for completed rows, which are read-only.
	CompleteURL string `json:"completeUrl,omitempty"`
}

// Pending is the view of orders still to be made.
type Pending struct {
	Rows        []Row  `json:"rows"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Completed is the view of finished orders. When Visible is false the
// whole section, heading included, is left out.
type Completed struct {
	Rows    []Row `json:"rows"`
	Visible bool  `json:"visible"`
}

// BuildPending makes the pending view from orders that are not completed.
func BuildPending(orders []order.Order) Pending {
	v := Pending{Rows: make([]Row, 0, len(orders))}
	for _, o := range orders {
		if o.Completed {
			continue
		}
		v.Rows = append(v.Rows, Row{
			ID:          o.ID,
			Name:        o.Name,
			Image:       o.Image,
			CompleteURL: CompleteURL(o.ID),
		})
	}
	if len(v.Rows) == 0 {
		v.Placeholder = PendingPlaceholder
	}
	return v
}

// BuildCompleted makes the completed view from completed orders.
func BuildCompleted(orders []order.Order) Completed {
	v := Completed{Rows: make([]Row, 0, len(orders))}
	for _, o := range orders {
		if !o.Completed {
			continue
		}
		v.Rows = append(v.Rows, Row{ID: o.ID, Name: o.Name, Image: o.Image})
	}
	v.Visible = len(v.Rows) > 0
	return v
}

// CompleteURL is the form action that completes order id.
func CompleteURL(id int) string {
	return fmt.Sprintf("/orders/%d/complete", id)
}

// Page is everything the HTML page shows.
type Page struct {
	Title     string
	Message   *controller.Message
	Mode      controller.Mode
	Pending   Pending
	Completed Completed
	// Choices, when non-empty, opens the selection dialog.
	Choices     []mealdb.Meal
	ChoiceToken string
}
