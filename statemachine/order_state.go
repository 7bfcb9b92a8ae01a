package statemachine

import (
	"fmt"
	"strings"

	"restaurant-admin/models"
)

// Policy decides whether an order may move from one status to another
type Policy string

const (
	// Permissive accepts any known status regardless of the current one
	Permissive Policy = "permissive"
	// Forward only lets orders advance through the kitchen lifecycle
	Forward Policy = "forward"
)

// Transition defines a forward state change
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// forwardTransitions is the lifecycle enforced by the Forward policy
var forwardTransitions = []Transition{
	// Kitchen starts preparing
	{From: models.StatusOrdered, To: models.StatusInProcess},
	// Counter orders can be handed over straight away
	{From: models.StatusOrdered, To: models.StatusDelivered},
	{From: models.StatusInProcess, To: models.StatusDelivered},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range forwardTransitions {
		m[t] = true
	}
	return m
}()

// ParsePolicy maps the strict flag from configuration to a policy
func ParsePolicy(strict bool) Policy {
	if strict {
		return Forward
	}
	return Permissive
}

// ValidTransitionsFrom returns all valid next states from a given state
func (p Policy) ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	if p != Forward {
		return append([]models.OrderStatus(nil), models.OrderStatuses...)
	}
	nexts := []models.OrderStatus{}
	for _, t := range forwardTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether the policy allows from → to. Rewriting the
// current status is always allowed.
func (p Policy) CanTransition(from, to models.OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown order status %q", to)
	}
	if p != Forward || from == to || transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed. Valid transitions from %s are: %s",
		from, to, from, describeValidFrom(p, from))
}

func describeValidFrom(p Policy, status models.OrderStatus) string {
	nexts := p.ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the forward lifecycle for documentation
func GetAllTransitions() []Transition {
	return forwardTransitions
}
