package service

import (
	"backoffice/internal/config"
	"backoffice/internal/model"
)

// TransitionPolicy decides which status moves the console offers and accepts.
type TransitionPolicy interface {
	// Available lists the statuses an order in current can be moved to, in lifecycle order.
	Available(current model.Status) []model.Status

	// Allowed reports whether from → to is accepted. from may be empty when the current status is unknown.
	Allowed(from, to model.Status) error

	Name() string
}

// NewTransitionPolicy returns the policy for a configured mode.
func NewTransitionPolicy(mode string) TransitionPolicy {
	if mode == config.TransitionStrict {
		return strictPolicy{}
	}
	return permissivePolicy{}
}

// permissivePolicy lets an operator set any status from any status.
type permissivePolicy struct{}

func (permissivePolicy) Name() string { return config.TransitionPermissive }

func (permissivePolicy) Available(current model.Status) []model.Status {
	out := make([]model.Status, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		if s != current {
			out = append(out, s)
		}
	}
	return out
}

func (permissivePolicy) Allowed(_, to model.Status) error {
	if !to.Valid() {
		return model.ErrInvalidStatus
	}
	return nil
}

// strictPolicy moves orders one lifecycle step forward, or out through cancellation.
// Delivered and cancelled orders are final.
type strictPolicy struct{}

func (strictPolicy) Name() string { return config.TransitionStrict }

func (strictPolicy) Available(current model.Status) []model.Status {
	if !current.Valid() || current.Terminal() {
		return []model.Status{}
	}

	out := make([]model.Status, 0, 2)
	if next := current.Rank() + 1; next < len(model.Statuses) && model.Statuses[next] != model.StatusCancelled {
		out = append(out, model.Statuses[next])
	}
	return append(out, model.StatusCancelled)
}

func (p strictPolicy) Allowed(from, to model.Status) error {
	if !to.Valid() {
		return model.ErrInvalidStatus
	}
	for _, s := range p.Available(from) {
		if s == to {
			return nil
		}
	}
	return model.ErrInvalidTransition
}

// actions renders the available moves as clickable labels.
func actions(policy TransitionPolicy, current model.Status) []model.Action {
	moves := policy.Available(current)
	out := make([]model.Action, 0, len(moves))
	for _, s := range moves {
		out = append(out, model.Action{Status: s, Label: s.Label()})
	}
	return out
}
