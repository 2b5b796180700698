// Package registry keeps the action factories known to the executor and
// dispatches action nodes to them.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/dealflow/dealflow/pkg/protocol"
)

type Registry struct {
	logger          *slog.Logger
	mu              sync.RWMutex
	actionFactories map[string]protocol.ActionFactory
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:          log,
		actionFactories: make(map[string]protocol.ActionFactory),
	}
}

// RegisterAction adds a factory under its ID. A later registration with the same ID replaces the earlier one.
func (r *Registry) RegisterAction(actionFactory protocol.ActionFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actionFactories[actionFactory.ID()] = actionFactory
	r.logger.Debug("Registered action", "action_type", actionFactory.ID())
}

// HealthCheck reports whether any action is registered.
func (r *Registry) HealthCheck() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.actionFactories) == 0 {
		return "No actions registered", false
	}

	return fmt.Sprintf("%d actions registered", len(r.actionFactories)), true
}

// IsActionRegistered checks if an action type is registered.
func (r *Registry) IsActionRegistered(actionType string) bool {
	_, ok := r.factory(actionType)

	return ok
}

// GetAvailableActions returns all registered action factories sorted by ID.
func (r *Registry) GetAvailableActions() []protocol.ActionFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factories := make([]protocol.ActionFactory, 0, len(r.actionFactories))
	for _, factory := range r.actionFactories {
		factories = append(factories, factory)
	}

	slices.SortFunc(factories, func(a, b protocol.ActionFactory) int {
		return strings.Compare(a.ID(), b.ID())
	})

	return factories
}

// CreateAction builds an action of the given type from its node configuration.
func (r *Registry) CreateAction(ctx context.Context, actionType string, config map[string]any) (protocol.Action, error) {
	factory, ok := r.factory(actionType)
	if !ok {
		return nil, fmt.Errorf("action type '%s' not registered", actionType)
	}

	return factory.Create(ctx, config)
}

func (r *Registry) factory(actionType string) (protocol.ActionFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.actionFactories[actionType]

	return factory, ok
}
