package agents

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
)

// TaskHandler is a role-specific task body. Handlers are synchronous and
// must treat the payload as read-only.
type TaskHandler func(ctx context.Context, payload any) (any, error)

// TaskResult is the in-band outcome of a delegation. Err is set either to an
// UnavailableError (no idle agent of the requested role) or to the captured
// task-body failure; the router never lets a failure escape otherwise.
type TaskResult struct {
	Value any
	Err   error
}

func (r TaskResult) Failed() bool { return r.Err != nil }

// UnavailableError reports that no idle agent of the requested role exists.
// Callers retry at the call-site; the router has no queue.
type UnavailableError struct {
	Role Role
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("No idle %s agent available", e.Role)
}

// Router assigns tasks to the first idle team member of the matching role.
// This is a placement policy, not a scheduler: worst case is one O(team)
// scan, acceptable with one agent per role.
type Router struct {
	registry *Registry
	handlers map[Role]TaskHandler
	logger   log.Logger
}

func NewRouter(registry *Registry, handlers map[Role]TaskHandler, logger log.Logger) *Router {
	return &Router{registry: registry, handlers: handlers, logger: logger}
}

// Delegate scans the manager's team in insertion order and hands the payload
// to the first idle agent of the requested role. The claim is atomic: under
// concurrent requests exactly one caller wins an idle agent.
func (rt *Router) Delegate(ctx context.Context, m *Manager, role Role, payload any) TaskResult {
	handler, ok := rt.handlers[role]
	if !ok {
		return TaskResult{Err: fmt.Errorf("no handler registered for role %s", role)}
	}

	for _, id := range m.Team() {
		agent, err := rt.registry.Get(id)
		if err != nil || agent.Role != role {
			continue
		}
		if !agent.TryAcquire() {
			continue
		}

		agent.Record(fmt.Sprintf("Assigned: %s", role))
		value, err := rt.invoke(ctx, handler, payload)
		agent.Record(fmt.Sprintf("Completed: %s", role))
		agent.Release()

		if err != nil {
			rt.logger.Error().Err(err).
				Str("agent", agent.Name).
				Str("role", string(role)).
				Msg("agent task failed")
			return TaskResult{Err: fmt.Errorf("Error: %w", err)}
		}
		m.Record(fmt.Sprintf("Delegated '%s' to %s", role, agent.Name))
		return TaskResult{Value: value}
	}

	return TaskResult{Err: &UnavailableError{Role: role}}
}

// invoke runs the handler and converts a panic into an in-band failure.
func (rt *Router) invoke(ctx context.Context, handler TaskHandler, payload any) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panicked: %v", rec)
		}
	}()
	return handler(ctx, payload)
}
