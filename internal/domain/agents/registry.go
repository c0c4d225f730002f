package agents

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry is the process-wide store of agent records. It is constructed at
// startup and passed by reference; there is no package-level instance.
// Agents are never removed during the process lifetime.
type Registry struct {
	mu    sync.RWMutex
	byID  map[AgentID]*Agent
	order []AgentID
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[AgentID]*Agent)}
}

// Register assigns a fresh unique id and inserts the agent.
func (r *Registry) Register(a *Agent) AgentID {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = AgentID(uuid.New().String())
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return a.ID
}

// Get looks up an agent by id.
func (r *Registry) Get(id AgentID) (*Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("agent not found: %s", id)
	}
	return a, nil
}

// All returns every registered agent in insertion order.
func (r *Registry) All() []*Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Agent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
