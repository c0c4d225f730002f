package agents

import (
	"sync"
)

// AgentID identifies a registered agent.
type AgentID string

// Role enum. The set is closed: the delegation router dispatches through an
// explicit handler table keyed by these values.
type Role string

const (
	RoleManager     Role = "manager"
	RolePDF         Role = "pdf"
	RoleOCR         Role = "ocr"
	RoleRisk        Role = "risk_analysis"
	RoleTranslation Role = "translation"
	RoleSpeech      Role = "speech"
)

// Status enum
type Status string

const (
	StatusIdle Status = "idle"
	StatusBusy Status = "busy"
)

// Agent is a role-tagged unit of work executing one task at a time. Status
// transitions go through TryAcquire/Release so that two concurrent requests
// can never both claim the same idle agent.
type Agent struct {
	ID        AgentID `json:"id"`
	Name      string  `json:"name"`
	Role      Role    `json:"role"`
	ManagerID AgentID `json:"manager_id,omitempty"`

	mu     sync.Mutex
	status Status
	memory []string
}

func NewAgent(name string, role Role) *Agent {
	return &Agent{Name: name, Role: role, status: StatusIdle}
}

// Status returns the current availability state.
func (a *Agent) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// TryAcquire atomically claims an idle agent, returning false when it is
// already busy.
func (a *Agent) TryAcquire() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusIdle {
		return false
	}
	a.status = StatusBusy
	return true
}

// Release returns the agent to idle.
func (a *Agent) Release() {
	a.mu.Lock()
	a.status = StatusIdle
	a.mu.Unlock()
}

// Record appends an event to the agent's activity log. The log is
// observability only; no control decision reads it.
func (a *Agent) Record(event string) {
	a.mu.Lock()
	a.memory = append(a.memory, event)
	a.mu.Unlock()
}

// Memory returns a copy of the activity log.
func (a *Agent) Memory() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.memory))
	copy(out, a.memory)
	return out
}

// Snapshot is the serializable view of an agent for the /agents endpoint.
type Snapshot struct {
	ID        AgentID  `json:"id"`
	Name      string   `json:"name"`
	Role      Role     `json:"role"`
	ManagerID AgentID  `json:"manager_id,omitempty"`
	Status    Status   `json:"status"`
	Memory    []string `json:"memory"`
	Team      []AgentID `json:"team,omitempty"`
}

func (a *Agent) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	mem := make([]string, len(a.memory))
	copy(mem, a.memory)
	return Snapshot{
		ID:        a.ID,
		Name:      a.Name,
		Role:      a.Role,
		ManagerID: a.ManagerID,
		Status:    a.status,
		Memory:    mem,
	}
}

// Manager is an agent that owns an ordered team. Team membership is set at
// initialization and not changed at runtime.
type Manager struct {
	*Agent
	team []AgentID
}

func NewManager(name string) *Manager {
	return &Manager{Agent: NewAgent(name, RoleManager)}
}

// AddTeamMember appends an agent to the manager's team and points the agent
// back at its supervisor.
func (m *Manager) AddTeamMember(a *Agent) {
	m.team = append(m.team, a.ID)
	a.ManagerID = m.ID
}

// Team returns the team member ids in insertion order.
func (m *Manager) Team() []AgentID {
	out := make([]AgentID, len(m.team))
	copy(out, m.team)
	return out
}

func (m *Manager) Snapshot() Snapshot {
	s := m.Agent.Snapshot()
	s.Team = m.Team()
	return s
}
