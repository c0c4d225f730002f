package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	a := NewAgent("PDFParser", RolePDF)
	b := NewAgent("RiskAnalyzer", RoleRisk)

	idA := r.Register(a)
	idB := r.Register(b)

	assert.NotEmpty(t, idA)
	assert.NotEmpty(t, idB)
	assert.NotEqual(t, idA, idB)

	got, err := r.Get(idA)
	assert.NoError(t, err)
	assert.Same(t, a, got)

	_, err = r.Get("missing")
	assert.EqualError(t, err, "agent not found: missing")
}

func TestRegistryAllInsertionOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"MainManager", "PDFParser", "OCRScanner", "RiskAnalyzer"}
	for _, n := range names {
		r.Register(NewAgent(n, RolePDF))
	}

	all := r.All()
	assert.Len(t, all, len(names))
	for i, a := range all {
		assert.Equal(t, names[i], a.Name)
	}
}

func TestAgentStatusTransitions(t *testing.T) {
	a := NewAgent("RiskAnalyzer", RoleRisk)
	assert.Equal(t, StatusIdle, a.Status())

	assert.True(t, a.TryAcquire())
	assert.Equal(t, StatusBusy, a.Status())
	assert.False(t, a.TryAcquire())

	a.Release()
	assert.Equal(t, StatusIdle, a.Status())
	assert.True(t, a.TryAcquire())
}

func TestManagerTeam(t *testing.T) {
	r := NewRegistry()
	m := NewManager("MainManager")
	r.Register(m.Agent)

	worker := NewAgent("Translator", RoleTranslation)
	r.Register(worker)
	m.AddTeamMember(worker)

	assert.Equal(t, []AgentID{worker.ID}, m.Team())
	assert.Equal(t, m.ID, worker.ManagerID)

	snap := m.Snapshot()
	assert.Equal(t, RoleManager, snap.Role)
	assert.Equal(t, []AgentID{worker.ID}, snap.Team)
}
