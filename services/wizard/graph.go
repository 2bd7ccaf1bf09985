package wizard

import (
	"fmt"

	"tutorhub/models"
)

// StepGraph is the ordered sequence of screens for one role. Transitions only
// ever move one node forward or backward; anything else is unreachable by
// construction.
type StepGraph struct {
	role     string
	nodes    []models.WizardStep
	followUp models.WizardStep
	index    map[models.WizardStep]int
}

// NewStepGraph builds a graph and rejects malformed definitions (too few
// nodes, duplicates, a follow-up that is also a node) at construction time.
func NewStepGraph(role string, followUp models.WizardStep, nodes ...models.WizardStep) (*StepGraph, error) {
	if role == "" {
		return nil, fmt.Errorf("step graph requires a role")
	}
	if len(nodes) < 2 {
		return nil, fmt.Errorf("step graph for role %q needs at least two nodes", role)
	}
	if followUp == "" {
		return nil, fmt.Errorf("step graph for role %q needs a follow-up step", role)
	}
	index := make(map[models.WizardStep]int, len(nodes))
	for i, n := range nodes {
		if n == "" {
			return nil, fmt.Errorf("step graph for role %q contains an empty node", role)
		}
		if _, dup := index[n]; dup {
			return nil, fmt.Errorf("step graph for role %q contains duplicate node %q", role, n)
		}
		if n == followUp {
			return nil, fmt.Errorf("step graph for role %q uses follow-up %q as a node", role, n)
		}
		index[n] = i
	}
	return &StepGraph{role: role, nodes: nodes, followUp: followUp, index: index}, nil
}

// First returns the entry node of the graph.
func (g *StepGraph) First() models.WizardStep {
	return g.nodes[0]
}

// Terminal returns the last data step, the only one submission is reachable from.
func (g *StepGraph) Terminal() models.WizardStep {
	return g.nodes[len(g.nodes)-1]
}

// FollowUp returns the post-submission step (onboarding screen or dashboard redirect).
func (g *StepGraph) FollowUp() models.WizardStep {
	return g.followUp
}

// Contains reports whether the step is a node of this graph.
func (g *StepGraph) Contains(step models.WizardStep) bool {
	_, ok := g.index[step]
	return ok
}

// Next returns the node after step. ok is false at the terminal node or for
// steps outside the graph.
func (g *StepGraph) Next(step models.WizardStep) (models.WizardStep, bool) {
	i, ok := g.index[step]
	if !ok || i+1 >= len(g.nodes) {
		return "", false
	}
	return g.nodes[i+1], true
}

// Prev returns the node before step. ok is false at the first node or for
// steps outside the graph.
func (g *StepGraph) Prev(step models.WizardStep) (models.WizardStep, bool) {
	i, ok := g.index[step]
	if !ok || i == 0 {
		return "", false
	}
	return g.nodes[i-1], true
}

// Nodes returns the ordered node list.
func (g *StepGraph) Nodes() []models.WizardStep {
	out := make([]models.WizardStep, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// BuildGraphs constructs the per-role step graphs. The parent flow shares the
// student graph; the additional-info step simply collects child fields there.
// The student-teacher / professional-teacher fork shares the teacher node
// sequence and only selects the variant tag carried into the final payload.
func BuildGraphs() (map[string]*StepGraph, error) {
	studentGraph, err := NewStepGraph(models.RoleStudent, models.StepOnboarding,
		models.StepWelcome,
		models.StepBasicInfo,
		models.StepAdditionalInfo,
		models.StepPassword,
	)
	if err != nil {
		return nil, err
	}
	teacherGraph, err := NewStepGraph(models.RoleTeacher, models.StepTeacherDashboard,
		models.StepTeacherType,
		models.StepTeacherBasicInfo,
		models.StepTeacherSubjects,
		models.StepTeacherContact,
		models.StepTeacherStripe,
		models.StepTeacherPassword,
	)
	if err != nil {
		return nil, err
	}
	return map[string]*StepGraph{
		models.RoleStudent: studentGraph,
		models.RoleParent:  studentGraph,
		models.RoleTeacher: teacherGraph,
	}, nil
}

var defaultGraphs = mustBuildGraphs()

func mustBuildGraphs() map[string]*StepGraph {
	graphs, err := BuildGraphs()
	if err != nil {
		panic(err)
	}
	return graphs
}

// GraphForRole returns the step graph for a role.
func GraphForRole(role string) (*StepGraph, error) {
	g, ok := defaultGraphs[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return g, nil
}
