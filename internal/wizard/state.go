package wizard

import "slices"

type Step int

const (
	StepRoleSelection Step = iota + 1
	StepNeedSelection
	StepResourceList
)

func (s Step) String() string {
	switch s {
	case StepRoleSelection:
		return "role-selection"
	case StepNeedSelection:
		return "need-selection"
	case StepResourceList:
		return "resource-list"
	}
	return "unknown"
}

func clampStep(s Step) Step {
	return min(max(s, StepRoleSelection), StepResourceList)
}

// State tracks a visitor's walk through the discovery flow. The zero value
// is not ready for use; call NewState.
type State struct {
	Step          Step
	SelectedRoles []string
	SelectedNeeds []string
	SearchTerm    string
}

func NewState() *State {
	return &State{
		Step:          StepRoleSelection,
		SelectedRoles: []string{},
		SelectedNeeds: []string{},
	}
}

func (s *State) NextStep() {
	s.Step = clampStep(s.Step + 1)
}

func (s *State) PrevStep() {
	s.Step = clampStep(s.Step - 1)
}

func (s *State) SetStep(step Step) {
	s.Step = clampStep(step)
}

// ToggleRole adds or removes role. Any change to the role selection resets
// the selected needs, since the available needs depend on it.
func (s *State) ToggleRole(role string) {
	s.SelectedRoles = toggle(s.SelectedRoles, role)
	s.SelectedNeeds = []string{}
}

func (s *State) ToggleNeed(need string) {
	s.SelectedNeeds = toggle(s.SelectedNeeds, need)
}

func (s *State) SetSearchTerm(term string) {
	s.SearchTerm = term
}

func (s *State) ClearSelections() {
	s.SelectedRoles = []string{}
	s.SelectedNeeds = []string{}
	s.SearchTerm = ""
}

func toggle(values []string, value string) []string {
	if i := slices.Index(values, value); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), value)
}
