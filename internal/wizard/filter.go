package wizard

import (
	"slices"
	"strings"

	"connectplus/pkg/types"
)

// Filter returns the resources that match every active criterion. An empty
// roles or needs selection matches everything, as does an empty term.
func Filter(resources []*types.Resource, roles, needs []string, term string) []*types.Resource {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]*types.Resource, 0, len(resources))
	for _, resource := range resources {
		if len(roles) > 0 && !intersects(resource.Roles, roles) {
			continue
		}
		if len(needs) > 0 && !intersects(resource.Needs, needs) {
			continue
		}
		if term != "" && !matchesTerm(resource, term) {
			continue
		}
		out = append(out, resource)
	}

	return out
}

func (s *State) Filtered(resources []*types.Resource) []*types.Resource {
	return Filter(resources, s.SelectedRoles, s.SelectedNeeds, s.SearchTerm)
}

// AvailableNeeds returns the needs offered for the selected roles. Need role
// entries may hold either role ids or role names, so both are matched.
func AvailableNeeds(needs []*types.Need, roles []*types.Role, selectedRoles []string) []*types.Need {
	if len(selectedRoles) == 0 {
		return needs
	}

	keys := make(map[string]struct{}, len(selectedRoles)*2)
	for _, name := range selectedRoles {
		keys[name] = struct{}{}
	}
	for _, role := range roles {
		if _, ok := keys[role.Name]; ok {
			keys[role.ID] = struct{}{}
		}
	}

	out := make([]*types.Need, 0, len(needs))
	for _, need := range needs {
		for _, entry := range need.Roles {
			if _, ok := keys[entry]; ok {
				out = append(out, need)
				break
			}
		}
	}

	return out
}

func matchesTerm(resource *types.Resource, term string) bool {
	if strings.Contains(strings.ToLower(resource.Title), term) ||
		strings.Contains(strings.ToLower(resource.Description), term) {
		return true
	}

	return slices.ContainsFunc(resource.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}

func intersects(a, b []string) bool {
	return slices.ContainsFunc(a, func(v string) bool {
		return slices.Contains(b, v)
	})
}
