package dashboard

import (
	"slices"
	"strings"

	"connectplus/pkg/types"
)

const (
	RecentLimit   = 5
	Uncategorized = "Uncategorized"
)

type Summary struct {
	TotalResources  int               `json:"totalResources"`
	TotalRoles      int               `json:"totalRoles"`
	TotalNeeds      int               `json:"totalNeeds"`
	Featured        int               `json:"featured"`
	ByType          map[string]int    `json:"byType"`
	ByRole          map[string]int    `json:"byRole"`
	ByNeed          map[string]int    `json:"byNeed"`
	RecentlyUpdated []*types.Resource `json:"recentlyUpdated"`
}

// Compute builds the admin overview. Resource role and need entries are
// resolved from ids to names where they match a known record, so counts
// line up whichever form a row was saved with.
func Compute(resources []*types.Resource, roles []*types.Role, needs []*types.Need) *Summary {
	s := &Summary{
		TotalResources: len(resources),
		TotalRoles:     len(roles),
		TotalNeeds:     len(needs),
		ByType:         map[string]int{},
		ByRole:         map[string]int{},
		ByNeed:         map[string]int{},
	}

	roleNames := make(map[string]string, len(roles))
	for _, role := range roles {
		roleNames[role.ID] = role.Name
		s.ByRole[role.Name] = 0
	}

	needNames := make(map[string]string, len(needs))
	for _, need := range needs {
		needNames[need.ID] = need.Name
		s.ByNeed[need.Name] = 0
	}

	for _, resource := range resources {
		if resource.Featured {
			s.Featured++
		}

		kind := strings.TrimSpace(resource.ResourceType)
		if kind == "" {
			kind = Uncategorized
		}
		s.ByType[kind]++

		for _, entry := range dedupe(resource.Roles, roleNames) {
			s.ByRole[entry]++
		}
		for _, entry := range dedupe(resource.Needs, needNames) {
			s.ByNeed[entry]++
		}
	}

	recent := slices.Clone(resources)
	slices.SortStableFunc(recent, func(a, b *types.Resource) int {
		return strings.Compare(b.UpdatedAt, a.UpdatedAt)
	})
	s.RecentlyUpdated = recent[:min(RecentLimit, len(recent))]

	return s
}

func dedupe(entries []string, names map[string]string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := names[entry]; ok {
			entry = name
		}
		if !slices.Contains(out, entry) {
			out = append(out, entry)
		}
	}
	return out
}
