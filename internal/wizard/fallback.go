package wizard

import "connectplus/pkg/types"

func FallbackRoles() []*types.Role {
	return []*types.Role{
		{ID: "mock-1", Name: "HE Lecturer", Description: "Teaching in higher education institutions", Icon: "BookOpen"},
		{ID: "mock-2", Name: "VET/TAFE Lecturer", Description: "Teaching in vocational education and training", Icon: "School"},
		{ID: "mock-3", Name: "Unit Coordinator", Description: "Coordinating and managing units of study", Icon: "Briefcase"},
		{ID: "mock-4", Name: "Professional Staff", Description: "Supporting teaching and learning activities", Icon: "Users"},
		{ID: "mock-5", Name: "New to Teaching", Description: "Recently started teaching roles", Icon: "GraduationCap"},
	}
}

func FallbackNeeds() []*types.Need {
	return []*types.Need{
		{ID: "mock-need-1", Name: "Teaching Resources", Description: "Materials and tools for teaching", Icon: "BookOpen", Roles: []string{"mock-1", "mock-2", "mock-5"}},
		{ID: "mock-need-2", Name: "Unit Development", Description: "Designing and developing units of study", Icon: "FileText", Roles: []string{"mock-1", "mock-3"}},
		{ID: "mock-need-3", Name: "Student Support", Description: "Helping students succeed", Icon: "Users", Roles: []string{"mock-1", "mock-2", "mock-4"}},
	}
}

func FallbackResources() []*types.Resource {
	return []*types.Resource{
		{
			ID:           "mock-resource-1",
			Title:        "Sample Resource",
			Description:  "This is a sample resource shown while the resource library is unavailable",
			URL:          "#",
			Icon:         "FileText",
			Roles:        []string{"HE Lecturer"},
			Needs:        []string{"Unit Development"},
			Tags:         []string{"mock", "sample"},
			UpdatedAt:    "2025-01-01",
			ResourceType: types.ResourceTypeGuide,
			ActionText:   types.DefaultActionText,
		},
	}
}
