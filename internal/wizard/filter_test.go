package wizard

import (
	"context"
	"errors"
	"testing"

	"connectplus/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func library() []*types.Resource {
	return []*types.Resource{
		{ID: "r1", Title: "Assessment Rubrics", Description: "Designing rubrics", Roles: []string{"HE Lecturer"}, Needs: []string{"Unit Development"}, Tags: []string{"assessment"}},
		{ID: "r2", Title: "Student Wellbeing", Description: "Support services", Roles: []string{"Professional Staff"}, Needs: []string{"Student Support"}, Tags: []string{"wellbeing"}},
		{ID: "r3", Title: "First Lecture", Description: "Getting started", Roles: []string{"New to Teaching", "HE Lecturer"}, Needs: []string{"Teaching Resources"}, Tags: []string{"Onboarding"}},
		{ID: "r4", Title: "Untagged", Description: "No audience"},
	}
}

func ids(resources []*types.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		needs []string
		term  string
		want  []string
	}{
		{name: "no criteria", want: []string{"r1", "r2", "r3", "r4"}},
		{name: "role", roles: []string{"HE Lecturer"}, want: []string{"r1", "r3"}},
		{name: "role and need", roles: []string{"HE Lecturer"}, needs: []string{"Teaching Resources"}, want: []string{"r3"}},
		{name: "need only", needs: []string{"Student Support"}, want: []string{"r2"}},
		{name: "term in title", term: "RUBRIC", want: []string{"r1"}},
		{name: "term in description", term: "services", want: []string{"r2"}},
		{name: "term in tag", term: "onboard", want: []string{"r3"}},
		{name: "no match", roles: []string{"Unit Coordinator"}, want: []string{}},
		{name: "term and role disagree", roles: []string{"Professional Staff"}, term: "rubric", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(library(), tt.roles, tt.needs, tt.term)))
		})
	}
}

func TestFilterResultIsSubsetMatchingEveryCriterion(t *testing.T) {
	resources := library()
	roles := []string{"HE Lecturer", "Professional Staff"}
	needs := []string{"Unit Development", "Student Support"}

	got := Filter(resources, roles, needs, "")
	for _, r := range got {
		assert.True(t, intersects(r.Roles, roles))
		assert.True(t, intersects(r.Needs, needs))
	}
	assert.Subset(t, ids(resources), ids(got))
	assert.Equal(t, []string{"r1", "r2"}, ids(got))
}

func TestStateFiltered(t *testing.T) {
	s := NewState()
	s.ToggleRole("HE Lecturer")
	s.SetSearchTerm("first")

	assert.Equal(t, []string{"r3"}, ids(s.Filtered(library())))
}

func TestAvailableNeeds(t *testing.T) {
	roles := FallbackRoles()
	needs := append(FallbackNeeds(), &types.Need{ID: "legacy", Name: "Legacy", Roles: []string{"Unit Coordinator"}})

	names := func(needs []*types.Need) []string {
		out := []string{}
		for _, n := range needs {
			out = append(out, n.Name)
		}
		return out
	}

	assert.Len(t, AvailableNeeds(needs, roles, nil), 4)
	assert.Equal(t, []string{"Teaching Resources", "Student Support"}, names(AvailableNeeds(needs, roles, []string{"VET/TAFE Lecturer"})))
	assert.Equal(t, []string{"Unit Development", "Legacy"}, names(AvailableNeeds(needs, roles, []string{"Unit Coordinator"})))
	assert.Empty(t, AvailableNeeds(needs, roles, []string{"Nobody"}))
}

type fakeSource struct {
	err error
}

func (f *fakeSource) Resources(context.Context) ([]*types.Resource, error) {
	return library(), f.err
}

func (f *fakeSource) Roles(context.Context) ([]*types.Role, error) {
	return FallbackRoles(), nil
}

func (f *fakeSource) Needs(context.Context) ([]*types.Need, error) {
	return FallbackNeeds(), nil
}

func TestLoad(t *testing.T) {
	logger, hook := test.NewNullLogger()

	data := Load(context.Background(), &fakeSource{}, logger)
	assert.False(t, data.Fallback)
	assert.Len(t, data.Resources, 4)
	assert.Empty(t, hook.Entries)

	data = Load(context.Background(), &fakeSource{err: errors.New("database is locked")}, logger)
	require.True(t, data.Fallback)
	assert.Equal(t, FallbackResources(), data.Resources)
	assert.Len(t, data.Roles, 5)
	assert.Len(t, data.Needs, 3)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
}
