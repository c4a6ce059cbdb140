package transfer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"connectplus/internal/auth"
	"connectplus/internal/db"
	"connectplus/internal/store"
	"connectplus/pkg/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	resources *store.ResourceRepository
	roles     *store.RoleRepository
	needs     *store.NeedRepository
	users     *store.UserRepository
	gate      *auth.Gate
	importer  *Importer
	exporter  *Exporter
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.Open(context.Background(), db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f := &fixture{
		resources: store.NewResourceRepository(conn),
		roles:     store.NewRoleRepository(conn),
		needs:     store.NewNeedRepository(conn),
		users:     store.NewUserRepository(conn),
	}

	f.gate, err = auth.NewGate(f.users, bcrypt.MinCost)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	f.importer = NewImporter(f.resources, f.roles, f.needs, f.users, f.gate, logger)
	f.exporter = NewExporter(f.resources, f.roles, f.needs, f.users)

	return f
}

func importJSON(t *testing.T, f *fixture, kind types.TransferType, data string, overwrite bool) *types.ImportResults {
	t.Helper()

	results, err := f.importer.Import(context.Background(), &types.ImportRequest{
		Type:      kind,
		Data:      json.RawMessage(data),
		Overwrite: overwrite,
	})
	require.NoError(t, err)
	return results
}

func TestImportRequestValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.importer.Import(ctx, &types.ImportRequest{Type: types.TransferRoles})
	assert.ErrorIs(t, err, ErrMissingImportData)

	_, err = f.importer.Import(ctx, &types.ImportRequest{Data: json.RawMessage(`[]`)})
	assert.ErrorIs(t, err, ErrMissingImportData)

	_, err = f.importer.Import(ctx, &types.ImportRequest{Type: "widgets", Data: json.RawMessage(`[]`)})
	assert.ErrorIs(t, err, ErrInvalidImportType)
}

func TestImportRoles(t *testing.T) {
	f := setup(t)

	results := importJSON(t, f, types.TransferRoles, `[
		{"id": "r1", "name": "HE Lecturer"},
		{"name": "Unit Coordinator", "icon": "Briefcase"},
		{"description": "nameless"}
	]`, false)

	assert.Equal(t, 2, results.Created)
	assert.Equal(t, []string{"Created role: HE Lecturer", "Created role: Unit Coordinator"}, results.Details)
	assert.Equal(t, []string{"Invalid role data: missing name"}, results.Errors)

	role, err := f.roles.Role(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "HE Lecturer", role.Name)
}

func TestImportExistingRecordsHonourOverwrite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.roles.CreateRole(ctx, &types.Role{ID: "r1", Name: "HE Lecturer"})
	require.NoError(t, err)

	data := `[{"id": "r1", "name": "Higher Education Lecturer"}]`

	results := importJSON(t, f, types.TransferRoles, data, false)
	assert.Equal(t, 1, results.Skipped)
	assert.Zero(t, results.Updated)
	assert.Equal(t, []string{"Skipped existing role: Higher Education Lecturer"}, results.Details)

	role, err := f.roles.Role(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "HE Lecturer", role.Name)

	results = importJSON(t, f, types.TransferRoles, data, true)
	assert.Equal(t, 1, results.Updated)
	assert.Zero(t, results.Skipped)

	role, err = f.roles.Role(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Higher Education Lecturer", role.Name)
}

func TestImportResources(t *testing.T) {
	f := setup(t)

	results := importJSON(t, f, types.TransferResources, `[
		{"id": "res1", "title": "Rubrics", "description": "d", "url": "https://example.com", "resourceType": "Guide", "roles": "[\"HE Lecturer\"]", "tags": "assessment"},
		{"title": "Missing url", "description": "d", "resourceType": "Guide"}
	]`, false)

	assert.Equal(t, 1, results.Created)
	assert.Equal(t, []string{"Invalid resource data: missing required fields"}, results.Errors)

	resource, err := f.resources.Resource(context.Background(), "res1")
	require.NoError(t, err)
	assert.Equal(t, []string{"HE Lecturer"}, resource.Roles)
	assert.Equal(t, []string{"assessment"}, resource.Tags)
	assert.Equal(t, []string{}, resource.Needs)
	assert.Equal(t, types.DefaultActionText, resource.ActionText)

	results = importJSON(t, f, types.TransferResources, `[
		{"id": "res1", "title": "Rubrics v2", "description": "d", "url": "https://example.com", "resourceType": "Template"}
	]`, true)
	assert.Equal(t, 1, results.Updated)
	assert.Equal(t, []string{"Updated resource: Rubrics v2"}, results.Details)
}

func TestImportNonArrayData(t *testing.T) {
	f := setup(t)

	results := importJSON(t, f, types.TransferNeeds, `{"name": "oops"}`, false)
	assert.Equal(t, []string{"Needs data must be an array"}, results.Errors)
	assert.Zero(t, results.Created)
}

func TestImportUsers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.gate.Register(ctx, "existing@example.com", "password123")
	require.NoError(t, err)

	results := importJSON(t, f, types.TransferUsers, `[
		{"email": "new@example.com", "password": "password123"},
		{"email": "nopass@example.com"},
		{"email": "existing@example.com", "password": "other-password"}
	]`, false)

	assert.Equal(t, 1, results.Created)
	assert.Equal(t, 2, results.Skipped)
	assert.Equal(t, []string{
		"Created user: new@example.com",
		"Skipped user without password: nopass@example.com",
		"Skipped existing user: existing@example.com",
	}, results.Details)

	_, err = f.gate.Authenticate(ctx, "new@example.com", "password123")
	assert.NoError(t, err)

	results = importJSON(t, f, types.TransferUsers, `[
		{"email": "existing@example.com", "password": "other-password"},
		{"email": "ghost@example.com"}
	]`, true)

	assert.Equal(t, 1, results.Unsupported)
	assert.Equal(t, []string{"Skipped existing user: existing@example.com (password updates not supported)"}, results.Details)
	assert.Equal(t, []string{"Cannot create user without password: ghost@example.com"}, results.Errors)

	_, err = f.gate.Authenticate(ctx, "existing@example.com", "password123")
	assert.NoError(t, err, "existing password must be unchanged")
}

func TestExportFullRestoresIntoEmptyDatabase(t *testing.T) {
	source := setup(t)
	ctx := context.Background()

	role, err := source.roles.CreateRole(ctx, &types.Role{Name: "HE Lecturer"})
	require.NoError(t, err)
	_, err = source.needs.CreateNeed(ctx, &types.Need{Name: "Unit Development", Icon: "FileText", Roles: []string{role.ID}})
	require.NoError(t, err)
	_, err = source.resources.CreateResource(ctx, &types.Resource{Title: "Rubrics", Description: "d", URL: "https://example.com", ResourceType: "Guide", Roles: []string{"HE Lecturer"}})
	require.NoError(t, err)
	_, err = source.gate.Register(ctx, "admin@example.com", "password123")
	require.NoError(t, err)

	snapshot, err := source.exporter.Export(ctx, types.TransferFull)
	require.NoError(t, err)
	assert.Equal(t, types.TransferFull, snapshot.Type)
	assert.Equal(t, &types.Counts{Resources: 1, Roles: 1, Needs: 1, Users: 1}, snapshot.Counts)
	assert.Nil(t, snapshot.Count)

	encoded, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "password")

	var doc struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(encoded, &doc))

	target := setup(t)
	results := importJSON(t, target, types.TransferFull, string(doc.Data), false)
	assert.Equal(t, 3, results.Created)
	assert.Equal(t, 1, results.Skipped, "exported users carry no password")

	needs, err := target.needs.Needs(ctx)
	require.NoError(t, err)
	require.Len(t, needs, 1)
	assert.Equal(t, []string{role.ID}, needs[0].Roles)

	restored, err := target.roles.Role(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "HE Lecturer", restored.Name)
}

func TestExportSingleEntity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.roles.CreateRole(ctx, &types.Role{Name: "HE Lecturer"})
	require.NoError(t, err)

	snapshot, err := f.exporter.Export(ctx, types.TransferRoles)
	require.NoError(t, err)
	assert.Equal(t, types.TransferRoles, snapshot.Type)
	require.NotNil(t, snapshot.Count)
	assert.Equal(t, 1, *snapshot.Count)
	assert.Nil(t, snapshot.Counts)
	assert.Len(t, snapshot.Data, 1)
}

func TestParseType(t *testing.T) {
	assert.Equal(t, types.TransferUsers, ParseType("users"))
	assert.Equal(t, types.TransferRoles, ParseType(" Roles "))
	assert.Equal(t, types.TransferFull, ParseType(""))
	assert.Equal(t, types.TransferFull, ParseType("everything"))
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "connect-plus-roles-2025-03-09.json", FileName(types.TransferRoles, at))
}

func TestImportResourceFeaturedFlag(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	results := importJSON(t, f, types.TransferResources, `[
		{"id": "num", "title": "Numeric", "description": "d", "url": "https://example.com/1", "resourceType": "Guide", "featured": 1},
		{"id": "zero", "title": "Zero", "description": "d", "url": "https://example.com/2", "resourceType": "Guide", "featured": 0},
		{"id": "str", "title": "String", "description": "d", "url": "https://example.com/3", "resourceType": "Guide", "featured": "yes"},
		{"id": "null", "title": "Null", "description": "d", "url": "https://example.com/4", "resourceType": "Guide", "featured": null},
		"not an object"
	]`, false)

	assert.Equal(t, 4, results.Created)
	assert.Equal(t, []string{"Invalid resource data: malformed record"}, results.Errors)

	for id, want := range map[string]bool{"num": true, "zero": false, "str": true, "null": false} {
		resource, err := f.resources.Resource(ctx, id)
		require.NoError(t, err, id)
		assert.Equal(t, want, resource.Featured, id)
	}
}

func TestImportIDCollisions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.roles.CreateRole(ctx, &types.Role{ID: "shared", Name: "Librarian"})
	require.NoError(t, err)

	// ids are scoped to their own table
	results := importJSON(t, f, types.TransferResources, `[
		{"id": "shared", "title": "Rubrics", "description": "d", "url": "https://example.com", "resourceType": "Guide"}
	]`, false)
	assert.Equal(t, 1, results.Created)
	assert.Empty(t, results.Errors)

	role, err := f.roles.Role(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "Librarian", role.Name)

	existing, err := f.gate.Register(ctx, "existing@example.com", "password123")
	require.NoError(t, err)

	// a different email claiming an existing user id is rejected, not merged
	results = importJSON(t, f, types.TransferUsers, `[
		{"id": "`+existing.ID+`", "email": "other@example.com", "password": "password123"}
	]`, true)
	assert.Zero(t, results.Created)
	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "Failed to import user other@example.com")

	_, err = f.users.UserByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, types.ErrUserNotFound)

	_, err = f.gate.Authenticate(ctx, "existing@example.com", "password123")
	assert.NoError(t, err)
}
