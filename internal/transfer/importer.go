package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"connectplus/internal/store"
	"connectplus/internal/utils"
	"connectplus/pkg/types"

	"github.com/sirupsen/logrus"
)

type Hasher interface {
	HashPassword(password string) (string, error)
}

type Importer struct {
	resources *store.ResourceRepository
	roles     *store.RoleRepository
	needs     *store.NeedRepository
	users     *store.UserRepository
	hasher    Hasher
	logger    logrus.FieldLogger
}

func NewImporter(
	resources *store.ResourceRepository,
	roles *store.RoleRepository,
	needs *store.NeedRepository,
	users *store.UserRepository,
	hasher Hasher,
	logger logrus.FieldLogger,
) *Importer {
	return &Importer{
		resources: resources,
		roles:     roles,
		needs:     needs,
		users:     users,
		hasher:    hasher,
		logger:    logger,
	}
}

// Import applies req record by record. A bad record is reported in the
// results and never aborts the batch; only a malformed request returns an
// error.
func (i *Importer) Import(ctx context.Context, req *types.ImportRequest) (*types.ImportResults, error) {
	if req == nil || req.Type == "" || isEmptyJSON(req.Data) {
		return nil, ErrMissingImportData
	}

	t := newTally()

	switch req.Type {
	case types.TransferResources:
		i.importResources(ctx, req.Data, req.Overwrite, t)
	case types.TransferRoles:
		i.importRoles(ctx, req.Data, req.Overwrite, t)
	case types.TransferNeeds:
		i.importNeeds(ctx, req.Data, req.Overwrite, t)
	case types.TransferUsers:
		i.importUsers(ctx, req.Data, req.Overwrite, t)
	case types.TransferFull:
		i.importFull(ctx, req.Data, req.Overwrite, t)
	default:
		return nil, ErrInvalidImportType
	}

	i.logger.WithFields(logrus.Fields{
		"type":        req.Type,
		"overwrite":   req.Overwrite,
		"created":     t.results.Created,
		"updated":     t.results.Updated,
		"skipped":     t.results.Skipped,
		"unsupported": t.results.Unsupported,
		"errors":      len(t.results.Errors),
	}).Info("import completed")

	return t.results, nil
}

func (i *Importer) importFull(ctx context.Context, data json.RawMessage, overwrite bool, t *tally) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		t.fail("Full import data must be an object")
		return
	}

	if raw, ok := sections["resources"]; ok && !isEmptyJSON(raw) {
		i.importResources(ctx, raw, overwrite, t)
	}
	if raw, ok := sections["roles"]; ok && !isEmptyJSON(raw) {
		i.importRoles(ctx, raw, overwrite, t)
	}
	if raw, ok := sections["needs"]; ok && !isEmptyJSON(raw) {
		i.importNeeds(ctx, raw, overwrite, t)
	}
	if raw, ok := sections["users"]; ok && !isEmptyJSON(raw) {
		i.importUsers(ctx, raw, overwrite, t)
	}
}

// records splits data into raw array elements, recording an error when data
// is not an array.
func records(data json.RawMessage, e entity, t *tally) ([]json.RawMessage, bool) {
	var out []json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.fail("%ss data must be an array", e.title())
		return nil, false
	}
	return out, true
}

// decodeRecord unmarshals item into dst, recording an error when the record
// is not a well-formed object.
func decodeRecord(item json.RawMessage, dst any, e entity, t *tally) bool {
	if err := json.Unmarshal(item, dst); err != nil {
		t.fail("Invalid %s data: malformed record", e)
		return false
	}
	return true
}

// truthy accepts booleans, numbers and strings for flag fields. Zero values
// and null are false.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

type resourceRecord struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	URL          string          `json:"url"`
	Icon         string          `json:"icon"`
	Roles        json.RawMessage `json:"roles"`
	Needs        json.RawMessage `json:"needs"`
	Tags         json.RawMessage `json:"tags"`
	Featured     json.RawMessage `json:"featured"`
	UpdatedAt    string          `json:"updatedAt"`
	ResourceType string          `json:"resourceType"`
	ActionText   string          `json:"actionText"`
}

func (r *resourceRecord) resource() *types.Resource {
	return &types.Resource{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		URL:          r.URL,
		Icon:         r.Icon,
		Roles:        store.ParseArrayField(r.Roles),
		Needs:        store.ParseArrayField(r.Needs),
		Tags:         store.ParseArrayField(r.Tags),
		Featured:     truthy(r.Featured),
		UpdatedAt:    r.UpdatedAt,
		ResourceType: r.ResourceType,
		ActionText:   r.ActionText,
	}
}

func (i *Importer) importResources(ctx context.Context, data json.RawMessage, overwrite bool, t *tally) {
	items, ok := records(data, entityResource, t)
	if !ok {
		return
	}

	for _, item := range items {
		var record resourceRecord
		if !decodeRecord(item, &record, entityResource, t) {
			continue
		}
		if record.Title == "" || record.Description == "" || record.URL == "" || record.ResourceType == "" {
			t.fail("Invalid resource data: missing required fields")
			continue
		}
		resource := record.resource()

		if resource.ID != "" {
			_, err := i.resources.Resource(ctx, resource.ID)
			switch {
			case err == nil && overwrite:
				if _, err := i.resources.UpdateResource(ctx, resource.ID, resourcePatch(resource)); err != nil {
					i.recordFailure(t, entityResource, resource.Title, err)
					continue
				}
				t.updated(entityResource, resource.Title)
				continue
			case err == nil:
				t.skipped("Skipped existing resource: %s", resource.Title)
				continue
			case !errors.Is(err, types.ErrResourceNotFound):
				i.recordFailure(t, entityResource, resource.Title, err)
				continue
			}
		}

		if _, err := i.resources.CreateResource(ctx, resource); err != nil {
			i.recordFailure(t, entityResource, resource.Title, err)
			continue
		}
		t.created(entityResource, resource.Title)
	}
}

func resourcePatch(resource *types.Resource) *types.ResourcePatch {
	return &types.ResourcePatch{
		Title:        &resource.Title,
		Description:  &resource.Description,
		URL:          &resource.URL,
		Icon:         &resource.Icon,
		Roles:        &resource.Roles,
		Needs:        &resource.Needs,
		Tags:         &resource.Tags,
		Featured:     utils.BoolPtr(resource.Featured),
		UpdatedAt:    utils.StringPtr(utils.PtrStringOr(&resource.UpdatedAt, utils.Now())),
		ResourceType: &resource.ResourceType,
		ActionText:   utils.StringPtr(utils.PtrStringOr(&resource.ActionText, types.DefaultActionText)),
	}
}

func (i *Importer) importRoles(ctx context.Context, data json.RawMessage, overwrite bool, t *tally) {
	items, ok := records(data, entityRole, t)
	if !ok {
		return
	}

	for _, item := range items {
		var role types.Role
		if !decodeRecord(item, &role, entityRole, t) {
			continue
		}
		if role.Name == "" {
			t.fail("Invalid role data: missing name")
			continue
		}

		if role.ID != "" {
			_, err := i.roles.Role(ctx, role.ID)
			switch {
			case err == nil && overwrite:
				patch := &types.RolePatch{
					Name:        &role.Name,
					Description: &role.Description,
					Icon:        &role.Icon,
					UpdatedAt:   utils.StringPtr(utils.Now()),
				}
				if _, err := i.roles.UpdateRole(ctx, role.ID, patch); err != nil {
					i.recordFailure(t, entityRole, role.Name, err)
					continue
				}
				t.updated(entityRole, role.Name)
				continue
			case err == nil:
				t.skipped("Skipped existing role: %s", role.Name)
				continue
			case !errors.Is(err, types.ErrRoleNotFound):
				i.recordFailure(t, entityRole, role.Name, err)
				continue
			}
		}

		if _, err := i.roles.CreateRole(ctx, &role); err != nil {
			i.recordFailure(t, entityRole, role.Name, err)
			continue
		}
		t.created(entityRole, role.Name)
	}
}

type needRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Roles       json.RawMessage `json:"roles"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func (i *Importer) importNeeds(ctx context.Context, data json.RawMessage, overwrite bool, t *tally) {
	items, ok := records(data, entityNeed, t)
	if !ok {
		return
	}

	for _, item := range items {
		var record needRecord
		if !decodeRecord(item, &record, entityNeed, t) {
			continue
		}
		if record.Name == "" || record.Icon == "" {
			t.fail("Invalid need data: missing required fields")
			continue
		}
		need := &types.Need{
			ID:          record.ID,
			Name:        record.Name,
			Description: record.Description,
			Icon:        record.Icon,
			Roles:       store.ParseArrayField(record.Roles),
			CreatedAt:   record.CreatedAt,
			UpdatedAt:   record.UpdatedAt,
		}

		if need.ID != "" {
			_, err := i.needs.Need(ctx, need.ID)
			switch {
			case err == nil && overwrite:
				patch := &types.NeedPatch{
					Name:        &need.Name,
					Description: &need.Description,
					Icon:        &need.Icon,
					Roles:       &need.Roles,
					UpdatedAt:   utils.StringPtr(utils.Now()),
				}
				if _, err := i.needs.UpdateNeed(ctx, need.ID, patch); err != nil {
					i.recordFailure(t, entityNeed, need.Name, err)
					continue
				}
				t.updated(entityNeed, need.Name)
				continue
			case err == nil:
				t.skipped("Skipped existing need: %s", need.Name)
				continue
			case !errors.Is(err, types.ErrNeedNotFound):
				i.recordFailure(t, entityNeed, need.Name, err)
				continue
			}
		}

		if _, err := i.needs.CreateNeed(ctx, need); err != nil {
			i.recordFailure(t, entityNeed, need.Name, err)
			continue
		}
		t.created(entityNeed, need.Name)
	}
}

type userRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// importUsers never changes an existing account. Stored hashes cannot be
// compared against an incoming password, so an overwrite request for an
// existing user is reported as unsupported.
func (i *Importer) importUsers(ctx context.Context, data json.RawMessage, overwrite bool, t *tally) {
	items, ok := records(data, entityUser, t)
	if !ok {
		return
	}

	for _, item := range items {
		var record userRecord
		if !decodeRecord(item, &record, entityUser, t) {
			continue
		}
		if record.Email == "" {
			t.fail("Invalid user data: missing email")
			continue
		}

		if record.Password == "" && !overwrite {
			t.skipped("Skipped user without password: %s", record.Email)
			continue
		}

		_, err := i.users.UserByEmail(ctx, record.Email)
		switch {
		case err == nil && overwrite && record.Password != "":
			i.logger.WithError(types.ErrUnsupportedOperation).WithField("email", record.Email).Debug("password overwrite requested")
			t.unsupported("Skipped existing user: %s (password updates not supported)", record.Email)
			continue
		case err == nil:
			t.skipped("Skipped existing user: %s", record.Email)
			continue
		case !errors.Is(err, types.ErrUserNotFound):
			i.recordFailure(t, entityUser, record.Email, err)
			continue
		}

		if record.Password == "" {
			t.fail("Cannot create user without password: %s", record.Email)
			continue
		}

		hash, err := i.hasher.HashPassword(record.Password)
		if err != nil {
			i.recordFailure(t, entityUser, record.Email, err)
			continue
		}

		if _, err := i.users.CreateUser(ctx, &types.User{ID: record.ID, Email: record.Email, Password: hash}); err != nil {
			i.recordFailure(t, entityUser, record.Email, err)
			continue
		}
		t.created(entityUser, record.Email)
	}
}

func (i *Importer) recordFailure(t *tally, e entity, label string, err error) {
	i.logger.WithError(err).WithField("entity", string(e)).Debug("failed to import record")
	t.fail("Failed to import %s %s: %s", e, label, err)
}

func isEmptyJSON(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
