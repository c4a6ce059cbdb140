package transfer

import (
	"context"
	"fmt"

	"connectplus/internal/store"
	"connectplus/internal/utils"
	"connectplus/pkg/types"

	"golang.org/x/sync/errgroup"
)

type Exporter struct {
	resources *store.ResourceRepository
	roles     *store.RoleRepository
	needs     *store.NeedRepository
	users     *store.UserRepository
}

func NewExporter(
	resources *store.ResourceRepository,
	roles *store.RoleRepository,
	needs *store.NeedRepository,
	users *store.UserRepository,
) *Exporter {
	return &Exporter{resources: resources, roles: roles, needs: needs, users: users}
}

// Export snapshots the tables selected by t. Any type other than a single
// entity produces a full snapshot. User records never carry password
// hashes.
func (e *Exporter) Export(ctx context.Context, t types.TransferType) (*types.Snapshot, error) {
	snapshot := &types.Snapshot{Type: t, ExportedAt: utils.Now()}

	switch t {
	case types.TransferResources:
		resources, err := e.resources.Resources(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to export resources: %w", err)
		}
		snapshot.Data, snapshot.Count = resources, count(len(resources))
	case types.TransferRoles:
		roles, err := e.roles.Roles(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to export roles: %w", err)
		}
		snapshot.Data, snapshot.Count = roles, count(len(roles))
	case types.TransferNeeds:
		needs, err := e.needs.Needs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to export needs: %w", err)
		}
		snapshot.Data, snapshot.Count = needs, count(len(needs))
	case types.TransferUsers:
		users, err := e.users.Users(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to export users: %w", err)
		}
		snapshot.Data, snapshot.Count = users, count(len(users))
	default:
		full, err := e.full(ctx)
		if err != nil {
			return nil, err
		}
		snapshot.Type = types.TransferFull
		snapshot.Data = full
		snapshot.Counts = &types.Counts{
			Resources: len(full.Resources),
			Roles:     len(full.Roles),
			Needs:     len(full.Needs),
			Users:     len(full.Users),
		}
	}

	return snapshot, nil
}

func (e *Exporter) full(ctx context.Context) (*types.FullData, error) {
	full := new(types.FullData)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		full.Resources, err = e.resources.Resources(gctx)
		return utils.ErrorWrapOrNil(err, "failed to export resources")
	})
	group.Go(func() (err error) {
		full.Roles, err = e.roles.Roles(gctx)
		return utils.ErrorWrapOrNil(err, "failed to export roles")
	})
	group.Go(func() (err error) {
		full.Needs, err = e.needs.Needs(gctx)
		return utils.ErrorWrapOrNil(err, "failed to export needs")
	})
	group.Go(func() (err error) {
		full.Users, err = e.users.Users(gctx)
		return utils.ErrorWrapOrNil(err, "failed to export users")
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return full, nil
}

func count(n int) *int {
	return &n
}
