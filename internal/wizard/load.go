package wizard

import (
	"context"

	"connectplus/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Source interface {
	Resources(ctx context.Context) ([]*types.Resource, error)
	Roles(ctx context.Context) ([]*types.Role, error)
	Needs(ctx context.Context) ([]*types.Need, error)
}

type Dataset struct {
	Resources []*types.Resource
	Roles     []*types.Role
	Needs     []*types.Need
	// Fallback is set when the source failed and the built-in data is shown
	Fallback bool
}

// Load fetches everything the flow needs from source. When any read fails
// the built-in dataset is returned instead, so the flow always has
// something to show.
func Load(ctx context.Context, source Source, logger logrus.FieldLogger) *Dataset {
	data := new(Dataset)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		data.Resources, err = source.Resources(gctx)
		return err
	})
	group.Go(func() (err error) {
		data.Roles, err = source.Roles(gctx)
		return err
	})
	group.Go(func() (err error) {
		data.Needs, err = source.Needs(gctx)
		return err
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Warn("failed to load discovery data, using fallback dataset")
		return &Dataset{
			Resources: FallbackResources(),
			Roles:     FallbackRoles(),
			Needs:     FallbackNeeds(),
			Fallback:  true,
		}
	}

	return data
}
