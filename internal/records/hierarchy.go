package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
)

// outers follows l's outer references iteratively. A visited set stops
// the walk if the stored hierarchy loops back on itself.
func (rv *resolver) outers(l entity.Location) ([]entity.Location, error) {
	var chain []entity.Location
	visited := map[uuid.UUID]bool{l.ID: true}

	current := l
	for current.OuterID != nil {
		next := *current.OuterID
		if visited[next] {
			return nil, &Error{
				Code:    ErrCodeDataIntegrity,
				Kind:    entity.KindLocation,
				ID:      next,
				Message: fmt.Sprintf("outer locations of %s form a cycle", l.ID),
			}
		}
		visited[next] = true

		outer, err := rv.location(next, referrer(entity.KindLocation, current.ID))
		if err != nil {
			return nil, err
		}
		chain = append(chain, outer)
		current = outer
	}

	return chain, nil
}

// Outers returns every location containing l, innermost first. For
// Phoenix inside Arizona inside USA it returns [Arizona, USA].
//
// A missing outer location is a data integrity error, as is a cycle.
func (r *Repo) Outers(ctx context.Context, l entity.Location) ([]entity.Location, error) {
	return r.resolver(ctx).outers(l)
}
