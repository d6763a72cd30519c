package ports

import (
	"context"
	"empdir/internal/types"
)

// EmployeeAPI is the REST collaborator holding the authoritative employee records.
// Implementations MUST classify failures with types.ErrNetwork (no usable response),
// types.ErrNotFound (the id does not exist) or types.ErrBackend (any other non-success status).
type EmployeeAPI interface {
	List(ctx context.Context) ([]types.Employee, error)

	Get(ctx context.Context, id int64) (types.Employee, error)

	// Create returns the record as stored by the backend, with its assigned id.
	Create(ctx context.Context, draft types.Draft) (types.Employee, error)

	// Update replaces every editable field of the record keyed by id.
	Update(ctx context.Context, id int64, draft types.Draft) (types.Employee, error)

	Delete(ctx context.Context, id int64) error
}
