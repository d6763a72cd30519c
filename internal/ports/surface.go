package ports

import (
	"context"
	"empdir/internal/types"
)

// Renderer displays the derived view. It is called after every change of the
// authoritative list or of the search term.
type Renderer interface {
	Render(view []types.Employee, stats types.Stats)
}

// Confirmer guards destructive actions. It returns true if the user agreed.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}
