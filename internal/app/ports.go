package app

import "context"

// BoardStore is the persistence collaborator: one serialized aggregate blob
// under a single key. Load returns ErrNotFound when nothing has been saved
// yet.
type BoardStore interface {
	Load(context.Context) ([]byte, error)
	Save(context.Context, []byte) error
}
