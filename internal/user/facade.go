package user

import (
	"context"

	"github.com/layerkit/layerkit/internal/model"
)

// Facade is the public entry point of the user slice.
type Facade interface {
	// FindOneByEmail returns nil, nil when the email is unknown.
	FindOneByEmail(ctx context.Context, email string) (*model.User, error)
	// PersistUser fails with ErrInvalidArgument when u has neither ID nor email.
	PersistUser(ctx context.Context, u *model.User) (*model.User, error)
}

type facade struct {
	reader Reader
	writer Writer
}

// NewFacade composes a Reader and a Writer.
func NewFacade(reader Reader, writer Writer) Facade {
	return &facade{reader: reader, writer: writer}
}

func (f *facade) FindOneByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.reader.FindOneByEmail(ctx, email)
}

func (f *facade) PersistUser(ctx context.Context, u *model.User) (*model.User, error) {
	return f.writer.PersistUser(ctx, u)
}
