package user

import "github.com/layerkit/layerkit/internal/user/persistence"

// Errors surfaced by the facade.
var (
	ErrInvalidArgument = persistence.ErrInvalidArgument
	ErrEmailExists     = persistence.ErrEmailExists
)
