package persistence

import "github.com/layerkit/layerkit/internal/model"

// Mapper converts between stored records and transfer objects.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToTransfer copies a record into a new transfer object.
func (m *Mapper) ToTransfer(rec *Record) *model.User {
	return &model.User{
		ID:        rec.ID,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// ToRecord applies the transfer onto existing, or onto a fresh record when
// existing is nil. ID and timestamps are left to the store.
func (m *Mapper) ToRecord(u *model.User, existing *Record) *Record {
	if existing == nil {
		return &Record{Email: u.Email}
	}

	if u.HasEmail() {
		existing.Email = u.Email
	}
	return existing
}
