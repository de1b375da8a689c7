package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerkit/layerkit/internal/model"
)

func TestMapper_ToTransfer(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &Record{ID: 42, Email: "a@example.com", CreatedAt: created, UpdatedAt: created.Add(time.Minute)}

	u := NewMapper().ToTransfer(rec)

	assert.Equal(t, &model.User{
		ID:        42,
		Email:     "a@example.com",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
	}, u)
}

func TestMapper_ToRecord_New(t *testing.T) {
	rec := NewMapper().ToRecord(&model.User{ID: 9, Email: "new@example.com"}, nil)

	require.NotNil(t, rec)
	assert.Equal(t, "new@example.com", rec.Email)
	assert.Zero(t, rec.ID, "mapper must not assign ids")
	assert.True(t, rec.CreatedAt.IsZero())
	assert.True(t, rec.UpdatedAt.IsZero())
}

func TestMapper_ToRecord_Existing(t *testing.T) {
	existing := &Record{ID: 3, Email: "old@example.com"}

	rec := NewMapper().ToRecord(&model.User{Email: "new@example.com"}, existing)

	assert.Same(t, existing, rec)
	assert.Equal(t, int64(3), rec.ID)
	assert.Equal(t, "new@example.com", rec.Email)
}

func TestMapper_ToRecord_ExistingKeepsEmailWhenAbsent(t *testing.T) {
	existing := &Record{ID: 3, Email: "old@example.com"}

	rec := NewMapper().ToRecord(&model.User{ID: 3}, existing)

	assert.Equal(t, "old@example.com", rec.Email)
}

func TestMapper_RoundTripPreservesEmail(t *testing.T) {
	m := NewMapper()
	in := &model.User{Email: "round@example.com"}

	out := m.ToTransfer(m.ToRecord(in, nil))

	assert.Equal(t, in.Email, out.Email)
	assert.Zero(t, out.ID)
	assert.True(t, out.CreatedAt.IsZero())
	assert.True(t, out.UpdatedAt.IsZero())
}
