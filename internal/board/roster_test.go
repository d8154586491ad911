package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/domain"
)

func TestRoster(t *testing.T) {
	r := NewRoster(nil)
	alex, err := r.Add("Alex")
	require.NoError(t, err)
	sam, err := r.Add("Sam")
	require.NoError(t, err)

	_, err = r.Add("Alex")
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	assert.True(t, errors.Is(r.Rename(sam.ID, "Alex"), domain.ErrDuplicateName))
	require.NoError(t, r.Rename(sam.ID, "Samantha"))
	assert.Equal(t, "Samantha", r.Name(sam.ID))

	require.NoError(t, r.Reorder(sam.ID, -1))
	assert.Equal(t, sam.ID, r.All()[0].ID)

	require.NoError(t, r.Delete(alex.ID))
	assert.Equal(t, alex.ID, r.Name(alex.ID))
	assert.True(t, errors.Is(r.Delete(alex.ID), domain.ErrNotFound))

	m, ok := r.Resolve("Samantha")
	assert.True(t, ok)
	assert.Equal(t, sam.ID, m.ID)
}
