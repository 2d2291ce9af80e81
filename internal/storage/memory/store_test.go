package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rolodex/internal/model"
)

func TestStore_GetMissing(t *testing.T) {
	s := NewStore()

	v, err := s.Get(context.Background(), "contacts")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Set(ctx, "contacts", []byte("[1]")))
	require.NoError(t, s.Set(ctx, "contacts", []byte("[2]")))

	v, err := s.Get(ctx, "contacts")
	require.NoError(t, err)
	assert.Equal(t, []byte("[2]"), v)
}

func TestStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
