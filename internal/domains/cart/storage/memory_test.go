package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_SaveLoadClear(t *testing.T) {
	st := NewMemoryStorage()
	ctx := context.Background()

	_, found, err := st.Load(ctx, "cart:session:a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.Save(ctx, "cart:session:a", []byte(`{"lines":[]}`)))

	raw, found, err := st.Load(ctx, "cart:session:a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"lines":[]}`, string(raw))

	require.NoError(t, st.Clear(ctx, "cart:session:a"))

	_, found, err = st.Load(ctx, "cart:session:a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStorage_LoadReturnsCopy(t *testing.T) {
	st := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "k", []byte("abc")))

	raw, _, err := st.Load(ctx, "k")
	require.NoError(t, err)
	raw[0] = 'X'

	again, _, err := st.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStorage_ListByPrefix(t *testing.T) {
	st := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "cart:session:a", []byte("1")))
	require.NoError(t, st.Save(ctx, "cart:session:b", []byte("2")))
	require.NoError(t, st.Save(ctx, "other:x", []byte("3")))

	keys, err := st.List(ctx, "cart:session:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cart:session:a", "cart:session:b"}, keys)
}
