package preference_repo

import (
	"context"
	"testing"

	"tosipeli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	got, err := r.Get(ctx, "device")
	require.NoError(t, err)
	assert.Nil(t, got)

	sel := model.PreferenceSelection{Auto: "kasko", Home: "laaja", Travel: "all"}
	require.NoError(t, r.Save(ctx, "device", sel))

	got, err = r.Get(ctx, "device")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sel, *got)

	// the returned value is a copy
	got.Travel = "short"
	again, err := r.Get(ctx, "device")
	require.NoError(t, err)
	assert.Equal(t, "all", again.Travel)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "tosipeli:last-prefs:abc", key("abc"))
}
