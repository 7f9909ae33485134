package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

func TestSetupTestDBIsolated(t *testing.T) {
	first := SetupTestDB(t)
	second := SetupTestDB(t)

	CreateTestUser(t, first.DB, "one@example.com")

	var count int64
	require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, first.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPNGBytesDecodes(t *testing.T) {
	data := PNGBytes(t)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}
