package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/config"
	"userapi/internal/model"
)

func validConfig() config.StoreConfig {
	return config.StoreConfig{
		Driver:           config.DriverMemory,
		ConnectionString: "memory://local",
		DatabaseName:     "usersdb",
		CollectionName:   "Users",
	}
}

func TestNewConnector(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		c, err := NewConnector(config.StoreConfig{})
		assert.ErrorIs(t, err, config.ErrConfiguration)
		assert.Nil(t, c)
	})

	t.Run("shared collection per type", func(t *testing.T) {
		c, err := NewConnector(validConfig())
		require.NoError(t, err)

		a := GetCollection[*model.User](c)
		b := GetCollection[*model.User](c)
		assert.Same(t, a, b)
		assert.Equal(t, "Users", a.Name())
		assert.NoError(t, c.Ping(context.Background()))
	})
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[*model.User]("Users")

	highest, err := coll.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, highest)

	all, err := coll.Find(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	u := &model.User{ID: 3, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"}
	require.NoError(t, coll.InsertOne(ctx, u))

	err = coll.InsertOne(ctx, &model.User{ID: 3, Name: "dup"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// stored copy is isolated from the caller's value
	u.Name = "mutated"
	got, ok, err := coll.FindByID(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Leanne Graham", got.Name)

	highest, err = coll.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, highest)

	require.NoError(t, coll.ReplaceByID(ctx, 3, &model.User{ID: 3, Name: "Ervin Howell"}))
	got, _, _ = coll.FindByID(ctx, 3)
	assert.Equal(t, "Ervin Howell", got.Name)
	assert.Empty(t, got.Email)

	require.NoError(t, coll.ReplaceByID(ctx, 42, &model.User{ID: 42, Name: "ghost"}))
	_, ok, _ = coll.FindByID(ctx, 42)
	assert.False(t, ok)

	require.NoError(t, coll.DeleteByID(ctx, 3))
	require.NoError(t, coll.DeleteByID(ctx, 3))
	assert.Equal(t, 0, coll.Len())
}

func TestCollection_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coll := NewCollection[*model.User]("Users")
	_, err := coll.Find(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, coll.InsertOne(ctx, &model.User{ID: 1}), context.Canceled)
}
