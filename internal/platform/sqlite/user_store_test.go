package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradegate/internal/domain"
	"tradegate/internal/platform/sqlite"
	"tradegate/internal/store"
)

func TestUserStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("assigns an id and persists the row", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)

		user := mustCreateUser(t, users, "alice@example.com")
		require.NotZero(t, user.ID)

		got, err := users.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, "alice", got.Name)
		assert.Equal(t, domain.RoleUser, got.Role)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)

		mustCreateUser(t, users, "alice@example.com")

		dup, err := domain.NewUser("alice@example.com", "digest", "")
		require.NoError(t, err)
		err = users.Create(context.Background(), dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects an invalid user", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)

		err := users.Create(context.Background(), &domain.User{Email: "no-digest@example.com"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestUserStore_GetByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := sqlite.NewSQLiteUserStore(db, nil)
	user := mustCreateUser(t, users, "alice@example.com")

	t.Run("returns the stored user", func(t *testing.T) {
		got, err := users.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.PasswordDigest, got.PasswordDigest)
		assert.WithinDuration(t, user.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("reports missing users", func(t *testing.T) {
		_, err := users.GetByID(context.Background(), 9999)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUserStore_GetByEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := sqlite.NewSQLiteUserStore(db, nil)
	user := mustCreateUser(t, users, "alice@example.com")

	t.Run("returns the stored user", func(t *testing.T) {
		got, err := users.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("reports unknown emails", func(t *testing.T) {
		_, err := users.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_GetAll(t *testing.T) {
	t.Parallel()

	t.Run("returns an empty slice for an empty store", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)

		all, err := users.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("returns users ordered by id", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)

		first := mustCreateUser(t, users, "a@example.com")
		second := mustCreateUser(t, users, "b@example.com")

		all, err := users.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})
}

func TestUserStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("persists changed fields", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)
		user := mustCreateUser(t, users, "alice@example.com")

		user.Name = "Alice Cooper"
		user.PasswordDigest = "new-digest"
		user.UpdatedAt = time.Now().UTC()
		require.NoError(t, users.Update(context.Background(), user))

		got, err := users.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice Cooper", got.Name)
		assert.Equal(t, "new-digest", got.PasswordDigest)
	})

	t.Run("reports missing users", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)

		ghost, err := domain.NewUser("ghost@example.com", "digest", "")
		require.NoError(t, err)
		ghost.ID = 9999
		assert.ErrorIs(t, users.Update(context.Background(), ghost), store.ErrUserNotFound)
	})

	t.Run("rejects an email collision", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		users := sqlite.NewSQLiteUserStore(db, nil)
		mustCreateUser(t, users, "alice@example.com")
		bob := mustCreateUser(t, users, "bob@example.com")

		bob.Email = "alice@example.com"
		assert.ErrorIs(t, users.Update(context.Background(), bob), store.ErrEmailExists)
	})
}

func TestUserStore_Delete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := sqlite.NewSQLiteUserStore(db, nil)
	user := mustCreateUser(t, users, "alice@example.com")

	t.Run("removes the row", func(t *testing.T) {
		require.NoError(t, users.Delete(context.Background(), user.ID))
		_, err := users.GetByID(context.Background(), user.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("reports missing users", func(t *testing.T) {
		assert.ErrorIs(t, users.Delete(context.Background(), user.ID), store.ErrUserNotFound)
	})
}

func TestUserStore_WithTx(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := sqlite.NewSQLiteUserStore(db, nil)

	tx, err := db.Begin()
	require.NoError(t, err)

	txUsers := users.WithTx(tx)
	user, err := domain.NewUser("tx@example.com", "digest", "")
	require.NoError(t, err)
	require.NoError(t, txUsers.Create(context.Background(), user))

	require.NoError(t, tx.Rollback())

	// The rollback must discard the insert.
	_, err = users.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestNewSQLiteUserStore_NilDBPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		sqlite.NewSQLiteUserStore(nil, nil)
	})
}
