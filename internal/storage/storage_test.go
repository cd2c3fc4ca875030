package storage_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nicketronix/promptpilot-backend/config"
	"github.com/nicketronix/promptpilot-backend/internal/database"
	"github.com/nicketronix/promptpilot-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(&config.Config{
		StorageDriver: config.StorageSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "storage.db"),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// backends runs fn against every Storage implementation.
func backends(t *testing.T, fn func(t *testing.T, s storage.Storage)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, storage.NewMemStorage())
	})
	t.Run("gorm", func(t *testing.T) {
		fn(t, storage.NewGormStorage(setupTestDB(t)))
	})
}

func strPtr(s string) *string { return &s }

func TestUsers(t *testing.T) {
	backends(t, func(t *testing.T, s storage.Storage) {
		ctx := context.Background()

		alice, err := s.CreateUser(ctx, "alice", "hash-a")
		require.NoError(t, err)
		assert.Equal(t, uint(1), alice.ID)

		bob, err := s.CreateUser(ctx, "bob", "hash-b")
		require.NoError(t, err)
		assert.Equal(t, uint(2), bob.ID)

		_, err = s.CreateUser(ctx, "alice", "other")
		assert.ErrorIs(t, err, storage.ErrDuplicateUsername)

		got, err := s.GetUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)
		assert.Equal(t, "hash-b", got.Password)

		got, err = s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = s.GetUser(ctx, 99)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.GetUserByUsername(ctx, "carol")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPrompts(t *testing.T) {
	backends(t, func(t *testing.T, s storage.Storage) {
		ctx := context.Background()

		empty, err := s.GetPrompts(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Len(t, empty, 0)

		for i := 1; i <= 3; i++ {
			p, err := s.CreatePrompt(ctx, 1, fmt.Sprintf("original %d", i), fmt.Sprintf("enhanced %d", i), 10*i)
			require.NoError(t, err)
			assert.Equal(t, uint(i), p.ID)
			assert.False(t, p.CreatedAt.IsZero())
		}
		other, err := s.CreatePrompt(ctx, 2, "someone else", "someone else, clearer", 55)
		require.NoError(t, err)
		assert.Equal(t, uint(4), other.ID)

		prompts, err := s.GetPrompts(ctx, 1)
		require.NoError(t, err)
		require.Len(t, prompts, 3)
		for i, p := range prompts {
			assert.Equal(t, uint(i+1), p.ID)
			assert.Equal(t, uint(1), p.UserID)
			assert.Equal(t, fmt.Sprintf("original %d", i+1), p.OriginalText)
			assert.Equal(t, fmt.Sprintf("enhanced %d", i+1), p.EnhancedText)
			assert.Equal(t, 10*(i+1), p.QualityScore)
		}

		got, err := s.GetPrompt(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "someone else", got.OriginalText)
		assert.Equal(t, uint(2), got.UserID)

		_, err = s.GetPrompt(ctx, 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestFeedback(t *testing.T) {
	backends(t, func(t *testing.T, s storage.Storage) {
		ctx := context.Background()

		// Identifier sequences are independent per entity type.
		_, err := s.CreatePrompt(ctx, 1, "a", "b", 50)
		require.NoError(t, err)
		_, err = s.CreatePrompt(ctx, 1, "c", "d", 50)
		require.NoError(t, err)

		fb1, err := s.CreateFeedback(ctx, 2, 1, false, nil)
		require.NoError(t, err)
		assert.Equal(t, uint(1), fb1.ID)
		assert.False(t, fb1.IsHelpful)
		assert.Nil(t, fb1.Comment)

		fb2, err := s.CreateFeedback(ctx, 2, 1, true, strPtr("much clearer"))
		require.NoError(t, err)
		assert.Equal(t, uint(2), fb2.ID)

		_, err = s.CreateFeedback(ctx, 1, 1, true, nil)
		require.NoError(t, err)

		feedback, err := s.GetFeedback(ctx, 2)
		require.NoError(t, err)
		require.Len(t, feedback, 2)
		assert.Equal(t, fb1.ID, feedback[0].ID)
		assert.False(t, feedback[0].IsHelpful)
		assert.Nil(t, feedback[0].Comment)
		assert.True(t, feedback[1].IsHelpful)
		require.NotNil(t, feedback[1].Comment)
		assert.Equal(t, "much clearer", *feedback[1].Comment)

		none, err := s.GetFeedback(ctx, 7)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Len(t, none, 0)
	})
}

func TestMemStorageReturnsCopies(t *testing.T) {
	s := storage.NewMemStorage()
	ctx := context.Background()

	p, err := s.CreatePrompt(ctx, 1, "original", "enhanced", 80)
	require.NoError(t, err)
	p.EnhancedText = "tampered"

	comment := "ok"
	fb, err := s.CreateFeedback(ctx, p.ID, 1, true, &comment)
	require.NoError(t, err)
	comment = "tampered"
	*fb.Comment = "tampered"

	got, err := s.GetPrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "enhanced", got.EnhancedText)

	feedback, err := s.GetFeedback(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ok", *feedback[0].Comment)
}

func TestMemStorageConcurrentCreates(t *testing.T) {
	s := storage.NewMemStorage()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreatePrompt(ctx, 1, fmt.Sprintf("p%d", i), "e", 50)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	prompts, err := s.GetPrompts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, prompts, n)
	for i, p := range prompts {
		assert.Equal(t, uint(i+1), p.ID)
	}
}

func TestGormCreateUserUniqueIndexConflict(t *testing.T) {
	db := setupTestDB(t)
	s := storage.NewGormStorage(db)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	// Zero the username count so the insert reaches the unique index, as a concurrent signup would.
	err = db.Callback().Query().After("gorm:query").Register("test:zero_user_count", func(tx *gorm.DB) {
		if count, ok := tx.Statement.Dest.(*int64); ok && tx.Statement.Table == "users" {
			*count = 0
		}
	})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "other")
	assert.ErrorIs(t, err, storage.ErrDuplicateUsername)
}
