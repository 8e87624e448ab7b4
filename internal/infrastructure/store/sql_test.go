package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"smart-pantry-chef/internal/core/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := NewSQLStore("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func countUsers(t *testing.T, s *SQLStore, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&userRecord{}).Where("email = ?", email).Count(&n).Error)
	return n
}

func TestSQLStoreCreateAndFind(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	user := &auth.User{Name: "Sari", Email: "sari@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := s.FindByEmail(ctx, "sari@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Sari", found.Name)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestSQLStoreDuplicateEmail(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &auth.User{Name: "One", Email: "dup@example.com", PasswordHash: "a"}))

	err := s.Create(ctx, &auth.User{Name: "Two", Email: "dup@example.com", PasswordHash: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	assert.Equal(t, int64(1), countUsers(t, s, "dup@example.com"))
}

func TestSQLStoreNotFound(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestSQLStorePing(t *testing.T) {
	s := newSQLiteStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestNewSQLStoreUnknownDriver(t *testing.T) {
	_, err := NewSQLStore("oracle", "dsn")
	assert.Error(t, err)
}
