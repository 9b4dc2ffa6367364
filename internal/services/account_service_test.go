package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libshelf/libshelf-be/internal/auth"
	"github.com/libshelf/libshelf-be/internal/services"
)

func TestAccountService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	account, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Positive(t, account.ID)
	assert.False(t, account.CreatedAt.IsZero())
	assert.Equal(t, "alice", account.Username)

	// Stored password is a verifiable hash, not the plaintext
	assert.NotEqual(t, "secret123", account.Password)
	assert.True(t, auth.CheckPassword("secret123", account.Password))
}

func TestAccountService_Create_Duplicate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same username", "alice", "other@example.com"},
		{"same email", "other", "alice@example.com"},
		{"both taken", "alice", "alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.username, tt.email, "secret123")
			assert.ErrorIs(t, err, services.ErrDuplicateAccount)
		})
	}
}

func TestAccountService_IsTakenByOther(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	alice, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "bob@example.com", "secret123")
	require.NoError(t, err)

	// A no-op self-update is allowed
	taken, err := svc.IsTakenByOther(ctx, "alice", "alice@example.com", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	// Bob's username collides
	taken, err = svc.IsTakenByOther(ctx, "bob", "alice@example.com", alice.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestAccountService_Update(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	account, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, account, "alicia", "alicia@example.com", "newpass456")
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, "alicia@example.com", updated.Email)
	assert.True(t, auth.CheckPassword("newpass456", updated.Password))

	// Old credentials no longer authenticate
	_, err = svc.Authenticate(ctx, "alice@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "alicia@example.com", "newpass456")
	assert.NoError(t, err)
}

func TestAccountService_Update_Collision(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "bob", "bob@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, "alice", "bob@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrDuplicateAccount)
}

func TestAccountService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	account, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, account))

	_, err = svc.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, services.ErrAccountNotFound)
}

func TestAccountService_ListAll_Ordered(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Create(ctx, name, name+"@example.com", "secret123")
		require.NoError(t, err)
	}

	accounts, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "alice", accounts[0].Username)
	assert.Equal(t, "bob", accounts[1].Username)
	assert.Equal(t, "carol", accounts[2].Username)
}

func TestAccountService_Authenticate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAccountService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	account, err := svc.Authenticate(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown email is indistinguishable from a bad password
	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
