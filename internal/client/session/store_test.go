package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/bloodlink/internal/client/repositories/session"
)

func donorSession() models.Session {
	return models.Session{AccessToken: "a1", RefreshToken: "r1", Role: models.RoleDonor}
}

func TestStore_StartsUnauthenticated(t *testing.T) {
	s := NewStore(sessionrepo.NewMemoryRepository(), nil)
	require.NoError(t, s.Open(context.Background()))

	_, ok := s.CurrentRole()
	assert.False(t, ok)
	assert.Nil(t, s.Current())

	_, err := s.TokenFor(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Empty(t, s.RefreshToken())
}

func TestStore_BeginPublishesAfterPersist(t *testing.T) {
	repo := sessionrepo.NewMemoryRepository()
	s := NewStore(repo, nil)
	ctx := context.Background()

	require.NoError(t, s.Begin(ctx, donorSession()))

	role, ok := s.CurrentRole()
	require.True(t, ok)
	assert.Equal(t, models.RoleDonor, role)

	token, err := s.TokenFor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", token)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", stored.RefreshToken)
}

func TestStore_BeginFailureLeavesRoleUnchanged(t *testing.T) {
	repo := sessionrepo.NewMemoryRepository()
	s := NewStore(repo, nil)
	ctx := context.Background()
	require.NoError(t, s.Begin(ctx, donorSession()))

	repo.SaveErr = errors.New("disk full")
	err := s.Begin(ctx, models.Session{AccessToken: "h", Role: models.RoleHospitalStaff})
	require.Error(t, err)

	role, ok := s.CurrentRole()
	require.True(t, ok)
	assert.Equal(t, models.RoleDonor, role)
}

func TestStore_BeginRejectsIncompleteSession(t *testing.T) {
	s := NewStore(sessionrepo.NewMemoryRepository(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, s.Begin(ctx, models.Session{Role: models.RoleDonor}), ErrInvalidSession)
	assert.ErrorIs(t, s.Begin(ctx, models.Session{AccessToken: "a", Role: "admin"}), ErrInvalidSession)
}

func TestStore_NewLoginReplacesOld(t *testing.T) {
	s := NewStore(sessionrepo.NewMemoryRepository(), nil)
	ctx := context.Background()

	require.NoError(t, s.Begin(ctx, donorSession()))
	require.NoError(t, s.Begin(ctx, models.Session{AccessToken: "h1", Role: models.RoleHospitalStaff}))

	role, _ := s.CurrentRole()
	assert.Equal(t, models.RoleHospitalStaff, role)
	assert.Empty(t, s.RefreshToken())
}

func TestStore_EndClearsMemoryEvenIfStorageFails(t *testing.T) {
	repo := sessionrepo.NewMemoryRepository()
	s := NewStore(repo, nil)
	ctx := context.Background()
	require.NoError(t, s.Begin(ctx, donorSession()))

	repo.ClearErr = errors.New("locked")
	assert.Error(t, s.End(ctx))

	_, ok := s.CurrentRole()
	assert.False(t, ok)
	_, err := s.TokenFor(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
}

func TestStore_OpenRestoresPersistedSession(t *testing.T) {
	repo := sessionrepo.NewMemoryRepository()
	ctx := context.Background()

	first := NewStore(repo, nil)
	require.NoError(t, first.Begin(ctx, models.Session{AccessToken: "h1", RefreshToken: "hr", Role: models.RoleHospitalStaff}))
	require.NoError(t, first.Close())

	second := NewStore(repo, nil)
	require.NoError(t, second.Open(ctx))
	role, ok := second.CurrentRole()
	require.True(t, ok)
	assert.Equal(t, models.RoleHospitalStaff, role)
	assert.Equal(t, "hr", second.RefreshToken())
}

type corruptRepo struct {
	*sessionrepo.MemoryRepository
	cleared bool
}

func (c *corruptRepo) Load(context.Context) (*models.Session, error) {
	if c.cleared {
		return nil, nil
	}
	return nil, sessionrepo.ErrCorrupt
}

func (c *corruptRepo) Clear(ctx context.Context) error {
	c.cleared = true
	return c.MemoryRepository.Clear(ctx)
}

func TestStore_OpenDiscardsCorruptSession(t *testing.T) {
	repo := &corruptRepo{MemoryRepository: sessionrepo.NewMemoryRepository()}
	s := NewStore(repo, nil)

	require.NoError(t, s.Open(context.Background()))
	assert.True(t, repo.cleared)
	_, ok := s.CurrentRole()
	assert.False(t, ok)
}

func TestStore_Rotate(t *testing.T) {
	repo := sessionrepo.NewMemoryRepository()
	s := NewStore(repo, nil)
	ctx := context.Background()

	exp := time.Now().Add(5 * time.Minute).UTC()
	assert.ErrorIs(t, s.Rotate(ctx, "x", "y", nil), client.ErrUnauthenticated)

	require.NoError(t, s.Begin(ctx, donorSession()))
	require.NoError(t, s.Rotate(ctx, "a2", "", &exp))

	token, _ := s.TokenFor(ctx)
	assert.Equal(t, "a2", token)
	assert.Equal(t, "r1", s.RefreshToken(), "empty refresh keeps the previous one")
	assert.Equal(t, &exp, s.Current().ExpiresAt)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", stored.AccessToken)
	assert.Equal(t, models.RoleDonor, stored.Role)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore(sessionrepo.NewMemoryRepository(), nil)
	ctx := context.Background()
	require.NoError(t, s.Begin(ctx, donorSession()))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				_ = s.Rotate(ctx, "a", "", nil)
				return
			}
			_, _ = s.CurrentRole()
			_, _ = s.TokenFor(ctx)
		}(i)
	}
	wg.Wait()

	_, ok := s.CurrentRole()
	assert.True(t, ok)
}
