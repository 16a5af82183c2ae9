//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/tokenauth/internal/model"
	repo "github.com/dtroode/tokenauth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tokenauth_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		panic(err)
	}
	dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	require.NoError(t, conn.Ping(ctx))

	ur := repo.NewUserRepository(conn)
	u := model.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	t.Run("create", func(t *testing.T) {
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)
		require.Equal(t, u.Username, saved.Username)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := ur.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.PasswordHash, got.PasswordHash)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", got.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := u
		dup.ID = uuid.New()
		_, err := ur.Create(ctx, dup)
		require.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("duplicate id", func(t *testing.T) {
		dup := u
		dup.Username = "bob"
		_, err := ur.Create(ctx, dup)
		require.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ur.GetByUsername(ctx, "nobody")
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = ur.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		again, err := repo.NewConnection(ctx, dsn)
		require.NoError(t, err)
		again.Close()
	})
}
