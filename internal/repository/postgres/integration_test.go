//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nivelab/authcore/internal/model"
	repo "github.com/nivelab/authcore/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "authcore_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/authcore_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@x.com",
		Nickname:     "Alice",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		IsActive:     true,
	}
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.True(t, saved.IsActive)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = ur.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_UniqueConflicts(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	first := model.User{
		ID:           uuid.New(),
		Username:     "bob",
		Email:        "bob@x.com",
		PasswordHash: "h",
		IsActive:     true,
	}
	_, err = ur.Create(ctx, first)
	require.NoError(t, err)

	_, err = ur.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     "bob",
		Email:        "bob2@x.com",
		PasswordHash: "h",
		IsActive:     true,
	})
	require.ErrorIs(t, err, model.ErrUsernameTaken)

	_, err = ur.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     "bob2",
		Email:        "bob@x.com",
		PasswordHash: "h",
		IsActive:     true,
	})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := model.User{
		ID:           uuid.New(),
		Username:     "carol",
		Email:        "carol@x.com",
		PasswordHash: "old-hash",
		IsActive:     true,
	}
	_, err = ur.Create(ctx, u)
	require.NoError(t, err)

	require.NoError(t, ur.UpdatePasswordHash(ctx, u.ID, "new-hash"))

	got, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	err = ur.UpdatePasswordHash(ctx, uuid.New(), "x")
	require.ErrorIs(t, err, model.ErrNotFound)
}
