//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/rolodex/internal/model"
	repo "github.com/dtroode/rolodex/internal/repository/postgres"
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
				"POSTGRES_DB":       "rolodex_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
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
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/rolodex_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestKeyValueRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Ping(ctx))

	kv := repo.NewKeyValueRepository(conn.DB())

	_, err = kv.Get(ctx, "contacts")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "contacts", []byte(`[{"id":1,"name":"Ann","email":"ann@x.com"}]`)))
	require.NoError(t, kv.Set(ctx, "contacts", []byte(`[]`)))

	got, err := kv.Get(ctx, "contacts")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)
}

func TestConnection_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()

	first, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
