//go:build integration

package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/ports"
)

// TestPostgresRepositories runs the SQL adapters against a disposable Postgres.
func TestPostgresRepositories(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "fieldops",
			"POSTGRES_PASSWORD": "fieldops",
			"POSTGRES_DB":       "fieldops",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://fieldops:fieldops@%s:%s/fieldops?sslmode=disable", host, port.Port())
	conn, err := db.Open(ctx, db.Postgres, url, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn, db.Postgres))

	presence := NewSQLPresenceLog(conn, db.Postgres)
	require.NoError(t, presence.AppendSamples(ctx, []domain.PresenceSample{
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 8, 5), IsAtBase: false},
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 16, 0), IsAtBase: true},
	}))

	got, err := presence.FirstSampleAfter(ctx, "B-100-XYZ", at(2, 8, 5), true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(at(2, 16, 0)))

	got, err = presence.FirstSampleAfter(ctx, "B-100-XYZ", at(2, 16, 0), true)
	require.NoError(t, err)
	assert.Nil(t, got)

	repo := NewSQLAssignmentRepository(conn, db.Postgres)
	a := newAssignment(domain.TypeDeschidere, "Ion Popescu", 2)
	a.ID, err = repo.CreateAssignment(ctx, a)
	require.NoError(t, err)

	a.Status = domain.StatusFinalizat
	a.CompletionDate = ptr(at(2, 18, 0))
	require.NoError(t, repo.SaveFinalized(ctx, a, []domain.WorkLog{
		{WorkerName: "Ion Popescu", AssignmentType: a.Type, StartTime: at(2, 8, 0), EndTime: at(2, 18, 0), Hours: 10},
	}))

	completed, err := repo.ListAssignments(ctx, ports.AssignmentFilter{Status: ports.FilterCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, domain.StringList{"Maria Ionescu"}, completed[0].Members)

	stores, err := NewSQLStoreRepository(conn, db.Postgres).GetStores(ctx, []int{101, 205})
	require.NoError(t, err)
	assert.Empty(t, stores)

	logs, err := NewSQLWorkLogRepository(conn, db.Postgres).ListWorkLogs(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.InDelta(t, 10.0, logs[0].Hours, 1e-9)
}
