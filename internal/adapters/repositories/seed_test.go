package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/ports"
)

const seedJSON = `{
  "users": [
    {"name": "Ion Popescu", "role": "admin"},
    {"name": "Maria Ionescu"}
  ],
  "stores": [
    {"store_id": 101, "description": "Mega Image Titan", "city": "Bucuresti", "county": "Bucuresti"}
  ],
  "assignments": [
    {
      "type": "Interventie",
      "team_lead": "Ion Popescu",
      "members": "[\"Maria Ionescu\"]",
      "store_number": 101,
      "store_points": ["101", 205],
      "car_plate": "B-100-XYZ",
      "start_date": "2026-03-02T08:00:00Z",
      "created_at": "2026-03-02T07:30:00Z"
    }
  ],
  "presence": [
    {"car_plate": "B-100-XYZ", "timestamp": "2026-03-02T08:05:00Z", "was_near_chitila": false},
    {"car_plate": "B-100-XYZ", "timestamp": "2026-03-02T16:00:00Z", "was_near_chitila": true}
  ]
}`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	path := writeSeed(t, seedJSON)

	stats, err := SeedFromJSON(ctx, conn, db.SQLite, path)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{Users: 2, Stores: 1, Assignments: 1, Samples: 2}, stats)

	list, err := NewSQLAssignmentRepository(conn, db.SQLite).ListAssignments(ctx, ports.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StringList{"Maria Ionescu"}, list[0].Members)
	assert.Equal(t, domain.IntList{101, 205}, list[0].StorePoints)
	assert.Equal(t, domain.StatusInDeplasare, list[0].Status)

	got, err := NewSQLPresenceLog(conn, db.SQLite).FirstSampleAfter(ctx, "B-100-XYZ", at(2, 8, 5), true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(at(2, 16, 0)))

	// A second run only refreshes users and stores.
	stats, err = SeedFromJSON(ctx, conn, db.SQLite, path)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{Users: 2, Stores: 1}, stats)

	users, err := NewSQLUserRepository(conn, db.SQLite).ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Role)
	assert.Equal(t, "user", users[1].Role)
}

func TestSeedFromJSON_RejectsUnknownType(t *testing.T) {
	path := writeSeed(t, `{"assignments": [{"type": "Picnic", "team_lead": "Ion", "start_date": "2026-03-02T08:00:00Z"}]}`)

	_, err := SeedFromJSON(context.Background(), newTestDB(t), db.SQLite, path)
	assert.ErrorContains(t, err, "unknown type")
}

func TestSeedFromJSON_MissingFile(t *testing.T) {
	_, err := SeedFromJSON(context.Background(), newTestDB(t), db.SQLite, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
