package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/platform/logger"
	"field-ops-service/internal/services"
)

func seedPresence(t *testing.T, log *SQLPresenceLog) {
	t.Helper()
	require.NoError(t, log.AppendSamples(context.Background(), []domain.PresenceSample{
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 8, 0), IsAtBase: true},
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 8, 30), IsAtBase: false},
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 8, 5), IsAtBase: false},
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 16, 0), IsAtBase: true},
		{VehicleID: "B-100-XYZ", Timestamp: at(2, 17, 0), IsAtBase: true},
		{VehicleID: "B-200-ABC", Timestamp: at(2, 7, 0), IsAtBase: false},
	}))
}

func TestSQLPresenceLog_FirstSampleAfter(t *testing.T) {
	ctx := context.Background()
	log := NewSQLPresenceLog(newTestDB(t), db.SQLite)
	seedPresence(t, log)

	got, err := log.FirstSampleAfter(ctx, "B-100-XYZ", at(2, 8, 0), false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(at(2, 8, 5)), "earliest departure, got %v", got)

	got, err = log.FirstSampleAfter(ctx, "B-100-XYZ", at(2, 8, 5), true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(at(2, 16, 0)), "earliest return, got %v", got)
}

func TestSQLPresenceLog_StrictlyAfter(t *testing.T) {
	log := NewSQLPresenceLog(newTestDB(t), db.SQLite)
	seedPresence(t, log)

	got, err := log.FirstSampleAfter(context.Background(), "B-100-XYZ", at(2, 17, 0), true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLPresenceLog_NoMatch(t *testing.T) {
	log := NewSQLPresenceLog(newTestDB(t), db.SQLite)
	seedPresence(t, log)

	got, err := log.FirstSampleAfter(context.Background(), "B-999-NOP", at(1, 0, 0), false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = log.FirstSampleAfter(context.Background(), "B-200-ABC", at(2, 7, 0), false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLPresenceLog_AppendRejectsBlankVehicle(t *testing.T) {
	log := NewSQLPresenceLog(newTestDB(t), db.SQLite)

	err := log.AppendSamples(context.Background(), []domain.PresenceSample{{Timestamp: at(1, 0, 0)}})
	assert.Error(t, err)
}

func TestReconcilerAgainstSQLPresenceLog(t *testing.T) {
	log := NewSQLPresenceLog(newTestDB(t), db.SQLite)
	seedPresence(t, log)
	r := services.NewReconciler(log, logger.NopLogger{})

	w := r.Reconcile(context.Background(), "B-100-XYZ", at(2, 7, 55))
	require.NotNil(t, w.RealStartDate)
	require.NotNil(t, w.RealCompletionDate)
	assert.True(t, w.RealStartDate.Equal(at(2, 8, 5)))
	assert.True(t, w.RealCompletionDate.Equal(at(2, 16, 0)))

	w = r.Reconcile(context.Background(), "B-200-ABC", at(2, 6, 0))
	require.NotNil(t, w.RealStartDate)
	assert.Nil(t, w.RealCompletionDate)
}
