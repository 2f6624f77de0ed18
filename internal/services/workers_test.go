package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-ops-service/internal/domain"
)

func TestListWorkers(t *testing.T) {
	gpsStart := at(10, 5)
	active := activeAssignment(5)
	active.GPSStartDate = &gpsStart
	done := activeAssignment(6)
	done.TeamLead = "Dan Stan"
	done.Members = nil
	done.Status = domain.StatusFinalizat

	svc := &WorkerService{
		Users: memoryUsers{
			{ID: 1, Name: "Ion Popescu"},
			{ID: 2, Name: "Dan Stan"},
			{ID: 3, Name: "Ana Marin"},
		},
		Assignments: newMemoryAssignments(active, done),
		WorkLogs:    memoryWorkLogs{logs: sampleLogs()},
	}

	got, err := svc.ListWorkers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	ion := got[0]
	assert.Equal(t, domain.WorkerInDeplasare, ion.Status)
	require.NotNil(t, ion.CurrentAssignmentID)
	assert.Equal(t, int64(5), *ion.CurrentAssignmentID)
	assertTime(t, "current start", ion.CurrentAssignmentStart, gpsStart)
	assert.Equal(t, 6.5, ion.TotalHours)
	assert.Equal(t, 2, ion.AssignmentCount)

	dan := got[1]
	assert.Equal(t, domain.WorkerLiber, dan.Status)
	assert.Nil(t, dan.CurrentAssignmentID)
	assert.Equal(t, 15.0, dan.TotalHours)
	assert.Equal(t, 2, dan.StoreCount)
	require.NotNil(t, dan.LastCompletionDate)

	ana := got[2]
	assert.Equal(t, domain.WorkerLiber, ana.Status)
	assert.Zero(t, ana.TotalHours)
	assert.Nil(t, ana.LastCompletionDate)
}
