package Reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Vigil/Models"
)

func ptr(id uint) *uint { return &id }

func TestLeaderboardAttribution(t *testing.T) {
	rows := []TaskRow{
		{Status: Models.StatusCompleted, SubmitterID: ptr(1), Submitter: "Ana"},
		{Status: Models.StatusCompleted, SubmitterID: ptr(1), Submitter: "Ana"},
		{Status: Models.StatusMissed, AssignedStaffID: ptr(2), AssignedStaff: "Luis"},
	}

	board := Leaderboard(rows)
	require.Len(t, board, 2)

	assert.Equal(t, "Ana", board[0].Name)
	assert.Equal(t, 2, board[0].Completed)
	assert.Equal(t, 0, board[0].Missed)

	assert.Equal(t, "Luis", board[1].Name)
	assert.Equal(t, 0, board[1].Completed)
	assert.Equal(t, 1, board[1].Missed)
}

func TestLeaderboardPendingCreditsAssignee(t *testing.T) {
	rows := []TaskRow{
		{Status: Models.StatusPending, AssignedStaffID: ptr(3), AssignedStaff: "Eva"},
		{Status: Models.StatusCompleted, SubmitterID: ptr(3), Submitter: "Eva"},
	}

	board := Leaderboard(rows)
	require.Len(t, board, 1)
	assert.Equal(t, 1, board[0].Completed)
	assert.Equal(t, 1, board[0].Pending)
}

func TestLeaderboardSkipsUnassignedRows(t *testing.T) {
	rows := []TaskRow{
		{Status: Models.StatusMissed},
		{Status: Models.StatusCompleted},
		{Status: Models.StatusCompleted, SubmitterID: ptr(1), Submitter: "Ana"},
	}

	board := Leaderboard(rows)
	require.Len(t, board, 1)
	assert.Equal(t, "Ana", board[0].Name)
}

func TestLeaderboardBackfillsPhoto(t *testing.T) {
	// A miss carries no photo; the later completion for the same person does.
	rows := []TaskRow{
		{Status: Models.StatusMissed, AssignedStaffID: ptr(5), AssignedStaff: "Ana"},
		{Status: Models.StatusCompleted, SubmitterID: ptr(5), Submitter: "Ana",
			SubmitterPhoto: "https://files.test/ana.jpg"},
	}

	board := Leaderboard(rows)
	require.Len(t, board, 1)
	assert.Equal(t, "https://files.test/ana.jpg", board[0].PhotoURL)
	assert.Equal(t, 1, board[0].Completed)
	assert.Equal(t, 1, board[0].Missed)
}

func TestLeaderboardKeyedOnIdentityNotName(t *testing.T) {
	// Two different people sharing a display name stay separate entries.
	rows := []TaskRow{
		{Status: Models.StatusCompleted, SubmitterID: ptr(1), Submitter: "Ana"},
		{Status: Models.StatusCompleted, SubmitterID: ptr(2), Submitter: "Ana"},
	}

	board := Leaderboard(rows)
	assert.Len(t, board, 2)
}
