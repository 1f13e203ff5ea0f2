package Reports

import (
	"golang.org/x/exp/slices"
	"strings"

	"Vigil/Models"
)

// LeaderboardEntry is one staff member's tally for the day. Keyed on the
// staff id, not the display name, so two people sharing a name are never
// merged.
type LeaderboardEntry struct {
	StaffID   uint   `json:"staff_id"`
	Name      string `json:"name"`
	PhotoURL  string `json:"photo_url"`
	Completed int    `json:"completed"`
	Missed    int    `json:"missed"`
	Pending   int    `json:"pending"`
}

// Leaderboard folds report rows into per-staff counters. Completions are
// credited to the evidence submitter; misses and pendings to the assigned
// staff. Rows with no attributable identity (unassigned tasks) are skipped.
// Results are ordered by completed count descending.
func Leaderboard(rows []TaskRow) []LeaderboardEntry {
	entries := make(map[uint]*LeaderboardEntry)

	tally := func(staffID *uint, name, photo string) *LeaderboardEntry {
		if staffID == nil {
			return nil
		}
		entry, ok := entries[*staffID]
		if !ok {
			entry = &LeaderboardEntry{StaffID: *staffID, Name: name}
			entries[*staffID] = entry
		}
		if entry.PhotoURL == "" && photo != "" {
			entry.PhotoURL = photo
		}
		return entry
	}

	for _, row := range rows {
		switch row.Status {
		case Models.StatusCompleted:
			if entry := tally(row.SubmitterID, row.Submitter, row.SubmitterPhoto); entry != nil {
				entry.Completed++
			}
		case Models.StatusMissed:
			if entry := tally(row.AssignedStaffID, row.AssignedStaff, ""); entry != nil {
				entry.Missed++
			}
		case Models.StatusPending:
			if entry := tally(row.AssignedStaffID, row.AssignedStaff, ""); entry != nil {
				entry.Pending++
			}
		}
	}

	board := make([]LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		board = append(board, *entry)
	}
	slices.SortStableFunc(board, func(a, b LeaderboardEntry) int {
		if a.Completed != b.Completed {
			return b.Completed - a.Completed
		}
		return strings.Compare(a.Name, b.Name)
	})
	return board
}
