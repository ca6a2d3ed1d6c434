package domain

import "time"

// TypeSyncResult is the outcome of fetching and reconciling one
// provider place type within a synchronization run.
type TypeSyncResult struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

// SyncResult summarizes one synchronization run. A run fails as a
// whole only when every type failed; otherwise partial results are
// reconciled and reported per type.
type SyncResult struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Total      int              `json:"total"`
	Swept      int64            `json:"swept"`
	Types      []TypeSyncResult `json:"types"`
}
