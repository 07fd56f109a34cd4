package types

// SyncState tracks where a synchronization run is in its pipeline. The
// phases run strictly sequentially; only checksum computation inside the
// tracking phase is parallel.
type SyncState string

const (
	SyncIdle          SyncState = "idle"
	SyncPlanned       SyncState = "planned"
	SyncMerging       SyncState = "merging"
	SyncTracking      SyncState = "tracking"
	SyncDone          SyncState = "done"
	SyncFailedPartial SyncState = "failed-partial"
)
