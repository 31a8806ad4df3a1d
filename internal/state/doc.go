// Package state provides thread-safe sharing of the loaded record collection.
//
// The background poller writes with Update and the UI reads with Snapshot:
//
//	Poller:                        UI:
//	FetchRecords() ─▶ Update() ──▶ Snapshot() ─▶ engine.SetSource()
//
// Store uses a sync.RWMutex so the UI can read frequently without blocking
// the poller. A failed Update keeps the previous records and records the
// error, so the UI always has the most recent good data to show alongside
// an offline indicator. Generation lets the UI skip rebuilding its engine
// source when no new records have arrived.
//
// The zero Store is ready to use.
package state
