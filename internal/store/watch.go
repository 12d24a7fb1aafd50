package store

// SnapshotWatcher decides whether a snapshot-file change event should reload
// the store. The store's own write-throughs also touch the file; reloading on
// those would replace fresh in-memory state with what was just written and
// risk a feedback loop with the file watcher. Instead of a timer-based
// suppression flag, the watcher compares the store's write generation: if it
// advanced since the last event, the change was ours and is skipped.
type SnapshotWatcher struct {
	store *Store
	seen  uint64
}

// NewSnapshotWatcher returns a watcher synchronized to the store's current
// write generation.
func NewSnapshotWatcher(s *Store) *SnapshotWatcher {
	return &SnapshotWatcher{store: s, seen: s.WriteGeneration()}
}

// OnChange handles one file-change event. It reports whether the store was
// reloaded.
func (w *SnapshotWatcher) OnChange() (bool, error) {
	gen := w.store.WriteGeneration()
	if gen != w.seen {
		w.seen = gen
		return false, nil
	}
	if err := w.store.Reload(); err != nil {
		return false, err
	}
	return true, nil
}
