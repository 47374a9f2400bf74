package reveal

// watcher observes subtree mutations under the document root. Inserted
// trackable elements are debounced into one batch; removed ones are pruned
// at once.
type watcher struct {
	host     Host
	sel      Selector
	batch    *Batcher[*Element]
	obs      Observer
	onAdd    func([]*Element)
	onRemove func(*Element)
	// onSweep runs after a delivery that removed nodes. A disposed subtree
	// is already unlinked by then, so walking the removed node does not
	// reach its descendants.
	onSweep func()
}

func newWatcher(h Host, sel Selector, cfg Config, onAdd func([]*Element), onRemove func(*Element), onSweep func()) *watcher {
	w := &watcher{host: h, sel: sel, onAdd: onAdd, onRemove: onRemove, onSweep: onSweep}
	w.batch = NewBatcher(h, cfg.MutationWindow, w.flush)
	return w
}

// start begins observing root. Calling start twice is a no-op.
func (w *watcher) start(root *Element) {
	if w.obs != nil {
		return
	}
	w.obs = w.host.ObserveMutations(root, w.handle)
}

// stop disconnects the mutation handle and drops pending insertions.
func (w *watcher) stop() {
	if w.obs != nil {
		w.obs.Disconnect()
		w.obs = nil
	}
	w.batch.Stop()
}

func (w *watcher) handle(recs []MutationRecord) {
	removed := false
	for _, rec := range recs {
		removed = removed || len(rec.Removed) > 0
		for _, n := range rec.Removed {
			n.Walk(func(e *Element) bool {
				w.onRemove(e)
				return true
			})
		}
		for _, n := range rec.Added {
			n.Walk(func(e *Element) bool {
				if w.sel.Matches(e) {
					w.batch.Add(e)
				}
				return true
			})
		}
	}
	if removed && w.onSweep != nil {
		w.onSweep()
	}
}

func (w *watcher) flush(els []*Element) {
	w.onAdd(els)
}
