package csvtable

// Observer is notified of changes to a Table. Calls are synchronous and made
// before the mutating method returns.
type Observer interface {
	// CellChanged is called after SetCell committed a value.
	CellChanged(row, col int)
	// ModelReset is called after a load replaced the whole document.
	ModelReset()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnCellChanged func(row, col int)
	OnModelReset  func()
}

// CellChanged implements Observer.
func (f ObserverFuncs) CellChanged(row, col int) {
	if f.OnCellChanged != nil {
		f.OnCellChanged(row, col)
	}
}

// ModelReset implements Observer.
func (f ObserverFuncs) ModelReset() {
	if f.OnModelReset != nil {
		f.OnModelReset()
	}
}

type subscription struct {
	observer Observer
}

// Subscribe registers o and returns a function that unregisters it. Calling
// the returned function more than once is harmless.
func (t *Table) Subscribe(o Observer) (unsubscribe func()) {
	sub := &subscription{observer: o}
	t.subscriptions = append(t.subscriptions, sub)
	return func() {
		for i, s := range t.subscriptions {
			if s == sub {
				t.subscriptions = append(t.subscriptions[:i:i], t.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// observers returns a snapshot so callbacks may unsubscribe while being notified.
func (t *Table) observers() []Observer {
	out := make([]Observer, len(t.subscriptions))
	for i, s := range t.subscriptions {
		out[i] = s.observer
	}
	return out
}

func (t *Table) notifyCellChanged(row, col int) {
	for _, o := range t.observers() {
		o.CellChanged(row, col)
	}
}

func (t *Table) notifyReset() {
	for _, o := range t.observers() {
		o.ModelReset()
	}
}
