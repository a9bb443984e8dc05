package shoplist

import (
	"sync"
	"time"

	"github.com/dukerupert/superlista/internal/model"
)

// DefaultSettleDelay is how long rows stay frozen after a drop.
const DefaultSettleDelay = 100 * time.Millisecond

type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Reconciler owns the local item snapshot and the drag state machine. While
// a drag is active, including the settle window after the drop, the rendered
// rows are frozen and periodic refreshes are dropped.
type Reconciler struct {
	mu          sync.Mutex
	items       []model.Item
	frozen      []Row
	state       DragState
	gen         uint64
	settleDelay time.Duration
}

func NewReconciler(settleDelay time.Duration) *Reconciler {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &Reconciler{items: []model.Item{}, settleDelay: settleDelay}
}

// Replace installs a freshly pulled item set. It reports false and changes
// nothing while dragging.
func (r *Reconciler) Replace(items []model.Item) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Dragging {
		return false
	}
	r.items = append([]model.Item(nil), items...)
	return true
}

// Apply runs an optimistic local mutation against the snapshot.
func (r *Reconciler) Apply(fn func([]model.Item) []model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = fn(append([]model.Item(nil), r.items...))
}

// Find returns the snapshot copy of the item with id.
func (r *Reconciler) Find(id string) (model.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.Item{}, false
}

func (r *Reconciler) Items() []model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Item(nil), r.items...)
}

// Rows returns the frozen rows while dragging, otherwise the rendered snapshot.
func (r *Reconciler) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Dragging {
		return append([]Row(nil), r.frozen...)
	}
	return Render(Organize(r.items))
}

func (r *Reconciler) State() DragState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// BeginDrag freezes the current rows.
func (r *Reconciler) BeginDrag() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Dragging {
		r.frozen = Render(Organize(r.items))
	}
	r.state = Dragging
	r.gen++
}

// EndDrag takes the dropped row sequence. The rows stay frozen exactly as
// dropped until the settle delay passes; the snapshot is rebuilt from the
// dropped order, re-partitioned by each item's current Checked flag. Items
// in the snapshot but absent from rows arrived during the drag; they keep
// their relative order at the head of their partition. The new snapshot
// order is returned.
func (r *Reconciler) EndDrag(rows []Row) []model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := make(map[string]model.Item, len(r.items))
	for _, item := range r.items {
		byID[item.ID] = item
	}

	dropped := make([]model.Item, 0, len(r.items))
	seen := make(map[string]bool, len(r.items))
	for _, row := range rows {
		if row.Kind != RowItem {
			continue
		}
		item, ok := byID[row.Item.ID]
		if !ok || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		dropped = append(dropped, item)
	}
	ordered := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if !seen[item.ID] {
			ordered = append(ordered, item)
		}
	}
	ordered = append(ordered, dropped...)

	r.items = Organize(ordered).Items()
	r.frozen = append([]Row(nil), rows...)
	r.state = Dragging
	r.gen++
	gen := r.gen
	time.AfterFunc(r.settleDelay, func() { r.settle(gen) })

	return append([]model.Item(nil), r.items...)
}

// settle returns to Idle unless a newer drag started since gen.
func (r *Reconciler) settle(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.state != Dragging {
		return
	}
	r.state = Idle
	r.frozen = nil
}
