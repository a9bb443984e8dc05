package shoplist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/superlista/internal/grocery"
	"github.com/dukerupert/superlista/internal/model"
)

// ItemStore is the remote item contract. Both store.ItemStore and
// remote.Client satisfy it.
type ItemStore interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	Create(ctx context.Context, form model.ItemForm, addedBy string) (*model.Item, error)
	Update(ctx context.Context, id string, form model.ItemForm) (*model.Item, error)
	Remove(ctx context.Context, id string) error
	SetChecked(ctx context.Context, id string, checked bool) (*model.Item, error)
	Reorder(ctx context.Context, ids []string) error
}

// Recorder appends to the action history. history.Recorder satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry model.HistoryEntry) error
}

// Publisher announces that user-visible state changed. refresh.Bus satisfies it.
type Publisher interface {
	Publish()
}

// Outcome reports a successful mutation. Action is empty when nothing was
// logged; AuditErr is set when logging it failed.
type Outcome struct {
	Item     model.Item
	Action   model.ActionType
	AuditErr error
}

type Config struct {
	Store   ItemStore
	History Recorder
	Signals Publisher
	// Actor returns the logged-in user. A zero user disables history.
	Actor       func() model.User
	SettleDelay time.Duration
	Logger      *slog.Logger
}

// List is the app's view of the shared shopping list.
type List struct {
	store   ItemStore
	history Recorder
	signals Publisher
	actor   func() model.User
	recon   *Reconciler
	logger  *slog.Logger

	mu      sync.Mutex
	loading bool
	err     error
}

func NewList(cfg Config) *List {
	actor := cfg.Actor
	if actor == nil {
		actor = func() model.User { return model.User{} }
	}
	return &List{
		store:   cfg.Store,
		history: cfg.History,
		signals: cfg.Signals,
		actor:   actor,
		recon:   NewReconciler(cfg.SettleDelay),
		logger:  cfg.Logger,
	}
}

// Load pulls the full item set. On failure the previous snapshot stays and
// the error is exposed through Err.
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	items, err := l.store.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	l.err = err
	if err != nil {
		l.logger.Warn("load items", "error", err)
		return err
	}
	if !l.recon.Replace(items) {
		l.logger.Debug("refresh dropped during drag", "items", len(items))
	}
	return nil
}

// Refresh is the scheduled re-pull. It is skipped while dragging.
func (l *List) Refresh(ctx context.Context) error {
	if l.recon.State() == Dragging {
		return nil
	}
	return l.Load(ctx)
}

// Add creates an item at the top of the list.
func (l *List) Add(ctx context.Context, form model.ItemForm) (Outcome, error) {
	form, err := grocery.NormalizeForm(form)
	if err != nil {
		return Outcome{}, err
	}

	user := l.actor()
	created, err := l.store.Create(ctx, form, user.Name)
	if err != nil {
		return Outcome{}, fmt.Errorf("add item: %w", err)
	}
	item := *created

	l.recon.Apply(func(items []model.Item) []model.Item {
		return append([]model.Item{item}, items...)
	})
	return l.finish(ctx, item, model.ActionAdded), nil
}

// Edit replaces the editable fields of an item.
func (l *List) Edit(ctx context.Context, id string, form model.ItemForm) (Outcome, error) {
	form, err := grocery.NormalizeForm(form)
	if err != nil {
		return Outcome{}, err
	}

	updated, err := l.store.Update(ctx, id, form)
	if err != nil {
		return Outcome{}, fmt.Errorf("edit item: %w", err)
	}
	item := *updated

	l.recon.Apply(func(items []model.Item) []model.Item {
		return replaceItem(items, item)
	})
	return l.finish(ctx, item, ""), nil
}

// Delete removes an item and logs whether it was pending or bought.
func (l *List) Delete(ctx context.Context, id string) (Outcome, error) {
	item, err := l.lookup(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	if err := l.store.Remove(ctx, id); err != nil {
		return Outcome{}, fmt.Errorf("delete item: %w", err)
	}

	l.recon.Apply(func(items []model.Item) []model.Item {
		out := items[:0]
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})

	action := model.ActionDeletedPending
	if item.Checked {
		action = model.ActionDeletedCompleted
	}
	return l.finish(ctx, item, action), nil
}

// SetChecked sets the bought flag. Only a false to true transition is
// logged; setting the current value again is a no-op.
func (l *List) SetChecked(ctx context.Context, id string, checked bool) (Outcome, error) {
	item, err := l.lookup(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if item.Checked == checked {
		return Outcome{Item: item}, nil
	}

	updated, err := l.store.SetChecked(ctx, id, checked)
	if err != nil {
		return Outcome{}, fmt.Errorf("set item checked: %w", err)
	}
	item = *updated

	l.recon.Apply(func(items []model.Item) []model.Item {
		return replaceItem(items, item)
	})

	var action model.ActionType
	if checked {
		action = model.ActionCompleted
	}
	return l.finish(ctx, item, action), nil
}

// Toggle flips the bought flag.
func (l *List) Toggle(ctx context.Context, id string) (Outcome, error) {
	item, err := l.lookup(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	return l.SetChecked(ctx, id, !item.Checked)
}

// MarkBought checks an item.
func (l *List) MarkBought(ctx context.Context, id string) (Outcome, error) {
	return l.SetChecked(ctx, id, true)
}

func (l *List) Items() []model.Item  { return l.recon.Items() }
func (l *List) Rows() []Row          { return l.recon.Rows() }
func (l *List) Organized() Organized { return Organize(l.recon.Items()) }
func (l *List) DragState() DragState { return l.recon.State() }

func (l *List) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *List) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// BeginDrag freezes the rendered rows for a drag gesture.
func (l *List) BeginDrag() {
	l.recon.BeginDrag()
}

// EndDrag installs the dropped order and persists it. A failed reorder is
// logged; the next refresh restores the server order.
func (l *List) EndDrag(ctx context.Context, rows []Row) error {
	ordered := l.recon.EndDrag(rows)

	ids := make([]string, len(ordered))
	for i, item := range ordered {
		ids[i] = item.ID
	}
	if err := l.store.Reorder(ctx, ids); err != nil {
		l.logger.Warn("persist item order", "items", len(ids), "error", err)
		return fmt.Errorf("reorder items: %w", err)
	}
	return nil
}

// lookup finds id in the snapshot, falling back to the store.
func (l *List) lookup(ctx context.Context, id string) (model.Item, error) {
	if item, ok := l.recon.Find(id); ok {
		return item, nil
	}
	item, err := l.store.Get(ctx, id)
	if err != nil {
		return model.Item{}, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return model.Item{}, model.ErrNotFound
	}
	return *item, nil
}

// finish logs action for item (when set) and signals a stats refresh.
func (l *List) finish(ctx context.Context, item model.Item, action model.ActionType) Outcome {
	out := Outcome{Item: item}
	user := l.actor()
	if action != "" && user.ID != "" && l.history != nil {
		out.Action = action
		out.AuditErr = l.history.Record(ctx, model.NewHistoryEntry(user.ID, action, item))
	}
	if l.signals != nil {
		l.signals.Publish()
	}
	return out
}

func replaceItem(items []model.Item, item model.Item) []model.Item {
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return items
		}
	}
	return append([]model.Item{item}, items...)
}
