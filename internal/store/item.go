package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukerupert/superlista/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// --- List methods ---

func scanList(scanner interface{ Scan(...any) error }) (*model.GroceryList, error) {
	var l model.GroceryList
	var createdBy sql.NullString
	err := scanner.Scan(&l.ID, &l.Name, &createdBy, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		l.CreatedBy = &createdBy.String
	}
	return &l, nil
}

const listCols = `id, name, created_by, created_at`

func (s *ItemStore) GetDefaultList(ctx context.Context) (*model.GroceryList, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listCols+` FROM lists WHERE name = ?`, model.DefaultListName)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get default list: %w", err)
	}
	return l, nil
}

// --- Item methods ---

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var checked int
	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &item.Quantity, &item.Unit,
		&item.Place, &item.Status, &item.AddedBy, &checked, &item.SortOrder,
		&item.AddedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Checked = checked != 0
	return &item, nil
}

const itemCols = `id, list_id, name, qty, unit, place, status, added_by, checked, sort_order, created_at, updated_at`

// itemOrder puts manually ordered items first, then newest first.
const itemOrder = `ORDER BY sort_order ASC, created_at DESC, rowid DESC`

func (s *ItemStore) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemCols+` FROM items `+itemOrder)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Get(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Create inserts an unchecked item at the top of the default list.
func (s *ItemStore) Create(ctx context.Context, form model.ItemForm, addedBy string) (*model.Item, error) {
	list, err := s.GetDefaultList(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("create item: default list missing")
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, list_id, name, qty, unit, place, status, added_by, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MIN(sort_order), 0) - 1 FROM items WHERE list_id = ?))`,
		id, list.ID, form.Name, form.Quantity, form.Unit, form.Place, form.Status, addedBy, list.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *ItemStore) Update(ctx context.Context, id string, form model.ItemForm) (*model.Item, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, qty = ?, unit = ?, place = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		form.Name, form.Quantity, form.Unit, form.Place, form.Status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if err := requireRow(result); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ItemStore) SetChecked(ctx context.Context, id string, checked bool) (*model.Item, error) {
	item, _, err := s.TransitionChecked(ctx, id, checked)
	return item, err
}

// TransitionChecked sets the checked flag and reports whether this call
// changed it. The flag is compared and written in one statement, so of two
// concurrent identical calls exactly one reports changed.
func (s *ItemStore) TransitionChecked(ctx context.Context, id string, checked bool) (*model.Item, bool, error) {
	var checkedInt int
	if checked {
		checkedInt = 1
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE items SET checked = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND checked != ?`,
		checkedInt, id, checkedInt)
	if err != nil {
		return nil, false, fmt.Errorf("set item checked: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, model.ErrNotFound
	}
	return item, n > 0, nil
}

func (s *ItemStore) Remove(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireRow(result)
}

// Reorder assigns sort_order by position in ids. Unknown ids are ignored.
func (s *ItemStore) Reorder(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE items SET sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("reorder item %s: %w", id, err)
		}
	}
	return tx.Commit()
}
