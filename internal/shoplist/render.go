// Package shoplist holds the app-side shopping list: optimistic local state
// over an item store, checked/unchecked rendering, and drag reconciliation.
package shoplist

import "github.com/dukerupert/superlista/internal/model"

// DividerText labels the row separating pending from bought items.
const DividerText = "Comprado"

// Organized is the list split by checked state, each side in snapshot order.
type Organized struct {
	Unchecked []model.Item
	Checked   []model.Item
}

// Organize partitions items by Checked, preserving relative order.
func Organize(items []model.Item) Organized {
	o := Organized{Unchecked: []model.Item{}, Checked: []model.Item{}}
	for _, item := range items {
		if item.Checked {
			o.Checked = append(o.Checked, item)
		} else {
			o.Unchecked = append(o.Unchecked, item)
		}
	}
	return o
}

// Items returns the unchecked items followed by the checked ones.
func (o Organized) Items() []model.Item {
	out := make([]model.Item, 0, len(o.Unchecked)+len(o.Checked))
	out = append(out, o.Unchecked...)
	return append(out, o.Checked...)
}

type RowKind int

const (
	RowItem RowKind = iota
	RowDivider
)

// Row is one line of the rendered list.
type Row struct {
	Kind RowKind
	Item model.Item
	Text string
}

// Key identifies the row across renders.
func (r Row) Key() string {
	if r.Kind == RowDivider {
		return "divider"
	}
	return r.Item.ID
}

// Render lays out unchecked rows, a divider when both sides are non-empty,
// then checked rows.
func Render(o Organized) []Row {
	rows := make([]Row, 0, len(o.Unchecked)+len(o.Checked)+1)
	for _, item := range o.Unchecked {
		rows = append(rows, Row{Kind: RowItem, Item: item})
	}
	if len(o.Unchecked) > 0 && len(o.Checked) > 0 {
		rows = append(rows, Row{Kind: RowDivider, Text: DividerText})
	}
	for _, item := range o.Checked {
		rows = append(rows, Row{Kind: RowItem, Item: item})
	}
	return rows
}
