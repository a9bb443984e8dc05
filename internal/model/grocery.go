package model

import "time"

// DefaultListName is the single shared list every item belongs to.
const DefaultListName = "Lista Principal"

type GroceryList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"qty"`
	Unit      string    `json:"unit"`
	Place     string    `json:"place"`
	Status    string    `json:"status"`
	AddedBy   string    `json:"added_by"`
	AddedAt   time.Time `json:"created_at"`
	Checked   bool      `json:"checked"`
	SortOrder int       `json:"sort_order"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemForm is the add/edit input for an item.
type ItemForm struct {
	Name     string `json:"name" validate:"required,max=120"`
	Quantity int    `json:"qty" validate:"min=1"`
	Unit     string `json:"unit" validate:"required,grocery_unit"`
	Place    string `json:"place" validate:"required,grocery_place"`
	Status   string `json:"status" validate:"required,grocery_status"`
}

// Apply copies the editable fields of the form onto the item.
func (f ItemForm) Apply(item Item) Item {
	item.Name = f.Name
	item.Quantity = f.Quantity
	item.Unit = f.Unit
	item.Place = f.Place
	item.Status = f.Status
	return item
}
