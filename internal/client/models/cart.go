package models

// CartDTO is the server's cart for one order identifier.
type CartDTO struct {
	Items []CartItemDTO `json:"items"`
}

// CartItemDTO is a cart line as the server returns it.
type CartItemDTO struct {
	ID         int64       `json:"id"`
	MenuItemID int64       `json:"menuItemId"`
	Quantity   int         `json:"quantity"`
	MenuItem   MenuItemRef `json:"menuItem"`
}

// MenuItemRef is the menu item embedded in a cart line.
type MenuItemRef struct {
	Name string `json:"name"`
}

// CartLine is one line of the local cart view.
type CartLine struct {
	ID         int64  `json:"id"`
	MenuItemID int64  `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Name       string `json:"name"`
}

// Line projects a server line into the view shape.
func (d CartItemDTO) Line() CartLine {
	return CartLine{
		ID:         d.ID,
		MenuItemID: d.MenuItemID,
		Quantity:   d.Quantity,
		Name:       d.MenuItem.Name,
	}
}

// NewCartItem is the body of an add-line request.
type NewCartItem struct {
	MenuItemID int64          `json:"menuItemId"`
	Quantity   int            `json:"quantity"`
	Price      int64          `json:"price"`
	Meta       map[string]any `json:"meta"`
}

// AddItemRequest is what the UI asks the cart to add. Quantity 0 means 1.
type AddItemRequest struct {
	MenuItemID int64
	Quantity   int
	Price      int64
	Name       string
	Meta       map[string]any
}
