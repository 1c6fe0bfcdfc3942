package models

import "errors"

// Category classifies a menu item into one of the fixed menu sections.
type Category string

const (
	CategorySet   Category = "SET"
	CategoryMain  Category = "MAIN"
	CategorySnack Category = "SNACK"
	CategoryDrink Category = "DRINK"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategorySet, CategoryMain, CategorySnack, CategoryDrink}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategorySet, CategoryMain, CategorySnack, CategoryDrink:
		return true
	}
	return false
}

// Label returns the customer-facing name for the category.
func (c Category) Label() string {
	switch c {
	case CategorySet:
		return "Set Meals"
	case CategoryMain:
		return "Mains"
	case CategorySnack:
		return "Snacks"
	case CategoryDrink:
		return "Drinks"
	}
	return string(c)
}

// MenuItem represents a purchasable item in the catalog. The ID is assigned
// by the server; clients send an empty ID when creating an item.
type MenuItem struct {
	ID          string   `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description"`
	Price       int      `db:"price" json:"price"`
	Category    Category `db:"category" json:"category"`
	ImageURL    string   `db:"image_url" json:"imageUrl"`
	IsAvailable bool     `db:"is_available" json:"isAvailable"`
}

// MenuItemRequest is used for menu item creation and update.
type MenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	IsAvailable bool     `json:"isAvailable"`
}

var (
	ErrItemNameRequired        = errors.New("item name is required")
	ErrItemDescriptionRequired = errors.New("item description is required")
	ErrItemPriceInvalid        = errors.New("item price must be positive")
	ErrItemCategoryInvalid     = errors.New("unknown item category")
)

// Validate checks the request against the catalog invariants. Prices are in
// integer currency units and must be positive; a free item cannot be listed.
func (r MenuItemRequest) Validate() error {
	if r.Name == "" {
		return ErrItemNameRequired
	}
	if r.Description == "" {
		return ErrItemDescriptionRequired
	}
	if r.Price <= 0 {
		return ErrItemPriceInvalid
	}
	if !r.Category.Valid() {
		return ErrItemCategoryInvalid
	}
	return nil
}

// Item builds a MenuItem from the request, leaving the ID for the server.
func (r MenuItemRequest) Item() MenuItem {
	return MenuItem{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsAvailable: r.IsAvailable,
	}
}
