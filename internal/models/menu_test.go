package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("DESSERT").Valid())
	assert.False(t, Category("").Valid())
}

func TestMenuItemRequestValidate(t *testing.T) {
	valid := MenuItemRequest{
		Name:        "Burger",
		Description: "Beef patty with cheese",
		Price:       95,
		Category:    CategoryMain,
		IsAvailable: true,
	}

	tests := []struct {
		name    string
		mutate  func(*MenuItemRequest)
		wantErr error
	}{
		{"valid", func(r *MenuItemRequest) {}, nil},
		{"zero price", func(r *MenuItemRequest) { r.Price = 0 }, ErrItemPriceInvalid},
		{"missing name", func(r *MenuItemRequest) { r.Name = "" }, ErrItemNameRequired},
		{"missing description", func(r *MenuItemRequest) { r.Description = "" }, ErrItemDescriptionRequired},
		{"negative price", func(r *MenuItemRequest) { r.Price = -1 }, ErrItemPriceInvalid},
		{"unknown category", func(r *MenuItemRequest) { r.Category = "DESSERT" }, ErrItemCategoryInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
