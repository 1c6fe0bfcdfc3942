package api

import (
	"errors"

	"github.com/tastyhub/ordering-service/internal/models"
)

var validationErrors = []error{
	models.ErrItemNameRequired,
	models.ErrItemDescriptionRequired,
	models.ErrItemPriceInvalid,
	models.ErrItemCategoryInvalid,
	models.ErrOrderEmpty,
	models.ErrOrderLineInvalid,
	models.ErrOrderNameRequired,
	models.ErrOrderPhoneRequired,
	models.ErrOrderTotalMismatch,
	models.ErrOrderStatusInvalid,
	models.ErrStoreNameRequired,
}

// IsValidation reports whether the error is a request validation failure.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
