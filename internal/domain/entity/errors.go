package entity

import "errors"

// Draft validation errors. The service layer maps these to bad-request
// responses; the panel disables the matching action before they can
// ever fire.
var (
	ErrNoProductSelected   = errors.New("no product selected")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrItemIndexOutOfRange = errors.New("item index out of range")
	ErrNegativeTaxPercent  = errors.New("tax percent must not be negative")
)
