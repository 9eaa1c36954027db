package lifecycle

import "errors"

// ErrForbidden is returned when the acting account is not a party entitled to the operation.
var ErrForbidden = errors.New("account is not a party to this request")

// ErrListingNotPurchasable is returned when the target listing cannot accept purchase requests.
var ErrListingNotPurchasable = errors.New("listing is not in a purchasable state")

// ErrInvalidOffer is returned when the offered price is not a positive amount.
var ErrInvalidOffer = errors.New("offered price must be positive")
