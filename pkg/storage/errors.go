package storage

import "errors"

// ErrRequestNotFound is returned when no purchase request exists for the given id or document id.
var ErrRequestNotFound = errors.New("purchase request not found")

// ErrListingNotFound is returned when no listing exists for the given id.
var ErrListingNotFound = errors.New("listing not found")

// ErrActiveRequestExists is returned when the buyer already has a non-terminal request on the listing.
var ErrActiveRequestExists = errors.New("an active purchase request already exists for this listing and buyer")

// ErrListingExists is returned when a listing with the same id already exists.
var ErrListingExists = errors.New("listing already exists")

// ErrStateConflict is returned when a transition's status guard fails, i.e. the row
// was no longer in the expected state at write time. Losers of a concurrent race see this.
var ErrStateConflict = errors.New("purchase request not in the expected state")

// ErrDuplicateEvent is returned when a webhook event has already been applied.
var ErrDuplicateEvent = errors.New("event already processed")
