package notifications

// EventType identifies the lifecycle transition a notification reports.
type EventType string

const (
	EventRequestCreated   EventType = "requestCreated"
	EventRequestAccepted  EventType = "requestAccepted"
	EventRequestRejected  EventType = "requestRejected"
	EventContractSent     EventType = "contractSent"
	EventContractSigned   EventType = "contractSigned"
	EventContractDeclined EventType = "contractDeclined"
	EventContractFailed   EventType = "contractFailed"
	EventRequestCompleted EventType = "requestCompleted"
	EventRequestCancelled EventType = "requestCancelled"
	EventRequestExpired   EventType = "requestExpired"
)

// Notification is a single lifecycle event addressed to one account.
type Notification struct {
	AccountId string    `json:"account_id"`
	Type      EventType `json:"type"`
	RequestId string    `json:"request_id"`
	ListingId string    `json:"listing_id"`
	SignUrl   string    `json:"sign_url,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}
