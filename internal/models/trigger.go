package models

import "sort"

// Trigger names a business event that activates workflow definitions.
type Trigger string

const (
	TriggerOrderCreated    Trigger = "order-created"
	TriggerOrderCompleted  Trigger = "order-completed"
	TriggerOrderCancelled  Trigger = "order-cancelled"
	TriggerPaymentReceived Trigger = "payment-received"
	TriggerPayoutRequested Trigger = "payout-requested"
	TriggerKYCSubmitted    Trigger = "kyc-submitted"
	TriggerKYCApproved     Trigger = "kyc-approved"
	TriggerKYCRejected     Trigger = "kyc-rejected"
	TriggerUserRegistered  Trigger = "user-registered"
	TriggerScheduled       Trigger = "scheduled"
)

var triggerDescriptions = map[Trigger]string{
	TriggerOrderCreated:    "A buy or sell order was placed by a client",
	TriggerOrderCompleted:  "An order was settled and the crypto leg delivered",
	TriggerOrderCancelled:  "An order was cancelled by the client or an admin",
	TriggerPaymentReceived: "A fiat payment was matched to an order",
	TriggerPayoutRequested: "A client requested a fiat payout",
	TriggerKYCSubmitted:    "A client submitted a KYC verification",
	TriggerKYCApproved:     "A KYC provider approved a verification",
	TriggerKYCRejected:     "A KYC provider rejected a verification",
	TriggerUserRegistered:  "A new client account was registered",
	TriggerScheduled:       "Fired by the scheduler for definitions carrying a cron schedule",
}

// IsValid reports whether t belongs to the trigger catalog.
func (t Trigger) IsValid() bool {
	_, ok := triggerDescriptions[t]
	return ok
}

// Description returns the catalog description of the trigger.
func (t Trigger) Description() string {
	return triggerDescriptions[t]
}

// TriggerInfo describes one entry of the trigger catalog.
type TriggerInfo struct {
	Name        Trigger `json:"name" example:"order-created"`
	Description string  `json:"description" example:"A buy or sell order was placed by a client"`
} // @name TriggerInfo

// TriggerCatalog returns every known trigger sorted by name.
func TriggerCatalog() []TriggerInfo {
	out := make([]TriggerInfo, 0, len(triggerDescriptions))
	for name := range triggerDescriptions {
		out = append(out, TriggerInfo{Name: name, Description: name.Description()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
