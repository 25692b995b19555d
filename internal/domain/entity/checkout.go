package entity

// CheckoutState names the phases of the checkout workflow. Idle and Reviewing
// never auto-transition; only an explicit user action advances them.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutReviewing  CheckoutState = "reviewing"
	CheckoutCommitting CheckoutState = "committing"
	CheckoutCommitted  CheckoutState = "committed"
	CheckoutFailed     CheckoutState = "failed"
)

var validNextCheckoutState = map[CheckoutState]map[CheckoutState]bool{
	CheckoutIdle:       {CheckoutReviewing: true},
	CheckoutReviewing:  {CheckoutCommitting: true, CheckoutIdle: true},
	CheckoutCommitting: {CheckoutCommitted: true, CheckoutFailed: true},
	CheckoutCommitted:  {},
	CheckoutFailed:     {},
}

// CanAdvance reports whether the checkout workflow may move between two states.
func (s CheckoutState) CanAdvance(to CheckoutState) bool {
	return validNextCheckoutState[s][to]
}
