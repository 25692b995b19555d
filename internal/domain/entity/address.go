package entity

// AddressUndefined is the marker shown when the address directory has no entry
// for the customer's commune. Checkout still proceeds; address availability is
// not a precondition for ordering.
const AddressUndefined = "Adresse non définie pour cette commune"

// LocalAddress maps a commune to the pickup/delivery address used for orders
// placed from that commune.
type LocalAddress struct {
	Commune string `json:"commune"`
	Address string `json:"address"`
}
