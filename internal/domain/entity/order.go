package entity

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// AdminStatus tracks an order through the back-office workflow.
type AdminStatus string

// CustomerStatus is the customer-facing view of the same progress.
type CustomerStatus string

const (
	AdminStatusPending   AdminStatus = "en_attente"
	AdminStatusConfirmed AdminStatus = "confirmee"
	AdminStatusDelivered AdminStatus = "livree"
	AdminStatusCancelled AdminStatus = "annulee"

	CustomerStatusPlaced    CustomerStatus = "commande_effectuee"
	CustomerStatusConfirmed CustomerStatus = "commande_confirmee"
	CustomerStatusDelivered CustomerStatus = "commande_livree"
	CustomerStatusCancelled CustomerStatus = "commande_annulee"
)

var validNextAdminStatus = map[AdminStatus]map[AdminStatus]bool{
	AdminStatusPending:   {AdminStatusConfirmed: true, AdminStatusCancelled: true},
	AdminStatusConfirmed: {AdminStatusDelivered: true, AdminStatusCancelled: true},
	AdminStatusDelivered: {},
	AdminStatusCancelled: {},
}

// customerStatusFor maps each admin status to the customer-facing status that
// accompanies it.
var customerStatusFor = map[AdminStatus]CustomerStatus{
	AdminStatusPending:   CustomerStatusPlaced,
	AdminStatusConfirmed: CustomerStatusConfirmed,
	AdminStatusDelivered: CustomerStatusDelivered,
	AdminStatusCancelled: CustomerStatusCancelled,
}

// CanTransition reports whether the back-office may move an order from one
// admin status to another.
func CanTransition(from, to AdminStatus) bool {
	return validNextAdminStatus[from][to]
}

// CustomerStatusOf returns the customer-facing status paired with an admin status.
func CustomerStatusOf(status AdminStatus) CustomerStatus {
	return customerStatusFor[status]
}

// OrderItem is the immutable snapshot of one cart line taken at commit time.
// Later catalog changes never affect it.
type OrderItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	UnitPrice  float64   `json:"unit_price"`
	QuantityKg float64   `json:"quantity_kg"`
	Total      int64     `json:"total"` // Line total rounded to whole F CFA.
	ImageURL   string    `json:"image_url"`
}

// NewOrderItem snapshots a reconciled line, rounding the line total to whole
// F CFA the way the storefront has always displayed it.
func NewOrderItem(line *ReconciledLine) OrderItem {
	return OrderItem{
		ProductID:  line.ProductID,
		Name:       line.Name,
		UnitPrice:  line.UnitPrice,
		QuantityKg: line.QuantityKg,
		Total:      int64(math.Round(line.Subtotal())),
		ImageURL:   line.ImageURL,
	}
}

// Order is the durable record produced by a checkout commit. Everything except
// the two statuses and the penalty flag is immutable once written.
type Order struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"` // Human-shareable, e.g. VM-20260828-7K2QX9.

	UserID uuid.UUID `json:"user_id"`

	// Customer identity snapshot, captured at order time rather than joined live.
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerCommune string `json:"customer_commune"`

	Items []OrderItem `json:"items"`
	Total int64       `json:"total"` // Sum of the rounded line totals, in whole F CFA.

	AdminStatus    AdminStatus    `json:"admin_status"`
	CustomerStatus CustomerStatus `json:"customer_status"`
	PenaltyActive  bool           `json:"penalty_active"`

	CreatedAt time.Time `json:"created_at"`
}

const referenceSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const referenceSuffixLen = 6

// NewReference builds an order reference of the form PREFIX-YYYYMMDD-SUFFIX
// with a random base-36 suffix. Uniqueness is probabilistic, not guaranteed;
// acceptable at this scale and enforced loosely by a unique index.
func NewReference(prefix string, now time.Time) string {
	suffix := make([]byte, referenceSuffixLen)
	for i := range suffix {
		suffix[i] = referenceSuffixAlphabet[rand.IntN(len(referenceSuffixAlphabet))]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}
