package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutState_CanAdvance(t *testing.T) {
	cases := []struct {
		from, to CheckoutState
		want     bool
	}{
		{CheckoutIdle, CheckoutReviewing, true},
		{CheckoutIdle, CheckoutCommitting, false},
		{CheckoutReviewing, CheckoutCommitting, true},
		{CheckoutReviewing, CheckoutIdle, true},
		{CheckoutCommitting, CheckoutCommitted, true},
		{CheckoutCommitting, CheckoutFailed, true},
		{CheckoutCommitting, CheckoutReviewing, false},
		{CheckoutCommitted, CheckoutReviewing, false},
		{CheckoutFailed, CheckoutCommitting, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanAdvance(c.to), "%s -> %s", c.from, c.to)
	}
}
