package service

import (
	"testing"

	"github.com/roikaa/tamshopex/internal/constants"
)

func TestNormalizeOrderStatus(t *testing.T) {
	cases := map[string]string{
		"pending":      constants.OrderStatusPending,
		" Shipped ":    constants.OrderStatusShipped,
		"DELIVERED":    constants.OrderStatusDelivered,
		"processing\n": constants.OrderStatusProcessing,
	}
	for input, want := range cases {
		if got := NormalizeOrderStatus(input); got != want {
			t.Fatalf("normalize %q want %q got %q", input, want, got)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	valid := []string{"PENDING", "processing", " shipped", "Delivered", "CANCELLED"}
	for _, status := range valid {
		if !IsValidOrderStatus(status) {
			t.Fatalf("%q should be valid", status)
		}
	}
	invalid := []string{"", "REFUNDED", "DONE", "cancelled!"}
	for _, status := range invalid {
		if IsValidOrderStatus(status) {
			t.Fatalf("%q should be invalid", status)
		}
	}
}
