package service

import (
	"testing"

	"github.com/laptopstore-next/internal/constants"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipping, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusPending, false},
		{constants.OrderStatusShipping, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipping, constants.OrderStatusCancelled, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusPending, constants.OrderStatusPending, false},
		{"", constants.OrderStatusPending, false},
		{"unknown", constants.OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransitionOrderStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestCanTransitionOrderStatusCaseInsensitive(t *testing.T) {
	if !CanTransitionOrderStatus(" Pending ", "PROCESSING") {
		t.Fatalf("expected normalized input to be accepted")
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{"pending", "processing", "shipping", "delivered", "cancelled"} {
		if !IsValidOrderStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if IsValidOrderStatus("paid") {
		t.Fatalf("paid is a payment status, not an order status")
	}
}
