package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestProductUnavailableError(t *testing.T) {
	err := fmt.Errorf("validate products: %w", NewProductUnavailableError("1"))

	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatal("expected error to match ErrProductUnavailable")
	}
	id, ok := UnavailableProductID(err)
	if !ok || id != "1" {
		t.Fatalf("expected product id 1, got %q (ok=%v)", id, ok)
	}
	if got := NewProductUnavailableError("1").Error(); got != "product 1 is not available in stock" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestUnavailableProductID_OtherError(t *testing.T) {
	if _, ok := UnavailableProductID(ErrProductNotFound); ok {
		t.Fatal("expected no product id for unrelated error")
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "client", err: ErrClientNotFound, want: true},
		{name: "wrapped order", err: fmt.Errorf("load: %w", ErrOrderNotFound), want: true},
		{name: "invoice", err: errors.Join(ErrInvoiceNotFound, errors.New("extra")), want: true},
		{name: "persistence", err: ErrPersistence, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no products", err: ErrNoProductsSelected, want: true},
		{name: "unavailable", err: NewProductUnavailableError("1"), want: true},
		{name: "invalid id", err: ErrInvalidID, want: true},
		{name: "invoicing", err: ErrInvoicingFailed, want: false},
		{name: "gateway", err: fmt.Errorf("%w: timeout", ErrPaymentGateway), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}
