package entity

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateReportsField(t *testing.T) {
	tests := []struct {
		name  string
		rec   Record
		field string
	}{
		{
			name:  "plane capacity out of range",
			rec:   &PlaneRecord{Registration: "TC-12345", Model: "A320", Manufacturer: "Airbus", Capacity: 50, Status: "active"},
			field: "capacity",
		},
		{
			name:  "payment negative amount",
			rec:   &PaymentRecord{PaymentID: "p", UserID: "u", Amount: decimal.NewFromInt(-5), Currency: Currency, PaymentMethod: "paypal", Status: "active"},
			field: "amount",
		},
		{
			name:  "bank short card number",
			rec:   &BankRecord{ID: "x", CardNumber: "1234"},
			field: "card_number",
		},
		{
			name:  "user missing name",
			rec:   &UserRecord{},
			field: "name",
		},
		{
			name:  "employee bad role",
			rec:   &EmployeeRecord{Employee: EmployeeDetails{EmployeeID: "EMP1", Name: "a", Surname: "b", Email: "e", Phone: "p", Gender: "male", BirthDate: "d", HireDate: "h", Role: "pilot"}},
			field: "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Expected FieldError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Expected field '%s', got '%s'", tt.field, fe.Field)
			}
		})
	}
}

func TestRefundReasonTooLong(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	rec := &RefundRecord{
		RefundID:  "r",
		PaymentID: "p",
		Amount:    decimal.NewFromInt(10),
		Currency:  Currency,
		Reason:    string(long),
		Status:    "active",
	}
	var fe *FieldError
	if err := rec.Validate(); !errors.As(err, &fe) || fe.Field != "reason" {
		t.Errorf("Expected reason error, got %v", err)
	}
}
