package fluentsql

import (
	"errors"
	"testing"
)

// TestAggregate_FieldValidation tests the select-manifest membership rule
func TestAggregate_FieldValidation(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar()).Table("orders").Select("id", "amount")

	// Manifest dışı alan reddedilir
	_, err := qb.Sum("price")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound for undeclared field, got %v", err)
	}

	// "*" her zaman geçerlidir (bağlantı yokken derleme sonrası exec fail eder)
	_, err = qb.Count("*")
	if errors.Is(err, ErrColumnNotFound) {
		t.Error("Count(*) should pass field validation")
	}

	// Manifest içi alan geçerlidir
	_, err = qb.Sum("amount")
	if errors.Is(err, ErrColumnNotFound) {
		t.Error("Sum on a declared column should pass field validation")
	}
}

// TestAggregate_StarSelectAllowsAnyField tests that a bare select allows any field
func TestAggregate_StarSelectAllowsAnyField(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar()).Table("orders")

	// Select listesi boş → manifest [*] → her alan geçer
	_, err := qb.Sum("amount")
	if errors.Is(err, ErrColumnNotFound) {
		t.Error("Bare select should allow any aggregate field")
	}
}

// TestScalarConversions tests driver value coercion helpers
func TestScalarConversions(t *testing.T) {
	intCases := []struct {
		in   any
		want int64
	}{
		{int64(42), 42},
		{[]byte("42"), 42},
		{"42", 42},
		{float64(42.9), 42},
	}
	for _, tc := range intCases {
		if got := toInt64(tc.in); got != tc.want {
			t.Errorf("toInt64(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}

	floatCases := []struct {
		in   any
		want float64
	}{
		{float64(3.5), 3.5},
		{[]byte("3.5"), 3.5},
		{"3.5", 3.5},
		{int64(3), 3},
	}
	for _, tc := range floatCases {
		if got := toFloat64(tc.in); got != tc.want {
			t.Errorf("toFloat64(%v) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
