package services

import (
	"fmt"
	"math"
)

// FormatQuantity returns a string representation of a quantity value.
// Whole numbers are formatted without decimals; fractional values get 2
// decimal places.
func FormatQuantity(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
