// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// CurrencySymbol prefixes every cost.
const CurrencySymbol = "₹"

// FormatKWh formats an energy value with two decimals.
// e.g., 10.6 -> "10.60 kWh", 1234.5 -> "1,234.50 kWh"
func FormatKWh(v float64) string {
	return formatFixed2(v) + " kWh"
}

// FormatCost formats a rupee amount with two decimals and thousands separators.
func FormatCost(cost float64) string {
	if cost < 0 {
		return "-" + FormatCost(-cost)
	}
	return CurrencySymbol + formatFixed2(cost)
}

// FormatCarbon formats kilograms of CO2.
func FormatCarbon(kg float64) string {
	return formatFixed2(kg) + " kg CO₂"
}

// FormatCarbonCompact switches to SI prefixes for large masses.
// e.g., 28.7 -> "28.7 kg", 12500 -> "12.5 Mg"
func FormatCarbonCompact(kg float64) string {
	if kg <= 0 {
		return "0 kg"
	}
	return humanize.SIWithDigits(kg*1000, 1, "g")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatTrees formats a tree count with the right noun.
func FormatTrees(n int) string {
	if n == 1 {
		return "1 tree"
	}
	return FormatNumber(int64(n)) + " trees"
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatAppliances joins appliance labels, or "none".
func FormatAppliances(labels []string) string {
	if len(labels) == 0 {
		return "none"
	}
	return strings.Join(labels, ", ")
}

func formatFixed2(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		return "0.00"
	}
	return humanize.FormatFloat("#,###.##", v)
}
