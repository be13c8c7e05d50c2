// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators and the VND
// suffix the backend prices are denominated in.
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("%.0f", amount) + " ₫"
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return moneyPrinter.Sprintf("%d", n)
}
