package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ngnPrinter = message.NewPrinter(language.English)

// FormatNGN 整数奈拉 → "₦12,500"（千分位、无小数）
func FormatNGN(v int64) string {
	return ngnPrinter.Sprintf("₦%d", v)
}
