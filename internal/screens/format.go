package screens

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// humanize turns an API enum value like "spouse_partner" into "Spouse Partner"
func humanize(s string) string {
	if s == "" {
		return ""
	}
	// a Caser is stateful, so one per call
	return cases.Title(language.BritishEnglish).String(strings.ReplaceAll(s, "_", " "))
}

func printer() *message.Printer {
	return message.NewPrinter(language.BritishEnglish)
}

// money formats v with a currency symbol and thousands separators
func money(symbol string, v float64) string {
	return printer().Sprintf("%s%.0f", symbol, v)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return printer().Sprintf("%d %s", n, one)
	}
	return printer().Sprintf("%d %s", n, many)
}
