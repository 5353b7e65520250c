package contractdoc

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rental contracts are French legal documents, amounts and dates follow
// French conventions (comma decimal separator, day-first dates).
var printer = message.NewPrinter(language.French)

func FormatMoney(v float64) string {
	return printer.Sprintf("%.2f €", v)
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}

func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 à 15:04")
}
