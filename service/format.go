package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// groupedf formats numbers with thousands separators ("2,500.00").
func groupedf(format string, a ...any) string {
	return message.NewPrinter(language.English).Sprintf(format, a...)
}
