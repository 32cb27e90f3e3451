// Package translate formats user visible messages for the machine packages.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DefaultLocale is used when the host reports no locale.
const DefaultLocale = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Printer returns the message printer for the host locales.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("regmach: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{DefaultLocale}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
