// Package translate renders the machine's diagnostics in the user's language.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("lmc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From renders a message. The key is the English text, with fmt verbs for
// the arguments; a catalog entry for the user's language replaces it.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Number renders an integer with the digit grouping of the user's language.
func Number(value int) string {
	return printer.Sprint(value)
}
