// Package textsource synthesizes locale-aware names, titles, identifiers and
// lorem text. Every Source is seeded, so the same seed always yields the same
// sequence of strings.
package textsource // import "github.com/Xunop/book-faker/internal/textsource"

import (
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Source produces text for a single owner. It is not safe for concurrent use.
type Source interface {
	// FullName returns a person's full name.
	FullName() string
	// ProductName returns a product-style name, used as a book title.
	ProductName() string
	// CompanyName returns a company-style name, used as a publisher.
	CompanyName() string
	// EAN13 returns a 13-digit EAN with a valid check digit.
	EAN13() string
	// Sentences returns n lorem-style sentences joined by the locale separator.
	Sentences(n int) string
}

// Factory creates seeded sources for a locale.
type Factory interface {
	New(locale string, seed uint64) (Source, error)
}

type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var supported = []struct {
	tag  language.Tag
	name string
}{
	{language.English, "English"},
	{language.German, "Deutsch"},
	{language.Japanese, "日本語"},
}

// SupportedLocales lists the locales accepted by Resolve, in display order.
func SupportedLocales() []Locale {
	locales := make([]Locale, 0, len(supported))
	for _, s := range supported {
		base, _ := s.tag.Base()
		locales = append(locales, Locale{Code: base.String(), Name: s.name})
	}
	return locales
}

// Resolve canonicalizes a BCP 47 locale to one of the supported base
// languages, e.g. "de-AT" becomes "de".
func Resolve(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", errors.Wrapf(ErrUnsupportedLocale, "%q", locale)
	}
	base, confidence := tag.Base()
	if confidence != language.Exact {
		return "", errors.Wrapf(ErrUnsupportedLocale, "%q", locale)
	}
	for _, s := range supported {
		if b, _ := s.tag.Base(); b == base {
			return b.String(), nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedLocale, "%q", locale)
}

// checkDigit computes the EAN-13 check digit of a 12-digit prefix.
func checkDigit(prefix string) byte {
	sum := 0
	for i := 0; i < len(prefix); i++ {
		d := int(prefix[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

// ValidEAN13 reports whether s is 13 digits with a correct check digit.
func ValidEAN13(s string) bool {
	if len(s) != 13 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return checkDigit(s[:12]) == s[12]
}
