package textsource

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minSentenceWords = 4
	maxSentenceWords = 10
)

// fakeitSource is the English source, built on gofakeit's data set.
type fakeitSource struct {
	faker *gofakeit.Faker
	title cases.Caser
}

func newFakeitSource(faker *gofakeit.Faker) *fakeitSource {
	return &fakeitSource{faker: faker, title: cases.Title(language.English)}
}

func (s *fakeitSource) FullName() string {
	return s.faker.FirstName() + " " + s.faker.LastName()
}

func (s *fakeitSource) ProductName() string {
	return s.faker.ProductName()
}

func (s *fakeitSource) CompanyName() string {
	return s.faker.Company()
}

func (s *fakeitSource) EAN13() string {
	return ean13(s.faker)
}

func (s *fakeitSource) Sentences(n int) string {
	sentences := make([]string, 0, n)
	for i := 0; i < n; i++ {
		count := s.faker.Number(minSentenceWords, maxSentenceWords)
		words := make([]string, count)
		for j := range words {
			words[j] = s.faker.LoremIpsumWord()
		}
		words[0] = s.title.String(words[0])
		sentences = append(sentences, strings.Join(words, " ")+".")
	}
	return strings.Join(sentences, " ")
}

// ean13 draws a Bookland (978) EAN-13.
func ean13(faker *gofakeit.Faker) string {
	prefix := faker.Numerify("978#########")
	return prefix + string(checkDigit(prefix))
}
