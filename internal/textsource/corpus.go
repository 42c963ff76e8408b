package textsource

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type corpus struct {
	Locale     string   `yaml:"locale"`
	NameFormat string   `yaml:"name_format"`
	FirstNames []string `yaml:"first_names"`
	LastNames  []string `yaml:"last_names"`
	Product    struct {
		Separator  string   `yaml:"separator"`
		Adjectives []string `yaml:"adjectives"`
		Materials  []string `yaml:"materials"`
		Nouns      []string `yaml:"nouns"`
	} `yaml:"product"`
	Company struct {
		Formats  []string `yaml:"formats"`
		Suffixes []string `yaml:"suffixes"`
	} `yaml:"company"`
	Lorem struct {
		WordSeparator     string   `yaml:"word_separator"`
		SentenceSeparator string   `yaml:"sentence_separator"`
		Terminator        string   `yaml:"terminator"`
		Words             []string `yaml:"words"`
	} `yaml:"lorem"`
}

func (c *corpus) validate() error {
	if _, err := Resolve(c.Locale); err != nil {
		return err
	}
	lists := map[string][]string{
		"first_names":        c.FirstNames,
		"last_names":         c.LastNames,
		"product.adjectives": c.Product.Adjectives,
		"product.materials":  c.Product.Materials,
		"product.nouns":      c.Product.Nouns,
		"company.formats":    c.Company.Formats,
		"company.suffixes":   c.Company.Suffixes,
		"lorem.words":        c.Lorem.Words,
	}
	for name, list := range lists {
		if len(list) == 0 {
			return errors.Errorf("%s must not be empty", name)
		}
	}
	if c.NameFormat == "" {
		return errors.New("name_format must not be empty")
	}
	return nil
}

type corpusSource struct {
	faker  *gofakeit.Faker
	corpus *corpus
	title  cases.Caser
}

func newCorpusSource(faker *gofakeit.Faker, c *corpus) *corpusSource {
	return &corpusSource{faker: faker, corpus: c, title: cases.Title(language.Make(c.Locale))}
}

func (s *corpusSource) pick(list []string) string {
	return s.faker.RandomString(list)
}

// fill replaces each placeholder occurrence with its own fresh pick.
func (s *corpusSource) fill(format string, lists map[string][]string) string {
	out := format
	for {
		start := strings.Index(out, "{")
		if start < 0 {
			return out
		}
		end := strings.Index(out[start:], "}")
		if end < 0 {
			return out
		}
		key := out[start+1 : start+end]
		list, ok := lists[key]
		if !ok {
			return out
		}
		out = out[:start] + s.pick(list) + out[start+end+1:]
	}
}

func (s *corpusSource) FullName() string {
	return s.fill(s.corpus.NameFormat, map[string][]string{
		"first": s.corpus.FirstNames,
		"last":  s.corpus.LastNames,
	})
}

func (s *corpusSource) ProductName() string {
	p := s.corpus.Product
	return strings.Join([]string{s.pick(p.Adjectives), s.pick(p.Materials), s.pick(p.Nouns)}, p.Separator)
}

func (s *corpusSource) CompanyName() string {
	format := s.pick(s.corpus.Company.Formats)
	return s.fill(format, map[string][]string{
		"last":   s.corpus.LastNames,
		"suffix": s.corpus.Company.Suffixes,
	})
}

func (s *corpusSource) EAN13() string {
	return ean13(s.faker)
}

func (s *corpusSource) Sentences(n int) string {
	l := s.corpus.Lorem
	sentences := make([]string, 0, n)
	for i := 0; i < n; i++ {
		count := s.faker.Number(minSentenceWords, maxSentenceWords)
		words := make([]string, count)
		for j := range words {
			words[j] = s.pick(l.Words)
		}
		words[0] = s.title.String(words[0])
		sentences = append(sentences, strings.Join(words, l.WordSeparator)+l.Terminator)
	}
	return strings.Join(sentences, l.SentenceSeparator)
}
