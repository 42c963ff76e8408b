package textsource

import (
	"embed"
	"math/rand/v2"
	"path"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed corpora/*.yaml
var corporaFS embed.FS

// Provider is the default Factory. English text comes from gofakeit's own
// data set; other locales are backed by embedded corpora. A Provider is
// immutable after construction and can be shared between goroutines.
type Provider struct {
	corpora map[string]*corpus
}

var _ Factory = (*Provider)(nil)

func NewProvider() (*Provider, error) {
	entries, err := corporaFS.ReadDir("corpora")
	if err != nil {
		return nil, errors.Wrap(err, "unable to read embedded corpora")
	}

	p := &Provider{corpora: make(map[string]*corpus)}
	for _, entry := range entries {
		b, err := corporaFS.ReadFile(path.Join("corpora", entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read corpus %s", entry.Name())
		}
		var c corpus
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, errors.Wrapf(err, "unable to parse corpus %s", entry.Name())
		}
		if err := c.validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid corpus %s", entry.Name())
		}
		p.corpora[c.Locale] = &c
	}
	return p, nil
}

// New returns a Source for locale whose output is fully determined by seed.
func (p *Provider) New(locale string, seed uint64) (Source, error) {
	code, err := Resolve(locale)
	if err != nil {
		return nil, err
	}
	// gofakeit.New swaps seed 0 for a random one; build from a source instead.
	faker := gofakeit.NewFaker(rand.NewPCG(seed, seed), false)
	if code == "en" {
		return newFakeitSource(faker), nil
	}
	c, ok := p.corpora[code]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedLocale, "no corpus for %q", code)
	}
	return newCorpusSource(faker, c), nil
}
