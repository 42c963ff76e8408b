// Package generator expands a seed into reproducible pages of fake books.
//
// Output depends only on the GenerationRequest: the page generator is seeded
// with seed+page, and every book gets two private generators drawn from it,
// one for its bibliographic fields and cover, one for likes and reviews.
package generator // import "github.com/Xunop/book-faker/internal/generator"

import (
	"math/rand/v2"

	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/textsource"
	"github.com/pkg/errors"
)

const (
	minAuthors   = 1
	maxAuthors   = 2
	minSentences = 1
	maxSentences = 4
)

// MaxReviewAverage is the largest review average Generate accepts. Every
// review is materialized, so the average bounds the work per book.
const MaxReviewAverage = 1000

var (
	ErrNegativePage          = errors.New("page must not be negative")
	ErrReviewAverageTooLarge = errors.New("review average too large")
)

// Generator is safe for concurrent use; it holds no per-call state.
type Generator struct {
	texts textsource.Factory
}

func New(texts textsource.Factory) *Generator {
	return &Generator{texts: texts}
}

// Generate returns the books of one page. A text source failure aborts the
// whole page.
func (g *Generator) Generate(req model.GenerationRequest) ([]*model.Book, error) {
	if req.Page < 0 {
		return nil, ErrNegativePage
	}
	if req.AverageReviews > MaxReviewAverage {
		return nil, errors.Wrapf(ErrReviewAverageTooLarge, "%v exceeds %d", req.AverageReviews, MaxReviewAverage)
	}

	stream := newPageStream(req.Seed, req.Page)
	count := PageSize(req.Page)
	start := StartIndex(req.Page)

	books := make([]*model.Book, 0, count)
	for i := 0; i < count; i++ {
		book, err := g.generateBook(req, stream, start+int64(i))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to generate book %d", start+int64(i))
		}
		books = append(books, book)
	}
	return books, nil
}

func (g *Generator) generateBook(req model.GenerationRequest, stream *pageStream, index int64) (*model.Book, error) {
	record := newRand(stream.recordSeed())

	authorCount := minAuthors + record.IntN(maxAuthors-minAuthors+1)
	texts, err := g.texts.New(req.Locale, record.Uint64())
	if err != nil {
		return nil, err
	}
	authors := make([]string, authorCount)
	for i := range authors {
		authors[i] = texts.FullName()
	}
	title := texts.ProductName()
	publisher := texts.CompanyName()
	isbn := texts.EAN13()

	engagement := newRand(stream.engagementSeed())
	likes := ProbabilisticCount(engagement, req.AverageLikes)
	reviews, err := g.generateReviews(req, engagement)
	if err != nil {
		return nil, err
	}

	return &model.Book{
		Index:         index,
		ISBN:          isbn,
		Title:         title,
		Authors:       authors,
		Publisher:     publisher,
		Likes:         likes,
		CoverImageURL: CoverURL(pickCoverColor(record), title),
		Reviews:       reviews,
	}, nil
}

func (g *Generator) generateReviews(req model.GenerationRequest, rng *rand.Rand) ([]model.Review, error) {
	count := ProbabilisticCount(rng, req.AverageReviews)
	texts, err := g.texts.New(req.Locale, rng.Uint64())
	if err != nil {
		return nil, err
	}

	reviews := make([]model.Review, 0, count)
	for i := 0; i < count; i++ {
		sentences := minSentences + rng.IntN(maxSentences-minSentences+1)
		reviews = append(reviews, model.Review{
			ReviewerName: texts.FullName(),
			ReviewText:   texts.Sentences(sentences),
		})
	}
	return reviews, nil
}
