package generator

import (
	"math/rand/v2"
)

const (
	firstPageSize = 20
	pageSize      = 10
)

// PageSize returns the number of books on page. Page 0 is larger so the
// first screen of an infinite scroll is filled.
func PageSize(page int) int {
	if page == 0 {
		return firstPageSize
	}
	return pageSize
}

// StartIndex returns the 1-based ordinal of the first book on page.
func StartIndex(page int) int64 {
	if page == 0 {
		return 1
	}
	return firstPageSize + int64(page-1)*pageSize + 1
}

// PageOf returns the page holding the book with the given 1-based index.
func PageOf(index int64) int {
	if index <= firstPageSize {
		return 0
	}
	return int((index-firstPageSize-1)/pageSize) + 1
}

// combinedSeed adds the page to the seed. The sum wraps around in 64-bit
// two's complement, so math.MaxInt64 on page 1 becomes math.MinInt64.
func combinedSeed(seed int64, page int) int64 {
	return seed + int64(page)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// pageStream hands out per-record seeds for one page. Each record takes
// exactly two draws, in position order.
type pageStream struct {
	rng *rand.Rand
}

func newPageStream(seed int64, page int) *pageStream {
	return &pageStream{rng: newRand(uint64(combinedSeed(seed, page)))}
}

func (p *pageStream) recordSeed() uint64 {
	return p.rng.Uint64()
}

func (p *pageStream) engagementSeed() uint64 {
	return p.rng.Uint64()
}
