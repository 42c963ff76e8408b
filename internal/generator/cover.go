package generator

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
)

const (
	coverBaseURL    = "https://placehold.co/400x600"
	coverTextColor  = "ffffff"
	coverTitleWords = 4
)

var coverPalette = [...]string{
	"4a4e69", "9a8c98", "c9ada7", "f2e9e4", "22223b",
	"6b705c", "a5a58d", "b7b7a4", "ddbea9", "ffe8d6",
	"003049", "d62828", "f77f00", "fcbf49", "eae2b7",
}

// CoverPalette returns a copy of the cover background colors.
func CoverPalette() []string {
	return append([]string(nil), coverPalette[:]...)
}

func pickCoverColor(rng *rand.Rand) string {
	return coverPalette[rng.IntN(len(coverPalette))]
}

// coverText keeps the first words of the title and escapes them for a
// query string, with spaces as %20.
func coverText(title string) string {
	words := strings.Fields(title)
	if len(words) > coverTitleWords {
		words = words[:coverTitleWords]
	}
	return strings.ReplaceAll(url.QueryEscape(strings.Join(words, " ")), "+", "%20")
}

// CoverURL builds the placeholder image reference for a title.
func CoverURL(background, title string) string {
	return fmt.Sprintf("%s/%s/%s?text=%s", coverBaseURL, background, coverTextColor, coverText(title))
}
