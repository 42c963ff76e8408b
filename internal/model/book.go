package model // import "github.com/Xunop/book-faker/internal/model"

import (
	"encoding/json"
	"strings"
)

// Book is a single generated catalog record.
type Book struct {
	// Index is the 1-based ordinal of the book across all pages.
	Index     int64    `json:"index"`
	ISBN      string   `json:"isbn"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Publisher string   `json:"publisher"`
	Likes     int      `json:"likes"`
	// CoverImageURL is a placeholder image reference built from the title.
	CoverImageURL string   `json:"coverImageUrl"`
	Reviews       []Review `json:"reviews"`
}

type Review struct {
	ReviewerName string `json:"reviewerName"`
	ReviewText   string `json:"reviewText"`
}

// AuthorLine returns the authors joined for display.
func (b *Book) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

func (b *Book) String() string {
	s, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	return string(s)
}
