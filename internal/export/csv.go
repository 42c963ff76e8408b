package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/Xunop/book-faker/internal/model"
	"github.com/pkg/errors"
)

var csvHeader = []string{"index", "isbn", "title", "authors", "publisher", "likes", "reviews", "cover"}

// CSV writes one row per book. Reviews are exported as a count.
func CSV(w io.Writer, books []*model.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "unable to write csv header")
	}

	for _, b := range books {
		row := []string{
			strconv.FormatInt(b.Index, 10),
			b.ISBN,
			b.Title,
			strings.Join(b.Authors, "; "),
			b.Publisher,
			strconv.Itoa(b.Likes),
			strconv.Itoa(len(b.Reviews)),
			b.CoverImageURL,
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "unable to write book %d", b.Index)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "unable to flush csv")
}
