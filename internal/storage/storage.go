package storage // import "github.com/Xunop/book-faker/internal/storage"

type Storage interface {
	// Save stores data under name and returns where it ended up.
	Save(name string, data []byte) (string, error)
}
