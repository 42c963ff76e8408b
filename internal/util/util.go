package util // import "github.com/Xunop/book-faker/internal/util"

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxRandomSeed bounds the seeds handed out by RandomSeed.
const MaxRandomSeed = 1_000_000

func GenUUID() string {
	return uuid.New().String()
}

// RandomSeed returns a fresh seed in [0, MaxRandomSeed).
func RandomSeed() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxRandomSeed))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// GenerateNewFileName returns filePath if it is free, otherwise the next
// free name of the form name_N.ext.
func GenerateNewFileName(filePath string) string {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return filePath // file does not exist, return the same name
	}

	dir := filepath.Dir(filePath)
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	fileName := strings.TrimSuffix(base, ext)

	existingFiles, err := filepath.Glob(filepath.Join(dir, fileName+"_*[0-9]"+ext))
	if err != nil {
		return filePath
	}

	index := 1
	for _, existingFile := range existingFiles {
		existingName := strings.TrimSuffix(filepath.Base(existingFile), ext)
		suffix := strings.TrimPrefix(existingName, fileName+"_")
		existingIndex, err := strconv.Atoi(suffix)
		if err == nil && existingIndex >= index {
			index = existingIndex + 1
		}
	}
	newFileName := fmt.Sprintf("%s_%d%s", fileName, index, ext)
	return filepath.Join(dir, newFileName)
}
