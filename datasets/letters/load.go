package letters

import "compress/gzip"
import "os"
import "path/filepath"
import "strings"

import "github.com/pkg/errors"

import "github.com/neurlang/fidel/datasets"

// Corpus file names as distributed with the dataset
const (
	TrainSet = "amharic_letters_train.txt"
	TestSet  = "amharic_letters_test.txt"
)

// SearchDirectories are tried in order by Locate
var SearchDirectories = []string{".", "data", "/tmp/amharic_letters"}

// Locate finds a corpus file by name, also accepting a gzipped copy
func Locate(name string) (string, error) {
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		if _, err := os.Stat(name); err != nil {
			return "", errors.Wrapf(err, "corpus '%s'", name)
		}
		return name, nil
	}
	for _, dir := range SearchDirectories {
		for _, candidate := range []string{name, name + ".gz"} {
			var path = filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", errors.Wrapf(os.ErrNotExist, "corpus '%s' not found in %v", name, SearchDirectories)
}

// Load parses the windowed samples of a corpus file. Files ending in .gz are
// decompressed on the fly.
func Load(path string, skip, limit int) (datasets.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open corpus '%s'", path)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".gz") {
		d, err := collect(f, skip, limit)
		return d, errors.Wrapf(err, "corpus '%s'", path)
	}

	gzipReader, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "gzip corpus '%s'", path)
	}
	defer gzipReader.Close()

	d, err := collect(gzipReader, skip, limit)
	return d, errors.Wrapf(err, "corpus '%s'", path)
}
