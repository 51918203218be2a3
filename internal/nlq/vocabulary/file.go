package vocabulary

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrVocabularyLoadFailed = errors.New("VOCABULARY_LOAD_FAILED")

type document struct {
	ActionWords []ActionWord `yaml:"actionWords"`
}

// Load reads a YAML vocabulary file. The entry order in the file is the
// precedence order of the resulting table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabularyLoadFailed, err)
	}
	defer f.Close()

	return Read(f)
}

func Read(r io.Reader) (*Table, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrVocabularyLoadFailed, err)
	}
	if len(doc.ActionWords) == 0 {
		return nil, fmt.Errorf("%w: no action words", ErrVocabularyLoadFailed)
	}

	t, err := New(doc.ActionWords...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabularyLoadFailed, err)
	}
	return t, nil
}

// Dump writes t in the format Load accepts.
func (t *Table) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{ActionWords: t.Entries()}); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	return enc.Close()
}
