// Package questionbank reads quiz categories from a directory holding one file
// per category, "<category>.json" or "<category>.yaml". Files are read on
// every call so edits show up without a restart.
package questionbank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCategory   = errors.New("questionbank: unknown category")
	ErrMalformedCategory = errors.New("questionbank: malformed category file")
)

// extensions in lookup order. A category present in several formats is read
// from the first match.
var extensions = []string{".json", ".yaml", ".yml"}

// record is the on-disk shape of one question.
type record struct {
	Question      string   `json:"question" yaml:"question"`
	Variants      []string `json:"variants" yaml:"variants"`
	CorrectAnswer int      `json:"correct_answer" yaml:"correct_answer"`
}

type Bank struct {
	fsys fs.FS
}

// New opens the question directory at dir.
func New(dir string) *Bank {
	return NewFS(os.DirFS(dir))
}

func NewFS(fsys fs.FS) *Bank {
	return &Bank{fsys: fsys}
}

// Categories lists every category with a readable file, sorted.
func (b *Bank) Categories(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(b.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("questionbank: read dir: %w", err)
	}

	var cats []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if !slices.Contains(extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !ValidCategory(name) {
			continue
		}
		cats = append(cats, name)
	}

	slices.Sort(cats)
	return slices.Compact(cats), nil
}

// Questions loads and validates every question of category.
func (b *Bank) Questions(ctx context.Context, category string) ([]domain.Question, error) {
	if !ValidCategory(category) {
		return nil, ErrUnknownCategory
	}

	for _, ext := range extensions {
		raw, err := fs.ReadFile(b.fsys, category+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("questionbank: read %s: %w", category+ext, err)
		}
		return parse(category+ext, raw)
	}

	return nil, ErrUnknownCategory
}

// ValidCategory reports whether name is usable as a category. Names are a
// single path element made of letters, digits, '-' and '_'.
func ValidCategory(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func parse(file string, raw []byte) ([]domain.Question, error) {
	var records []record

	switch path.Ext(file) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCategory, file, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCategory, file, err)
		}
	}

	questions := make([]domain.Question, 0, len(records))
	for i, r := range records {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: question %d: %v", ErrMalformedCategory, file, i, err)
		}
		questions = append(questions, domain.Question{
			Text:          r.Question,
			Variants:      r.Variants,
			CorrectAnswer: r.CorrectAnswer,
		})
	}
	return questions, nil
}

func (r record) validate() error {
	switch {
	case strings.TrimSpace(r.Question) == "":
		return errors.New("empty question text")
	case len(r.Variants) < 2:
		return errors.New("need at least two variants")
	case r.CorrectAnswer < 0 || r.CorrectAnswer >= len(r.Variants):
		return fmt.Errorf("correct_answer %d out of range", r.CorrectAnswer)
	}
	return nil
}
