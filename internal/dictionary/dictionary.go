// Package dictionary decides whether words are valid.
package dictionary

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// minWordLength is the shortest word the dictionary accepts
const minWordLength = 2

// Index holds valid lowercase words bucketed by length.
// It is read-only once loaded and safe for concurrent lookups.
type Index struct {
	buckets  map[int]map[string]struct{}
	loaded   bool
	failOpen bool
}

// New creates an empty index.
// failOpen decides what IsValid reports while no words are loaded.
func New(failOpen bool) *Index {
	return &Index{
		buckets:  make(map[int]map[string]struct{}),
		failOpen: failOpen,
	}
}

// Loaded reports whether any dictionary was loaded
func (d *Index) Loaded() bool {
	return d.loaded
}

// Len returns the number of words in the index
func (d *Index) Len() int {
	n := 0
	for _, b := range d.buckets {
		n += len(b)
	}
	return n
}

// IsValid reports whether the word is in the dictionary, ignoring case.
// Without a loaded dictionary every word gets the fail-open answer.
func (d *Index) IsValid(word string) bool {
	if !d.loaded {
		return d.failOpen
	}
	n := len([]rune(word))
	if n < minWordLength {
		return false
	}
	bucket, ok := d.buckets[n]
	if !ok {
		return false
	}
	_, ok = bucket[strings.ToLower(word)]
	return ok
}

// LoadJSON reads words keyed by length, like {"2": ["at", "be"], "3": ["cat"]}.
func (d *Index) LoadJSON(r io.Reader) error {
	if r == nil {
		return errors.New("reader required to load dictionary from")
	}
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode dictionary: %w", err)
	}
	for key := range raw {
		if _, err := strconv.Atoi(key); err != nil {
			return fmt.Errorf("invalid word length key %q: %w", key, err)
		}
	}
	for _, words := range raw {
		for _, w := range words {
			d.add(w)
		}
	}
	d.loaded = true
	return nil
}

// LoadList reads whitespace separated words, skipping any that are not all lowercase letters.
func (d *Index) LoadList(r io.Reader) error {
	if r == nil {
		return errors.New("reader required to load dictionary from")
	}
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		w := scanner.Text()
		if isLowerWord(w) {
			d.add(w)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dictionary: %w", err)
	}
	d.loaded = true
	return nil
}

// LoadFile loads a .json dictionary or a plain word list from path
func (d *Index) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return d.LoadJSON(f)
	}
	return d.LoadList(f)
}

// add stores the word in the bucket for its actual length
func (d *Index) add(word string) {
	w := strings.ToLower(strings.TrimSpace(word))
	n := len([]rune(w))
	if n < minWordLength {
		return
	}
	if _, ok := d.buckets[n]; !ok {
		d.buckets[n] = make(map[string]struct{})
	}
	d.buckets[n][w] = struct{}{}
}

func isLowerWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return w != ""
}
