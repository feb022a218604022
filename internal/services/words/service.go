package words

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/9910597111/BlindSketch-Game/internal/dependencies/random"
	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/storage"
)

// Service is the word source: it holds the loaded word list and serves
// distinct random picks for drawers. Word content is opaque to the server
// beyond length and case normalization.
type Service struct {
	storage storage.Storage
	random  random.Random

	mu     sync.RWMutex
	words  []string
	loaded bool
}

// New creates a new word source service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// LoadFromStorage loads the word list from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads the word list from a file (one word per line)
// and mirrors it to storage for future use.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = append([]string(nil), words...)
	s.loaded = true
	return nil
}

// IsLoaded returns whether a word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of loaded words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// RandomWords returns count distinct words from the list. If the list is
// smaller than count, every word is returned.
func (s *Service) RandomWords(count int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.words) == 0 {
		return nil, model.ErrWordsNotLoaded
	}

	if count >= len(s.words) {
		return append([]string(nil), s.words...), nil
	}

	// Partial Fisher-Yates over a scratch copy: the first count slots end
	// up holding distinct random picks.
	scratch := append([]string(nil), s.words...)
	for i := 0; i < count; i++ {
		j := i + s.random.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:count], nil
}
