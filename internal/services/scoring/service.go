package scoring

import (
	"sort"
	"unicode"
)

// Fixed point awards for a resolved turn. Not time- or difficulty-scaled.
const (
	GuesserPoints = 100
	DrawerPoints  = 50
)

// Service provides the pure scoring and hint policy. It holds no state.
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// AwardGuess returns the points for the first correct guesser and the drawer
func (s *Service) AwardGuess() (guesserPoints, drawerPoints int) {
	return GuesserPoints, DrawerPoints
}

// HintPositions computes the letter positions revealed after hintsRevealed
// hints for a word of wordLength letters. The set is recomputed from scratch
// for the current hint count; the number of revealed positions grows by at
// least one per reveal.
//
// Hints are spread evenly across the word: the i-th hint targets
// floor(i*n/k), probing forward past positions already taken within the set.
// A single hint always reveals position 0. If hintsRevealed meets or exceeds
// the word length, every position is revealed.
func (s *Service) HintPositions(wordLength, hintsRevealed int) []int {
	if wordLength <= 0 || hintsRevealed <= 0 {
		return nil
	}

	if hintsRevealed >= wordLength {
		positions := make([]int, wordLength)
		for i := range positions {
			positions[i] = i
		}
		return positions
	}

	var positions []int
	taken := make([]bool, wordLength)
	for i := 0; i < hintsRevealed; i++ {
		pos := i * wordLength / hintsRevealed
		for pos < wordLength-1 && taken[pos] {
			pos++
		}
		if pos < wordLength && !taken[pos] {
			taken[pos] = true
			positions = append(positions, pos)
		}
	}

	sort.Ints(positions)
	return positions
}

// WordDisplay renders the masked word shown to guessers: revealed positions
// show the uppercased letter, everything else is a blank.
func (s *Service) WordDisplay(word string, revealed []int) []string {
	shown := make(map[int]bool, len(revealed))
	for _, p := range revealed {
		shown[p] = true
	}

	runes := []rune(word)
	display := make([]string, len(runes))
	for i, r := range runes {
		if shown[i] {
			display[i] = string(unicode.ToUpper(r))
		} else {
			display[i] = "_"
		}
	}
	return display
}
