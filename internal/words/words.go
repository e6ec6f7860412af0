// Package words holds the static bank of drawable words.
package words

import "math/rand/v2"

var defaultWords = []string{
	"apple", "car", "house", "dog", "cat", "tree", "phone",
	"guitar", "rocket", "pizza", "bridge", "candle", "dragon",
	"island", "ladder", "mirror", "pirate", "robot", "castle",
	"anchor", "banana", "camera", "donut", "engine", "feather",
	"glacier", "hammer", "igloo", "jungle", "kite", "lantern",
	"mountain", "needle", "octopus", "penguin", "rainbow",
	"sailboat", "telescope", "umbrella", "volcano", "whale",
}

// Bank offers random word sampling. It carries no mutable state.
type Bank struct {
	words []string
}

// NewBank builds a bank from the given list, or the default list when empty.
func NewBank(list []string) *Bank {
	if len(list) == 0 {
		list = defaultWords
	}
	return &Bank{words: list}
}

// Pick returns n distinct words sampled without replacement. When n exceeds
// the bank size the whole bank is returned in random order.
func (b *Bank) Pick(n int) []string {
	if n > len(b.words) {
		n = len(b.words)
	}
	perm := rand.Perm(len(b.words))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, b.words[idx])
	}
	return out
}

// Size reports how many words the bank holds.
func (b *Bank) Size() int {
	return len(b.words)
}
