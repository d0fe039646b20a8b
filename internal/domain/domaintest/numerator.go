package domaintest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"depo/internal/core/numerator"
)

// SeqNumerator hands out PREFIX-NNNNN codes from an in-memory counter per prefix.
type SeqNumerator struct {
	mu   sync.Mutex
	next map[string]int

	// Err, when set, is returned instead of a number.
	Err error
}

// NewSeqNumerator creates a numerator starting at 1 for every prefix.
func NewSeqNumerator() *SeqNumerator {
	return &SeqNumerator{next: make(map[string]int)}
}

// GetNextNumber implements numerator.Generator.
func (n *SeqNumerator) GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return "", n.Err
	}
	n.next[cfg.Prefix]++
	return fmt.Sprintf("%s-%05d", cfg.Prefix, n.next[cfg.Prefix]), nil
}
