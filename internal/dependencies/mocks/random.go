package mocks

import (
	"fmt"

	"github.com/hyperhustle/hustle-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// TokenResults is a queue of results to return from Token
	TokenResults []string
	tokenIndex   int
	tokenSerial  int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// Token returns the next queued result, or a serial fallback so callers
// always receive distinct tokens
func (r *MockRandom) Token(prefix string) string {
	if r.tokenIndex < len(r.TokenResults) {
		result := r.TokenResults[r.tokenIndex]
		r.tokenIndex++
		return result
	}
	r.tokenSerial++
	return fmt.Sprintf("%smock%d", prefix, r.tokenSerial)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.TokenResults = append(r.TokenResults, values...)
}
