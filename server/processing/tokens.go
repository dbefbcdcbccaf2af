package processing

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer defines the interface for token counting
type Tokenizer interface {
	CountTokens(text string) int
}

// tiktokenWrapper adapts tiktoken to Tokenizer
type tiktokenWrapper struct {
	*tiktoken.Tiktoken
}

func (t *tiktokenWrapper) CountTokens(text string) int {
	return len(t.Encode(text, nil, nil))
}

// DefaultEncoding approximates token counts for non-OpenAI models as well.
const DefaultEncoding = "cl100k_base"

// NewTokenizer returns a tiktoken based tokenizer for the named encoding.
// The encoding tables are fetched on first use, so this can fail offline.
func NewTokenizer(encoding string) (Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encoding, err)
	}
	return &tiktokenWrapper{enc}, nil
}
