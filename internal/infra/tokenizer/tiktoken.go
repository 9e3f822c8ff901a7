package tokenizer

import (
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// DefaultEncoding matches the OpenAI chat and embedding models.
const DefaultEncoding = "cl100k_base"

// TiktokenCounter counts BPE tokens. The encoding table is loaded on first use;
// if it cannot be loaded the heuristic counter is used instead.
type TiktokenCounter struct {
	encoding string
	logger   *slog.Logger

	once     sync.Once
	enc      *tiktoken.Tiktoken
	fallback faq.HeuristicCounter
}

// NewTiktokenCounter constructs a counter for the named encoding.
func NewTiktokenCounter(encoding string, logger *slog.Logger) *TiktokenCounter {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TiktokenCounter{encoding: encoding, logger: logger.With("component", "faq.tokenizer")}
}

// Count implements faq.TokenCounter.
func (c *TiktokenCounter) Count(text string) int {
	c.once.Do(c.load)
	if c.enc == nil {
		return c.fallback.Count(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

func (c *TiktokenCounter) load() {
	enc, err := tiktoken.GetEncoding(c.encoding)
	if err != nil {
		c.logger.Warn("tiktoken encoding unavailable, using heuristic token counts", "encoding", c.encoding, "error", err)
		return
	}
	c.enc = enc
}

var _ faq.TokenCounter = (*TiktokenCounter)(nil)
