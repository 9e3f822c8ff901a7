package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

func TestTiktokenCounterFallsBackOnUnknownEncoding(t *testing.T) {
	c := NewTiktokenCounter("no_such_encoding", nil)

	text := "how long does shipping take to europe"
	require.Equal(t, faq.HeuristicCounter{}.Count(text), c.Count(text))
	require.Nil(t, c.enc)
	require.Equal(t, 0, c.Count(""))
}

func TestNewTiktokenCounterDefaultsEncoding(t *testing.T) {
	require.Equal(t, DefaultEncoding, NewTiktokenCounter("", nil).encoding)
}
