package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeItems(t *testing.T) {
	items, err := DecodeItems(strings.NewReader(`[{"question":"Refund?","answer":"30 days"},{"question":"Hours?","answer":"9-5"}]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Refund?", items[0].Question)
	require.Equal(t, "9-5", items[1].Answer)
}

func TestDecodeItemsRejectsObject(t *testing.T) {
	_, err := DecodeItems(strings.NewReader(`{"question":"Refund?"}`))
	require.Error(t, err)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acct.r2.cloudflarestorage.com", sanitizeEndpoint("https://acct.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "", sanitizeEndpoint(""))
}
