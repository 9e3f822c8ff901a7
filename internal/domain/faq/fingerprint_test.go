package faq

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("What is the refund policy?")
	require.Len(t, fp, 64)
	require.Equal(t, fp, Fingerprint("  what IS the refund   policy "))
	require.NotEqual(t, fp, Fingerprint("What is the shipping policy?"))

	// sha256("")
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Fingerprint(""))
}

func TestKeyNamespaces(t *testing.T) {
	fp := Fingerprint("hours")
	require.Equal(t, "result:"+fp, ResultKey(fp))
	require.Equal(t, "vector:"+fp, RecordKey(fp))
	require.NotEqual(t, ResultKey(fp), RecordKey(fp))
}

func TestCheckFingerprint(t *testing.T) {
	answer := CachedAnswer{Question: "Refund?"}
	require.NoError(t, CheckFingerprint(Fingerprint("refund"), answer))
	require.Error(t, CheckFingerprint(Fingerprint("shipping"), answer))
}

func TestCachedAnswerJSONLayout(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(CachedAnswer{
		Question:  "Refund?",
		Answer:    "30 days",
		Source:    SourceWeb,
		Score:     1,
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"question":"Refund?","answer":"30 days","source":"web","score":1,"createdAt":1740830400,"v":1}`, string(raw))

	var decoded CachedAnswer
	require.NoError(t, json.Unmarshal([]byte(strings.Replace(string(raw), `"web"`, `"faq"`, 1)), &decoded))
	require.Equal(t, SourceFAQ, decoded.Source)
	require.Equal(t, created, decoded.CreatedAt)
}
