package faq

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	resultKeyPrefix = "result:"
	recordKeyPrefix = "vector:"
)

// Fingerprint returns the hex SHA-256 digest of the normalized question.
// Questions that normalize to the same text share a fingerprint.
func Fingerprint(question string) string {
	sum := sha256.Sum256([]byte(normalizeQuestion(question)))
	return hex.EncodeToString(sum[:])
}

// ResultKey namespaces a fingerprint for the result cache.
func ResultKey(fingerprint string) string {
	return resultKeyPrefix + fingerprint
}

// RecordKey namespaces a fingerprint for FAQ corpus records.
func RecordKey(fingerprint string) string {
	return recordKeyPrefix + fingerprint
}

// CheckFingerprint rejects a cache write whose key was not derived from the answer's question.
func CheckFingerprint(fingerprint string, answer CachedAnswer) error {
	if want := Fingerprint(answer.Question); want != fingerprint {
		return fmt.Errorf("fingerprint %q does not match question fingerprint %q", fingerprint, want)
	}
	return nil
}
