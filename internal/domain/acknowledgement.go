package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Acknowledgement number prefixes per submission type. The prefix makes the
// token self-describing on receipts and in the status tracker.
var ackPrefixes = map[SubmissionType]string{
	TypeShareCertificate: "SC",
	TypeNomination:       "NOM",
	TypeNOCRequest:       "NOC",
}

// NewAcknowledgementNumber generates a human-presentable token of the form
// PREFIX-YYMMDD-XXXXXX, where the suffix is 6 hex characters from crypto/rand.
// Tokens embed random entropy rather than a counter, so a number is never
// reused even if its record is later deleted. Collision-freedom across the
// store's lifetime is enforced by a unique index at insert time; callers
// regenerate and retry on a duplicate-key failure.
func NewAcknowledgementNumber(t SubmissionType) (string, error) {
	prefix, ok := ackPrefixes[t]
	if !ok {
		return "", fmt.Errorf("unknown submission type %q", t)
	}

	var suffix [3]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("acknowledgement entropy: %w", err)
	}

	return fmt.Sprintf("%s-%s-%s",
		prefix,
		time.Now().UTC().Format("060102"),
		strings.ToUpper(hex.EncodeToString(suffix[:])),
	), nil
}
