package unsubscribe

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unsubscribe tokens are a reversible, non-cryptographic encoding of the
// recipient's user id plus the issuance timestamp. They are deliberately
// unsigned and never expire: the only thing a forged token can do is toggle
// an email preference. Do not upgrade to a signed token without a product
// decision, since that would invalidate links in previously sent emails.

const separator = "."

// Encode builds a token for the given user id at the given issuance time.
func Encode(userID string, issuedAt time.Time) string {
	raw := userID + separator + strconv.FormatInt(issuedAt.Unix(), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode recovers the user id and issuance time from a token.
func Decode(token string) (string, time.Time, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed unsubscribe token: %w", err)
	}

	idx := strings.LastIndex(string(data), separator)
	if idx <= 0 || idx == len(data)-1 {
		return "", time.Time{}, fmt.Errorf("malformed unsubscribe token")
	}

	userID := string(data[:idx])
	ts, err := strconv.ParseInt(string(data[idx+1:]), 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed unsubscribe token timestamp: %w", err)
	}
	return userID, time.Unix(ts, 0), nil
}
