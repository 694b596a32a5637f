package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Tokens travel in query strings, so the URL-safe alphabet without padding is used.
var encoding = base64.RawURLEncoding

const (
	fieldSep   = "|"
	timeFormat = time.RFC3339Nano
)

// ErrBadToken is returned for any token that cannot be decoded back into its fields.
var ErrBadToken = errors.New("invalid pagination token")

// EncodeToken builds an opaque keyset cursor from the listing sort keys:
// the entity's business date and its creation time as tiebreaker.
func EncodeToken(entityDate time.Time, createdAt time.Time) string {
	return EncodeMultiFieldToken(entityDate.Format(timeFormat), createdAt.Format(timeFormat))
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) (time.Time, time.Time, error) {
	fields, err := DecodeMultiFieldToken(token, 2)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	entityDate, err := time.Parse(timeFormat, fields[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad date field: %v", ErrBadToken, err)
	}
	createdAt, err := time.Parse(timeFormat, fields[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad created_at field: %v", ErrBadToken, err)
	}
	return entityDate, createdAt, nil
}

// EncodeMultiFieldToken builds a cursor from arbitrary string fields, for listings
// whose sort keys are not the date/created_at pair.
func EncodeMultiFieldToken(fields ...string) string {
	return encoding.EncodeToString([]byte(strings.Join(fields, fieldSep)))
}

// DecodeMultiFieldToken reverses EncodeMultiFieldToken, enforcing the field count.
func DecodeMultiFieldToken(token string, expectedFields int) ([]string, error) {
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	fields := strings.Split(string(raw), fieldSep)
	if len(fields) != expectedFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrBadToken, expectedFields, len(fields))
	}
	return fields, nil
}
