package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const numberPrefix = "SR"

// NewNumber generates an order number of the form SR-YYYYMMDD-XXXXXXXX, where
// the suffix is four random bytes in upper-case hex. Uniqueness is statistical:
// there is no check against already stored numbers.
func NewNumber(now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("order: failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", numberPrefix, now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf))), nil
}
