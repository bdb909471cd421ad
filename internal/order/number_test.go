package order_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartring-shop/order-backend/internal/order"
)

func TestNewNumber_Format(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	number, err := order.NewNumber(now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^SR-\d{8}-[0-9A-F]{8}$`), number)
	assert.True(t, strings.HasPrefix(number, "SR-20250314-"))
}

func TestNewNumber_Uniqueness(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		number, err := order.NewNumber(now)
		require.NoError(t, err)

		_, dup := seen[number]
		require.False(t, dup, "duplicate order number generated: %s", number)
		seen[number] = struct{}{}
	}
}
