package balance_test

import (
	"testing"
	"time"

	"go-backoffice/internal/balance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int64
	}{
		{"single day", day(2026, 3, 2), day(2026, 3, 2), 1},
		{"inclusive range", day(2026, 3, 2), day(2026, 3, 4), 3},
		{"across month boundary", day(2026, 1, 30), day(2026, 2, 2), 4},
		{"across year boundary", day(2025, 12, 30), day(2026, 1, 2), 4},
		{"leap february", day(2028, 2, 28), day(2028, 3, 1), 3},
		{"end before start", day(2026, 3, 4), day(2026, 3, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := balance.WorkingDays(tt.start, tt.end)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
				"got %s, want %d", got.String(), tt.want)
		})
	}
}

func TestWorkingDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 10, 0, 0, time.UTC)
	assert.True(t, balance.WorkingDays(start, end).Equal(decimal.NewFromInt(2)))
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, "7", balance.Remaining(
		decimal.RequireFromString("12"),
		decimal.RequireFromString("2"),
		decimal.RequireFromString("3"),
	).String())

	assert.Equal(t, "6.5", balance.Remaining(
		decimal.RequireFromString("12"),
		decimal.RequireFromString("2.5"),
		decimal.RequireFromString("3"),
	).String())

	// Alokasi bisa diturunkan setelah cuti terpakai, sisa boleh negatif.
	assert.Equal(t, "-2", balance.Remaining(
		decimal.RequireFromString("5"),
		decimal.RequireFromString("6"),
		decimal.RequireFromString("1"),
	).String())
}
