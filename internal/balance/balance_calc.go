package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingDays menghitung durasi cuti sebagai jumlah hari kalender
// inklusif. Start == end berarti satu hari. Kebijakan libur/akhir pekan
// sengaja tidak masuk sini; kalau nanti ada kalender libur, fungsi ini
// satu-satunya tempat perhitungannya berubah.
func WorkingDays(start, end time.Time) decimal.Decimal {
	startDay := start.Truncate(24 * time.Hour)
	endDay := end.Truncate(24 * time.Hour)
	if endDay.Before(startDay) {
		return decimal.Zero
	}
	days := int64(endDay.Sub(startDay).Hours()/24) + 1
	return decimal.NewFromInt(days)
}

// Remaining = allocated - used - pending, dibulatkan satu desimal.
// Boleh negatif: alokasi bisa diturunkan setelah cuti terpakai.
func Remaining(allocated, used, pending decimal.Decimal) decimal.Decimal {
	return allocated.Sub(used).Sub(pending).Round(1)
}
