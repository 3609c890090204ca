package estimates

import (
	"time"

	"github.com/dustin/go-humanize"
)

const dateLayout = "1/2/2006"

// FormatCurrency renders an amount as US dollars with two decimals and
// thousands grouping: 1234.5 => "$1,234.50".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// FormatDate renders t as a short en-US date in local time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}
