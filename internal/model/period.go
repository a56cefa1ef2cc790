package model

// Period is a supported history lookback window. The values double as the
// range parameter of the Yahoo Finance chart API.
type Period string

const (
	PeriodWeek     Period = "7d"
	PeriodMonth    Period = "1mo"
	PeriodHalfYear Period = "6mo"
	PeriodTwoYears Period = "2y"
	PeriodFiveYears Period = "5y"
	PeriodTenYears Period = "10y"
)

// DefaultPeriod is used when a request does not specify one.
const DefaultPeriod = PeriodMonth

// AllPeriods lists every supported period in ascending order.
func AllPeriods() []Period {
	return []Period{PeriodWeek, PeriodMonth, PeriodHalfYear, PeriodTwoYears, PeriodFiveYears, PeriodTenYears}
}

// ParsePeriod validates a raw period string.
func ParsePeriod(s string) (Period, bool) {
	for _, p := range AllPeriods() {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

func (p Period) String() string { return string(p) }

// YahooRange returns the range value to pass to the Yahoo chart API.
func (p Period) YahooRange() string { return string(p) }
