package util

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Periods are the historical ranges offered by the dashboard, shortest first.
var Periods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}

// PeriodStart returns the start of the historical range period ending at now.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "1mo":
		return now.AddDate(0, -1, 0), nil
	case "3mo":
		return now.AddDate(0, -3, 0), nil
	case "6mo":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "2y":
		return now.AddDate(-2, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w %q: must be one of %v", ErrInvalidPeriod, period, Periods)
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextMarketDate predicts the date of the next stock market update.
// It handles timezone conversion, business day logic.
// It returns the next valid market date (a weekday) at 4:30 PM New York time, in UTC.
func NextMarketDate(input time.Time) time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Errorf("Failed to load location 'America/New_York': %v. Falling back to UTC.", err)
		loc = time.UTC
	}
	nowET := input.In(loc)

	next := time.Date(nowET.Year(), nowET.Month(), nowET.Day(), 16, 30, 0, 0, loc)

	if nowET.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next.UTC()
}

// Crypto pairs as Yahoo spells them: BTC-USD, ETH-EUR, SOL-USDT
var allWeekSymbol = regexp.MustCompile(`^[A-Z0-9]{2,}-(USD|USDT|USDC|EUR|GBP|JPY|BTC|ETH)$`)

// TradesAllWeek reports whether symbol is quoted around the clock, weekends included
func TradesAllWeek(symbol string) bool {
	return allWeekSymbol.MatchString(symbol)
}

// NextUpdate returns when stored prices of symbol go stale. Around-the-clock
// symbols refresh every hour, everything else after the next US market close.
func NextUpdate(symbol string, now time.Time) time.Time {
	if TradesAllWeek(symbol) {
		return now.UTC().Truncate(time.Hour).Add(time.Hour)
	}
	return NextMarketDate(now)
}
