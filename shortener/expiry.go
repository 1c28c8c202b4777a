package shortener

import (
	"strings"
	"time"
)

// Far-future sentinel used when no expiration is requested.
const (
	SentinelDate = "2099-12-31"
	EndOfDay     = "23:59"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// resolveExpiry turns (possibly partial) date/time input into a concrete
// expiry pair and validates it lies strictly in the future.
//
// Rules, in order: neither given -> sentinel date at end of day; date only ->
// end of that day; time only -> today at that time. A same-day expiry must be
// strictly after the current minute; expiry is exclusive of the exact instant.
func resolveExpiry(dateIn, timeIn string, now time.Time) (string, string, error) {
	dateIn = strings.TrimSpace(dateIn)
	timeIn = strings.TrimSpace(timeIn)

	nowDate := now.Format(dateLayout)
	nowTime := now.Format(timeLayout)

	expDate, expTime := dateIn, timeIn
	switch {
	case dateIn == "" && timeIn == "":
		expDate, expTime = SentinelDate, EndOfDay
	case timeIn == "":
		expTime = EndOfDay
	case dateIn == "":
		expDate = nowDate
	}

	// Zero-padded fixed-width values are what makes lexicographic comparison
	// chronological, so the length check is part of validation.
	if len(expDate) != len(dateLayout) {
		return "", "", ErrInvalidExpiration
	}
	if _, err := time.Parse(dateLayout, expDate); err != nil {
		return "", "", ErrInvalidExpiration
	}
	if len(expTime) != len(timeLayout) {
		return "", "", ErrInvalidExpiration
	}
	if _, err := time.Parse(timeLayout, expTime); err != nil {
		return "", "", ErrInvalidExpiration
	}

	if expDate < nowDate {
		return "", "", ErrPastExpiration
	}
	if expDate == nowDate && expTime <= nowTime {
		return "", "", ErrPastExpiration
	}
	return expDate, expTime, nil
}

// liveAt reports whether a record with the given expiry pair is still live.
// Lexicographic comparison is chronological here because both formats are
// fixed-width zero-padded.
func liveAt(expDate, expTime string, now time.Time) bool {
	nowDate := now.Format(dateLayout)
	if expDate != nowDate {
		return expDate > nowDate
	}
	return expTime > now.Format(timeLayout)
}
