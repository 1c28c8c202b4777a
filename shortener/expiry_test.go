package shortener

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func TestResolveExpiry(t *testing.T) {
	tests := []struct {
		name     string
		dateIn   string
		timeIn   string
		wantDate string
		wantTime string
		wantErr  error
	}{
		{
			name:     "neither given defaults to sentinel",
			wantDate: SentinelDate,
			wantTime: EndOfDay,
		},
		{
			name:     "date only defaults to end of day",
			dateIn:   "2025-07-01",
			wantDate: "2025-07-01",
			wantTime: EndOfDay,
		},
		{
			name:     "time only defaults to current date",
			timeIn:   "14:00",
			wantDate: "2025-06-15",
			wantTime: "14:00",
		},
		{
			name:    "time only earlier today is rejected",
			timeIn:  "10:00",
			wantErr: ErrPastExpiration,
		},
		{
			name:    "past date is rejected",
			dateIn:  "2025-06-14",
			wantErr: ErrPastExpiration,
		},
		{
			name:    "same day at the current minute is rejected",
			dateIn:  "2025-06-15",
			timeIn:  "12:30",
			wantErr: ErrPastExpiration,
		},
		{
			name:     "same day one minute ahead is accepted",
			dateIn:   "2025-06-15",
			timeIn:   "12:31",
			wantDate: "2025-06-15",
			wantTime: "12:31",
		},
		{
			name:    "malformed date is rejected",
			dateIn:  "next tuesday",
			wantErr: ErrInvalidExpiration,
		},
		{
			name:    "unpadded date is rejected",
			dateIn:  "2025-6-1",
			wantErr: ErrInvalidExpiration,
		},
		{
			name:    "unpadded time is rejected",
			dateIn:  "2025-07-01",
			timeIn:  "9:00",
			wantErr: ErrInvalidExpiration,
		},
		{
			name:     "inputs are trimmed",
			dateIn:   " 2025-07-01 ",
			timeIn:   " 18:45 ",
			wantDate: "2025-07-01",
			wantTime: "18:45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotTime, err := resolveExpiry(tt.dateIn, tt.timeIn, testNow)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got err %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantDate, gotDate)
			assert.Equal(t, tt.wantTime, gotTime)
		})
	}
}

func TestLiveAt(t *testing.T) {
	assert.True(t, liveAt("2025-06-16", "00:00", testNow), "tomorrow is live")
	assert.True(t, liveAt("2025-06-15", "12:31", testNow), "next minute is live")
	assert.True(t, liveAt(SentinelDate, EndOfDay, testNow), "sentinel is live")

	// Expiry is exclusive of the exact instant.
	assert.False(t, liveAt("2025-06-15", "12:30", testNow))
	assert.False(t, liveAt("2025-06-15", "12:29", testNow))
	assert.False(t, liveAt("2025-06-14", "23:59", testNow))
}
