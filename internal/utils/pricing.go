package utils

import (
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

// dateLayout is the wire format for all calendar dates in the system.
const dateLayout = "2006-01-02"

// LateFeeResult carries the outcome of a late-fee computation.
type LateFeeResult struct {
	FeeCents int32
	LateDays int32
	OnTime   bool
}

// ParseDate converts a yyyy-mm-dd formatted string into a calendar date.
// The returned time is midnight UTC, so date subtraction yields whole days.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a yyyy-mm-dd date", domain.ErrInvalidDateRange, dateStr)
	}
	return t, nil
}

// FormatDate renders a calendar date in yyyy-mm-dd form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// RentalDays returns the rental duration in days with both the start and the
// end date included. A same-day rental is 1 day.
func RentalDays(start, end time.Time) (int32, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end date %s is before start date %s",
			domain.ErrInvalidDateRange, FormatDate(end), FormatDate(start))
	}
	return int32(end.Sub(start).Hours()/24) + 1, nil
}

// RentalFee computes the total rental cost in cents:
// dailyRateCents * inclusive days + additionalCents. All arithmetic is in
// integer cents, so repeated computation never drifts.
func RentalFee(dailyRateCents int32, startDate, endDate string, additionalCents int32) (int32, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}
	return dailyRateCents*days + additionalCents, nil
}

// LateFee computes the penalty for returning a car after the agreed end date.
// A return on or before the agreed date carries no fee. Otherwise the fee is
// lateDays * totalPriceCents * rateBasisPoints / 10000, truncated to whole
// cents. rateBasisPoints of 1500 is the standard 15% per late day.
func LateFee(agreedEndDate, actualReturnDate string, totalPriceCents int32, rateBasisPoints int32) (LateFeeResult, error) {
	agreed, err := ParseDate(agreedEndDate)
	if err != nil {
		return LateFeeResult{}, err
	}
	actual, err := ParseDate(actualReturnDate)
	if err != nil {
		return LateFeeResult{}, err
	}

	if !actual.After(agreed) {
		return LateFeeResult{OnTime: true}, nil
	}

	lateDays := int32(actual.Sub(agreed).Hours() / 24)
	fee := int64(lateDays) * int64(totalPriceCents) * int64(rateBasisPoints) / 10000
	return LateFeeResult{FeeCents: int32(fee), LateDays: lateDays}, nil
}
