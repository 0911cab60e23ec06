package domain

// Car is a fleet vehicle offered for rental. AvailableNow is owned by the
// rental lifecycle engine: approval claims the car, rejection/cancellation of
// a confirmed booking and return release it. Fleet admins never toggle it
// directly.
type Car struct {
	ID             int32  `json:"id"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int32  `json:"year"`
	Mileage        int32  `json:"mileage"`
	AvailableNow   bool   `json:"available_now"`
	MinRentDays    int32  `json:"min_rent_days"`
	MaxRentDays    int32  `json:"max_rent_days"`
	DailyRateCents int32  `json:"daily_rate_cents"`
	CreatedOn      string `json:"created_on"`
	UpdatedOn      string `json:"updated_on"`
}
