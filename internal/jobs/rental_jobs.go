package jobs

import (
	"context"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

// SendOverdueReminders emails customers whose confirmed bookings are past the
// agreed end date. Booking status is left alone; the late fee is settled when
// the car actually comes back.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		today := utils.FormatDate(time.Now())

		overdue, err := jr.store.Bookings.ListOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue bookings", "error", err)
			return
		}

		count := 0
		for _, b := range overdue {
			customer, err := jr.store.Users.GetByID(ctx, b.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue booking", "booking_id", b.ID, "error", err)
				continue
			}
			car, err := jr.store.Cars.GetByID(ctx, b.CarID)
			if err != nil {
				logger.Error("Failed to load car for overdue booking", "booking_id", b.ID, "error", err)
				continue
			}

			label := fmt.Sprintf("%d %s %s", car.Year, car.Make, car.Model)
			if err := jr.emailSvc.SendOverdueReminder(ctx, customer.Email, customer.Name, label, b.EndDate); err != nil {
				logger.Error("Failed to send overdue reminder", "booking_id", b.ID, "error", err)
				continue
			}

			note := &domain.Notification{
				UserID:  b.CustomerID,
				Title:   "Rental Overdue",
				Message: fmt.Sprintf("Your rental of the %s was due back on %s", label, b.EndDate),
				Attributes: map[string]string{
					"type":       "BOOKING_OVERDUE",
					"booking_id": fmt.Sprintf("%d", b.ID),
				},
			}
			if err := jr.store.Notifications.Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue notification", "booking_id", b.ID, "error", err)
			}

			count++
			logger.Debug("Sent overdue reminder",
				"booking_id", b.ID,
				"customer_id", b.CustomerID,
				"car_id", b.CarID,
				"end_date", b.EndDate)
		}

		logger.Info("Sent overdue reminders", "count", count, "overdue_total", len(overdue))
	})
}
