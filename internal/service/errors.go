package service

import (
	"errors"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"gorm.io/gorm"
)

// notFound turns gorm.ErrRecordNotFound into a NotFound domain error and
// passes every other error through.
func notFound(err error, detail string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(detail)
	}
	return err
}

// conflictOnDuplicate reports unique-key races the pre-checks did not catch.
func conflictOnDuplicate(err error, detail string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict(detail)
	}
	return err
}

func toPage(q dto.PageQuery) repository.Page {
	return repository.Page{Skip: q.Skip, Limit: q.Limit}
}

const dateLayout = "2006-01-02"

// parseDateRange reads an inclusive [start, end] pair of calendar dates.
func parseDateRange(q dto.DateRangeQuery) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.InvalidInput("Invalid start_date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.InvalidInput("Invalid end_date, expected YYYY-MM-DD")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apierror.InvalidInput("start_date must not be after end_date")
	}
	return from, to, nil
}
