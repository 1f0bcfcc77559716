package api

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// DateLayout is the calendar range date format
const DateLayout = "2006-01-02"

// Calendar returns per-day activity and completion between from and to inclusive
func (s *Service) Calendar(ctx context.Context, from, to time.Time) (*Calendar, error) {
	if from.IsZero() || to.IsZero() {
		return nil, errors.New("calendar range requires both from and to")
	}
	query := url.Values{}
	query.Set("from", from.Format(DateLayout))
	query.Set("to", to.Format(DateLayout))
	ret := &Calendar{}
	return ret, s.get(ctx, CalendarPath, query, ret)
}
