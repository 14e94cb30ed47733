package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/client/notify"
	"github.com/dmitrijs2005/gophdiner/internal/logging"
)

// ReservationDraft is the booking form as typed. Numeric fields stay text
// until Request converts them.
type ReservationDraft struct {
	Date          string
	Time          string
	PartySize     string
	TableNumber   string
	CustomerName  string
	CustomerPhone string
	Notes         string
}

// Request converts the draft into the payload the reservation service
// expects. Party size and table number must be positive integers.
func (d ReservationDraft) Request() (models.ReservationRequest, error) {
	req := models.ReservationRequest{
		Date:          strings.TrimSpace(d.Date),
		Time:          strings.TrimSpace(d.Time),
		CustomerName:  strings.TrimSpace(d.CustomerName),
		CustomerPhone: strings.TrimSpace(d.CustomerPhone),
		Notes:         strings.TrimSpace(d.Notes),
	}
	if req.Date == "" || req.Time == "" {
		return req, fmt.Errorf("%w: date and time are required", ErrInvalidReservation)
	}
	if req.CustomerName == "" {
		return req, fmt.Errorf("%w: customer name is required", ErrInvalidReservation)
	}

	var err error
	if req.PartySize, err = positiveInt("party size", d.PartySize); err != nil {
		return req, err
	}
	if req.TableNumber, err = positiveInt("table number", d.TableNumber); err != nil {
		return req, err
	}
	return req, nil
}

func positiveInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidReservation, field, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %s must be at least 1", ErrInvalidReservation, field)
	}
	return n, nil
}

// ReservationService books tables.
type ReservationService struct {
	client   ReservationClient
	notifier notify.Notifier
	log      logging.Logger
}

func NewReservationService(client ReservationClient, notifier notify.Notifier, logger logging.Logger) *ReservationService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ReservationService{client: client, notifier: notifier, log: logger.With("component", "reservation")}
}

// Book validates the draft and creates the reservation. One notification is
// emitted either way.
func (s *ReservationService) Book(ctx context.Context, draft ReservationDraft) (*models.Reservation, error) {
	req, err := draft.Request()
	if err != nil {
		s.notifier.Error("Reservation failed", err.Error())
		return nil, err
	}

	res, err := s.client.CreateReservation(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "reservation failed", "error", err)
		s.notifier.Error("Reservation failed", err.Error())
		return nil, err
	}

	s.log.Info(ctx, "reservation created", "reservation_id", res.ID, "table", req.TableNumber)
	s.notifier.Success("Table reserved", fmt.Sprintf("Table %d on %s at %s for %d", req.TableNumber, req.Date, req.Time, req.PartySize))
	return res, nil
}
