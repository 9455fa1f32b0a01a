package service

import (
	"context"
	"fmt"
	"strings"

	"cutrack/internal/modules/timetracking/domain"
	timetrackingout "cutrack/internal/modules/timetracking/port/out"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
)

type TimeTrackingService struct {
	clock   clock.Clock
	gateway timetrackingout.EntryGateway
}

func NewTimeTrackingService(clock clock.Clock, gateway timetrackingout.EntryGateway) *TimeTrackingService {
	return &TimeTrackingService{clock: clock, gateway: gateway}
}

func (s *TimeTrackingService) FetchEntries(ctx context.Context, token, teamID string, period domain.Period, userID string) ([]domain.Entry, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrAuth
	}
	if strings.TrimSpace(teamID) == "" {
		return nil, fmt.Errorf("%w: team id is required", apperrors.ErrInvalidInput)
	}
	if period.End.Before(period.Start) {
		return nil, fmt.Errorf("%w: range end is before start", apperrors.ErrInvalidInput)
	}
	return s.gateway.ListEntries(ctx, token, teamID, period, userID)
}

// DayTotal sums today's entries in milliseconds.
func (s *TimeTrackingService) DayTotal(ctx context.Context, token, teamID, userID string) (int64, domain.Period, []domain.Entry, error) {
	return s.total(ctx, token, teamID, userID, domain.DayPeriod(s.clock.Now()))
}

// WeekTotal sums the entries of the current Monday-start week.
func (s *TimeTrackingService) WeekTotal(ctx context.Context, token, teamID, userID string) (int64, domain.Period, []domain.Entry, error) {
	return s.total(ctx, token, teamID, userID, domain.WeekPeriod(s.clock.Now()))
}

func (s *TimeTrackingService) total(ctx context.Context, token, teamID, userID string, period domain.Period) (int64, domain.Period, []domain.Entry, error) {
	entries, err := s.FetchEntries(ctx, token, teamID, period, userID)
	if err != nil {
		return 0, period, nil, err
	}
	return domain.SumPositiveDurations(entries), period, entries, nil
}

func (s *TimeTrackingService) CreateEntry(ctx context.Context, token, taskID string, entry domain.NewEntry) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperrors.ErrAuth
	}
	if strings.TrimSpace(taskID) == "" {
		return "", fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	if err := entry.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.gateway.CreateEntry(ctx, token, taskID, entry)
}
