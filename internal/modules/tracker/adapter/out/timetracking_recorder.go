package out

import (
	"context"
	"time"

	accountin "cutrack/internal/modules/account/port/in"
	timetrackingdto "cutrack/internal/modules/timetracking/dto"
	timetrackingin "cutrack/internal/modules/timetracking/port/in"
	trackerout "cutrack/internal/modules/tracker/port/out"
	apperrors "cutrack/internal/platform/errors"
)

// TimeTrackingRecorder creates the remote entry with the stored credential.
type TimeTrackingRecorder struct {
	account  accountin.Usecase
	entries  timetrackingin.Usecase
	billable bool
}

func NewTimeTrackingRecorder(account accountin.Usecase, entries timetrackingin.Usecase, billable bool) trackerout.EntryRecorder {
	return &TimeTrackingRecorder{account: account, entries: entries, billable: billable}
}

func (r *TimeTrackingRecorder) Record(ctx context.Context, taskID string, start, end time.Time, description string) (string, error) {
	current, err := r.account.Current(ctx)
	if err != nil {
		return "", err
	}
	if current.Token == "" {
		return "", apperrors.ErrAuth
	}
	out, err := r.entries.CreateEntry(ctx, timetrackingdto.CreateEntryInput{
		TaskID:      taskID,
		Token:       current.Token,
		Description: description,
		Start:       start,
		End:         end,
		Billable:    r.billable,
	})
	if err != nil {
		return "", err
	}
	return out.EntryID, nil
}
