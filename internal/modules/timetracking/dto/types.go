package dto

import "time"

type FetchInput struct {
	TeamID string
	Token  string
	UserID string
	Start  time.Time
	End    time.Time
}

type EntryOutput struct {
	ID          string
	TaskID      string
	TaskName    string
	Description string
	Start       time.Time
	End         time.Time
	DurationMS  int64
}

type TotalInput struct {
	TeamID string
	Token  string
	UserID string
}

type TotalOutput struct {
	TotalMS int64
	Start   time.Time
	End     time.Time
	Entries []EntryOutput
}

type StatisticsOutput struct {
	TodaySeconds   int64
	WeekSeconds    int64
	TodayFormatted string
	WeekFormatted  string
	WeekStart      time.Time
	WeekEnd        time.Time
}

type CreateEntryInput struct {
	TaskID      string
	Token       string
	Description string
	Start       time.Time
	End         time.Time
	Billable    bool
}

type CreateEntryOutput struct {
	EntryID string
}
