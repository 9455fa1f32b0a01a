package dto

import "time"

type StatisticsOutput struct {
	TodaySeconds   int64
	WeekSeconds    int64
	TodayFormatted string
	WeekFormatted  string
	WeekRange      string
	StartDate      time.Time
	EndDate        time.Time
	// Source is "remote" or "local".
	Source string
}
