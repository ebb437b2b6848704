package models

// PointFilter represents filter parameters for querying location points
type PointFilter struct {
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
	Date      string `form:"date"`      // YYYY-MM-DD, shorthand for a whole day
	Source    string `form:"source"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// SessionFilter represents filter parameters for querying activity sessions
type SessionFilter struct {
	StartDate     string  `form:"startDate"` // YYYY-MM-DD
	EndDate       string  `form:"endDate"`   // YYYY-MM-DD
	ActivityType  string  `form:"activityType"`
	MinConfidence float64 `form:"minConfidence"`
	Label         string  `form:"label"`
	Page          int     `form:"page"`
	PageSize      int     `form:"pageSize"`
}
