package dto

type ReportSubmitDTO struct {
	AccountID     uint64 `json:"instagram_account_id" validate:"required"`
	FollowerCount *int   `json:"follower_count" validate:"required,min=0"`
}

// ReportSubmitResultDTO Status: created / updated
type ReportSubmitResultDTO struct {
	Status string `json:"status"`
}

type TodayReportDTO struct {
	AccountID uint64 `json:"account_id"`
	Count     int    `json:"count"`
	Locked    bool   `json:"locked"`
}

type ReportRowDTO struct {
	ID              uint64 `json:"id"`
	Date            string `json:"date"`
	EmployeeName    string `json:"employee_name"`
	AccountUsername string `json:"account_username"`
	Count           int    `json:"count"`
	Locked          bool   `json:"locked"`
}

type SummaryReportDTO struct {
	EmployeeName string `json:"employee_name"`
	Account      string `json:"account"`
	Count        int    `json:"count"`
	Locked       bool   `json:"locked"`
}

type DatePointDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DailySummaryDTO struct {
	Date            string              `json:"date"`
	TotalFollowers  int                 `json:"total_followers"`
	Reports         []*SummaryReportDTO `json:"reports"`
	DownloadsByDate []*DatePointDTO     `json:"downloads_by_date"`
}

// DateRangeQuery 日期闭区间，空表示不限
type DateRangeQuery struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}
