package dto

type DownloadRecordCreateDTO struct {
	EmployeeID uint64 `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Count      *int   `json:"count" validate:"required,min=0"`
}

type DownloadAddResultDTO struct {
	Status   string `json:"status"`
	NewTotal int64  `json:"new_total"`
}

type EmployeeDownloadDTO struct {
	ID             uint64 `json:"id"`
	FullName       string `json:"full_name"`
	UserName       string `json:"user_name"`
	TotalDownloads int    `json:"total_downloads"`
	RangeDownloads int    `json:"range_downloads"`
}

type DownloadStatsDTO struct {
	TotalDownloads int                    `json:"total_downloads"`
	TotalAccounts  int64                  `json:"total_accounts"`
	RangeTotal     int                    `json:"range_total"`
	BestEmployee   string                 `json:"best_employee"`
	Employees      []*EmployeeDownloadDTO `json:"employees"`
}

type RecentDownloadDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Count     int    `json:"count"`
}

type MyDownloadsDTO struct {
	TotalDownloads int64                `json:"total_downloads"`
	RecentActivity []*RecentDownloadDTO `json:"recent_activity"`
}

// ChartDTO 图表数据，Labels 升序
type ChartDTO struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}
