package stats

import (
	"sort"
)

// Record 参与聚合的下载记录最小视图
type Record struct {
	EmployeeID uint64
	StartDate  string
	EndDate    string
	Count      int
}

// Point 时间序列上的一个点，Date 为记录的 start_date
type Point struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Contained 记录完全落在 [start, end] 内才计入区间，部分重叠不算
func Contained(r Record, start, end string) bool {
	return r.StartDate >= start && r.EndDate <= end
}

// Total 所有记录 Count 之和
func Total(records []Record) int {
	total := 0
	for _, r := range records {
		total += r.Count
	}
	return total
}

// RangeTotal 区间内（严格包含）记录之和
func RangeTotal(records []Record, start, end string) int {
	total := 0
	for _, r := range records {
		if Contained(r, start, end) {
			total += r.Count
		}
	}
	return total
}

// SumByStartDate 按 start_date 分组求和
func SumByStartDate(records []Record) map[string]int {
	m := make(map[string]int)
	for _, r := range records {
		m[r.StartDate] += r.Count
	}
	return m
}

// Series 生成按日期排序的序列，ISO 日期的字典序即时间序
func Series(records []Record, desc bool) []Point {
	m := SumByStartDate(records)
	points := make([]Point, 0, len(m))
	for d, c := range m {
		points = append(points, Point{Date: d, Count: c})
	}
	sort.Slice(points, func(i, j int) bool {
		if desc {
			return points[i].Date > points[j].Date
		}
		return points[i].Date < points[j].Date
	})
	return points
}

// EmployeeTotal 单个员工的聚合结果
type EmployeeTotal struct {
	EmployeeID uint64
	Total      int
	RangeTotal int
}

// Summary 区间统计结果
type Summary struct {
	Employees       []EmployeeTotal
	GrandTotal      int
	GrandRangeTotal int
	Best            *EmployeeTotal
}

// Summarize 按员工聚合。employeeIDs 须为 id 升序，决定并列时的先后；
// 未传区间 (start 或 end 为空) 时区间合计为 0
func Summarize(employeeIDs []uint64, records []Record, start, end string) Summary {
	byEmployee := make(map[uint64][]Record, len(employeeIDs))
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	withRange := start != "" && end != ""
	var s Summary
	s.Employees = make([]EmployeeTotal, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		recs := byEmployee[id]
		et := EmployeeTotal{EmployeeID: id, Total: Total(recs)}
		if withRange {
			et.RangeTotal = RangeTotal(recs, start, end)
		}
		s.GrandTotal += et.Total
		s.GrandRangeTotal += et.RangeTotal
		s.Employees = append(s.Employees, et)
	}

	if best := BestEmployee(s.Employees); best >= 0 {
		b := s.Employees[best]
		s.Best = &b
	}

	// 稳定排序，并列保持 id 升序
	sort.SliceStable(s.Employees, func(i, j int) bool {
		return s.Employees[i].Total > s.Employees[j].Total
	})
	return s
}

// BestEmployee 返回 Total 最大者下标，并列取最先出现的；空切片返回 -1
func BestEmployee(totals []EmployeeTotal) int {
	best := -1
	for i, t := range totals {
		if best == -1 || t.Total > totals[best].Total {
			best = i
		}
	}
	return best
}
