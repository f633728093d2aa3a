package clock

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Clock 业务时区下的当前时间，所有 "今天" 的判断都从这里取
type Clock interface {
	Now() time.Time
	Today() string
}

type zonedClock struct {
	loc *time.Location
}

// New 按时区名称创建 Clock
func New(tz string) (Clock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return &zonedClock{loc: loc}, nil
}

func (c *zonedClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *zonedClock) Today() string {
	return c.Now().Format(DateLayout)
}

type fixedClock struct {
	t time.Time
}

// Fixed 返回固定时间的 Clock，测试用
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func (c fixedClock) Today() string {
	return c.t.Format(DateLayout)
}

// ParseDate 校验 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AddDays 在 ISO 日期上加减天数
func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}
