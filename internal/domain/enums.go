package domain

import (
	"fmt"
	"strings"
)

// RangeUnit is the timeline granularity. It controls the width of one
// timeline column and the date arithmetic used to place items.
type RangeUnit string

const (
	RangeDaily   RangeUnit = "daily"
	RangeWeekly  RangeUnit = "weekly"
	RangeMonthly RangeUnit = "monthly"
)

// RangeUnits lists the accepted units in display order.
var RangeUnits = []RangeUnit{RangeDaily, RangeWeekly, RangeMonthly}

// ParseRangeUnit accepts a unit name case-insensitively. Short forms
// "d", "w" and "m" are also accepted.
func ParseRangeUnit(s string) (RangeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return RangeDaily, nil
	case "weekly", "week", "w":
		return RangeWeekly, nil
	case "monthly", "month", "m", "":
		return RangeMonthly, nil
	}
	return "", fmt.Errorf("unknown range %q (expected daily, weekly or monthly)", s)
}

func (u RangeUnit) String() string { return string(u) }
