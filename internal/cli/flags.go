package cli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// rangeValue is a --range flag parsed with domain.ParseRangeUnit, so a
// bad unit fails while flags are parsed.
type rangeValue struct{ unit *domain.RangeUnit }

var _ pflag.Value = rangeValue{}

func (v rangeValue) String() string {
	if v.unit == nil {
		return ""
	}
	return string(*v.unit)
}

func (v rangeValue) Set(s string) error {
	u, err := domain.ParseRangeUnit(s)
	if err != nil {
		return err
	}
	*v.unit = u
	return nil
}

func (rangeValue) Type() string { return "range" }

// dateValue is a YYYY-MM-DD (or RFC3339) flag.
type dateValue struct{ t *time.Time }

var _ pflag.Value = dateValue{}

func (v dateValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return domain.FormatDate(*v.t)
}

func (v dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*v.t = t
	return nil
}

func (dateValue) Type() string { return "date" }
