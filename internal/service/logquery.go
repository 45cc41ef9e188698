package service

import (
	"net/url"
	"strconv"
	"time"

	"github.com/vbonduro/pantraqa/internal/domain"
)

// LogField names one stock-log filter. The value is also the query parameter
// understood by the API.
type LogField string

const (
	FieldUser     LogField = "userId"
	FieldDrink    LogField = "drinkId"
	FieldLocation LogField = "storageLocationId"
	FieldAction   LogField = "action"
	FieldDateFrom LogField = "dateFrom"
	FieldDateTo   LogField = "dateTo"
)

// LogFields lists every filter in form order.
var LogFields = []LogField{FieldUser, FieldDrink, FieldLocation, FieldAction, FieldDateFrom, FieldDateTo}

const dateLayout = "2006-01-02"

// IsLogField reports whether name is one of the stock-log filters.
func IsLogField(name string) bool {
	return fieldIndex(LogField(name)) >= 0
}

func fieldIndex(f LogField) int {
	for i, lf := range LogFields {
		if lf == f {
			return i
		}
	}
	return -1
}

// LogQuery is the page and filter set of the stock-log view. It is a value:
// every method returns a modified copy.
type LogQuery struct {
	Page    int
	filters [6]string
}

// NewLogQuery returns an unfiltered query for the first page.
func NewLogQuery() LogQuery {
	return LogQuery{Page: 1}
}

// ParseLogQuery reads a query from request values. Values that do not parse
// for their field are dropped, and a missing or invalid page becomes 1.
func ParseLogQuery(v url.Values) LogQuery {
	q := NewLogQuery()
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	for i, f := range LogFields {
		q.filters[i] = normalizeFilter(f, v.Get(string(f)))
	}
	return q
}

func normalizeFilter(f LogField, v string) string {
	if v == "" {
		return ""
	}
	switch f {
	case FieldUser, FieldDrink, FieldLocation:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return ""
		}
		return strconv.FormatInt(id, 10)
	case FieldAction:
		a, ok := domain.ParseStockAction(v)
		if !ok {
			return ""
		}
		return string(a)
	case FieldDateFrom, FieldDateTo:
		if _, err := time.Parse(dateLayout, v); err != nil {
			return ""
		}
		return v
	default:
		return ""
	}
}

// Get returns the value of f, or "" when unset.
func (q LogQuery) Get(f LogField) string {
	i := fieldIndex(f)
	if i < 0 {
		return ""
	}
	return q.filters[i]
}

// WithFilter sets f to v and returns to the first page. Other filters are
// left as they are.
func (q LogQuery) WithFilter(f LogField, v string) LogQuery {
	i := fieldIndex(f)
	if i < 0 {
		return q
	}
	q.filters[i] = normalizeFilter(f, v)
	q.Page = 1
	return q
}

// Clear unsets f and returns to the first page.
func (q LogQuery) Clear(f LogField) LogQuery {
	return q.WithFilter(f, "")
}

// Step moves the page by delta within [1, totalPages].
func (q LogQuery) Step(delta, totalPages int) LogQuery {
	q.Page = StepPage(q.Page, delta, totalPages)
	return q
}

// Filtered reports whether any filter is set.
func (q LogQuery) Filtered() bool {
	for _, v := range q.filters {
		if v != "" {
			return true
		}
	}
	return false
}

// ExportValues returns the non-empty filters without the page.
func (q LogQuery) ExportValues() url.Values {
	v := url.Values{}
	for i, f := range LogFields {
		if q.filters[i] != "" {
			v.Set(string(f), q.filters[i])
		}
	}
	return v
}

// Values returns the page and the non-empty filters.
func (q LogQuery) Values() url.Values {
	v := q.ExportValues()
	v.Set("page", strconv.Itoa(max(q.Page, 1)))
	return v
}
