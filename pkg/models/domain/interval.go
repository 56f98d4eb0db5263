package domain

// Granularity is the report bucketing unit.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// DateLayout is the canonical query date format (yyyy-MM-dd).
const DateLayout = "2006-01-02"
