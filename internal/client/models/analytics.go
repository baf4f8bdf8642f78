package models

// Stats is the free-form counter map returned by the /<resource>/stats
// endpoints, e.g. {"total": 120, "active": 97}.
type Stats map[string]any

// DashboardAnalytics is the already-aggregated data behind the dashboard.
type DashboardAnalytics struct {
	TotalUsers          int          `json:"totalUsers"`
	ActiveSubscriptions int          `json:"activeSubscriptions"`
	TotalRevenue        float64      `json:"totalRevenue"`
	TestsAttempted      int          `json:"testsAttempted"`
	RevenueByMonth      []MonthValue `json:"revenueByMonth,omitempty"`
	SignupsByMonth      []MonthValue `json:"signupsByMonth,omitempty"`
}

type MonthValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Report is a tabular backend report: the rows share the listed columns.
type Report struct {
	Kind    string           `json:"kind"`
	From    string           `json:"from,omitempty"`
	To      string           `json:"to,omitempty"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}
