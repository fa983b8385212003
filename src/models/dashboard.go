package models

type DashboardSegment struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

type DashboardTotals struct {
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

type Dashboard struct {
	Segments []DashboardSegment `json:"segments"`
	Totals   DashboardTotals    `json:"totals"`
}

// MonthBreakdown is one row of the per-month yearly view; only months
// that have expenses are reported.
type MonthBreakdown struct {
	Month  int     `json:"month"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
}

// BuildDashboard sums the per-segment figures into grand totals.
func BuildDashboard(segments []DashboardSegment) Dashboard {
	if segments == nil {
		segments = []DashboardSegment{}
	}
	var totals DashboardTotals
	for _, s := range segments {
		totals.Budget += s.Budget
		totals.Spent += s.Spent
	}
	totals.Remaining = totals.Budget - totals.Spent
	return Dashboard{Segments: segments, Totals: totals}
}
