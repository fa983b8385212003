package notify

import "testing"

func TestOverBudget(t *testing.T) {
	tests := []struct {
		name   string
		spent  float64
		budget float64
		want   bool
	}{
		{name: "under", spent: 100, budget: 500, want: false},
		{name: "exactly at", spent: 500, budget: 500, want: false},
		{name: "over", spent: 500.01, budget: 500, want: true},
		{name: "no allocation never alerts", spent: 1000, budget: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverBudget(tt.spent, tt.budget); got != tt.want {
				t.Errorf("OverBudget(%v, %v) = %v, want %v", tt.spent, tt.budget, got, tt.want)
			}
		})
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(Alert{UserID: 1}); err != nil {
		t.Errorf("Publish error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}
