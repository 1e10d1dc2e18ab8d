package domain

import "time"

// Snapshot is a stored report summary.
type Snapshot struct {
	ID                string
	GeneratedAt       time.Time
	Timezone          string
	ProductivityScore int
	FocusScore        int
	WorkPercentage    int
	SwitchingRate     int
	BreakCount        int
	TotalSeconds      float64
	AppCount          int
}

// HostSnapshot is a point-in-time view of host resource usage.
type HostSnapshot struct {
	Hostname      string    `json:"hostname"`
	Platform      string    `json:"platform"`
	UptimeSeconds uint64    `json:"uptimeSeconds"`
	CPUPercent    float64   `json:"cpuPercent"`
	CPUCount      int       `json:"cpuCount"`
	MemPercent    float64   `json:"memPercent"`
	MemUsed       uint64    `json:"memUsed"`
	MemTotal      uint64    `json:"memTotal"`
	SampledAt     time.Time `json:"sampledAt"`
}

// NewSnapshot summarizes a report for storage.
func NewSnapshot(id string, r *Report) Snapshot {
	return Snapshot{
		ID:                id,
		GeneratedAt:       r.GeneratedAt,
		Timezone:          r.Timezone,
		ProductivityScore: r.ProductivityScore,
		FocusScore:        r.FocusScore,
		WorkPercentage:    r.WorkLife.WorkPercentage,
		SwitchingRate:     r.SwitchingRate,
		BreakCount:        r.Breaks.Count,
		TotalSeconds:      r.Summary.TotalSeconds,
		AppCount:          len(r.Apps),
	}
}
