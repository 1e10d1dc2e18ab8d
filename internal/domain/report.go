package domain

import "time"

// Report is the complete output of one analysis pass.
type Report struct {
	ProductivityScore  int                `json:"productivityScore"`
	FocusScore         int                `json:"focusScore"`
	WorkLife           WorkLifeBalance    `json:"workLife"`
	PeakWindow         PeakWindow         `json:"peakWindow"`
	SwitchingRate      int                `json:"switchingRate"`
	Breaks             BreakSummary       `json:"breaks"`
	HourlyUsage        [24]float64        `json:"hourlyUsage"`
	WeeklyUsage        [7]float64         `json:"weeklyUsage"`
	Insights           []Insight          `json:"insights"`
	Summary            QuickSummary       `json:"summary"`
	AppUsage           []AppUsage         `json:"appUsage"`
	Resources          []ResourceUsage    `json:"resources"`
	Timeline           Timeline           `json:"timeline"`
	Apps               []ProcessedApp     `json:"apps"`
	Timezone           string             `json:"timezone"`
	GeneratedAt        time.Time          `json:"generatedAt"`
	DurationMismatches []DurationMismatch `json:"durationMismatches"`
}

// WorkLifeBalance splits active time into work and personal time.
type WorkLifeBalance struct {
	Status             string  `json:"status"`
	Message            string  `json:"message"`
	WorkPercentage     int     `json:"workPercentage"`
	PersonalPercentage int     `json:"personalPercentage"`
	WorkSeconds        float64 `json:"workSeconds"`
	PersonalSeconds    float64 `json:"personalSeconds"`
	WorkTime           string  `json:"workTime"`
	PersonalTime       string  `json:"personalTime"`
}

// PeakWindow is a three-hour window starting at the most productive hour.
// Observed is false when no productive time was recorded.
type PeakWindow struct {
	Start    int  `json:"start"`
	End      int  `json:"end"`
	Observed bool `json:"observed"`
}

// BreakSummary describes the gaps between consecutive sessions.
type BreakSummary struct {
	Count          int     `json:"count"`
	AverageMinutes float64 `json:"averageMinutes"`
	ActiveDays     int     `json:"activeDays"`
	PerDay         float64 `json:"perDay"`
	Message        string  `json:"message"`
}

// Insight is one text card on the dashboard.
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// QuickSummary holds the headline numbers.
type QuickSummary struct {
	TotalSeconds float64 `json:"totalSeconds"`
	TotalTime    string  `json:"totalTime"`
	MostUsedApp  string  `json:"mostUsedApp,omitempty"`
	MostUsedTime string  `json:"mostUsedTime,omitempty"`
}

// AppUsage is one slice of the usage chart.
type AppUsage struct {
	AppName   string  `json:"appName"`
	Label     string  `json:"label"`
	Seconds   float64 `json:"seconds"`
	Formatted string  `json:"formatted"`
	Share     float64 `json:"share"`
}

// ResourceUsage is one bubble of the resource chart.
type ResourceUsage struct {
	AppName string  `json:"appName"`
	Label   string  `json:"label"`
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Minutes float64 `json:"minutes"`
}

// Timeline lays out every session on a shared time axis.
type Timeline struct {
	Rows  []TimelineRow `json:"rows"`
	Start *time.Time    `json:"start,omitempty"`
	End   *time.Time    `json:"end,omitempty"`
}

// TimelineRow holds the intervals of one application.
type TimelineRow struct {
	AppName   string             `json:"appName"`
	Label     string             `json:"label"`
	Intervals []TimelineInterval `json:"intervals"`
}

// TimelineInterval is one session bar.
type TimelineInterval struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Formatted string    `json:"formatted"`
}

// DisplayName strips the Windows executable suffix for display.
func DisplayName(appName string) string {
	if len(appName) > 4 {
		suffix := appName[len(appName)-4:]
		if suffix == ".exe" || suffix == ".EXE" {
			return appName[:len(appName)-4]
		}
	}
	return appName
}

// WindowInfo describes the foreground window as seen by the tracker.
type WindowInfo struct {
	Title       string
	ProcessName string
	Path        string
	PID         int32
	CPUPercent  float64
	MemPercent  float64
}
