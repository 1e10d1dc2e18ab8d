package domain

import (
	"testing"
	"time"
)

func TestClassifyProductivity(t *testing.T) {
	tests := []struct {
		app  string
		want Category
	}{
		{"Code.exe", CategoryHighlyProductive},
		{"WindowsTerminal.exe", CategoryHighlyProductive},
		{"idea64 IntelliJ", CategoryHighlyProductive},
		{"WINWORD.EXE", CategoryProductive},
		{"Slack.exe", CategoryProductive},
		{"chrome.exe", CategoryNeutral},
		{"Spotify.exe", CategoryDistracting},
		{"Instagram", CategoryHighlyDistracting},
		{"notepad.exe", CategoryNeutral},
		{"", CategoryNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.app, func(t *testing.T) {
			if got := ClassifyProductivity(tt.app); got != tt.want {
				t.Errorf("ClassifyProductivity(%q) = %v, want %v", tt.app, got, tt.want)
			}
		})
	}
}

func TestClassifyProductivity_FirstMatchWins(t *testing.T) {
	// "youtube" is distracting, but "code" in the same name matches an earlier tier.
	if got := ClassifyProductivity("youtube-code-review"); got != CategoryHighlyProductive {
		t.Errorf("expected highly-productive, got %v", got)
	}
}

func TestCategory_Multiplier(t *testing.T) {
	tests := []struct {
		cat  Category
		want float64
	}{
		{CategoryHighlyProductive, 2},
		{CategoryProductive, 1},
		{CategoryNeutral, 0},
		{CategoryDistracting, -1},
		{CategoryHighlyDistracting, -2},
	}
	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			if got := tt.cat.Multiplier(); got != tt.want {
				t.Errorf("Multiplier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordTablesAreDistinct(t *testing.T) {
	// intellij is highly productive for the score but not a peak-window app.
	if !WorkApps.Matches("IntelliJ") {
		t.Error("expected IntelliJ to be a work app")
	}
	if PeakProductiveApps.Matches("IntelliJ") {
		t.Error("expected IntelliJ to be excluded from peak productive apps")
	}
	// zoom is work but unclassified for productivity.
	if ClassifyProductivity("Zoom.exe") != CategoryNeutral {
		t.Error("expected Zoom to be neutral for productivity")
	}
	if !WorkApps.Matches("Zoom.exe") {
		t.Error("expected Zoom to be a work app")
	}
}

func TestHourlyWeights(t *testing.T) {
	w := HourlyWeights()
	tests := []struct {
		hour int
		want float64
	}{
		{0, 0.5}, {4, 0.5}, {5, 1}, {8, 1}, {9, 1.5}, {17, 1.5}, {18, 1}, {22, 1}, {23, 0.5},
	}
	for _, tt := range tests {
		if w[tt.hour] != tt.want {
			t.Errorf("weight[%d] = %v, want %v", tt.hour, w[tt.hour], tt.want)
		}
	}
}

func TestWorkSchedule_InWorkWindow(t *testing.T) {
	s := DefaultWorkSchedule()
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday 9:00", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), true},
		{"monday 8:59", time.Date(2024, 1, 15, 8, 59, 0, 0, time.UTC), false},
		{"friday 17:59", time.Date(2024, 1, 19, 17, 59, 0, 0, time.UTC), true},
		{"friday 18:00", time.Date(2024, 1, 19, 18, 0, 0, 0, time.UTC), false},
		{"saturday noon", time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC), false},
		{"sunday noon", time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.InWorkWindow(tt.at); got != tt.want {
				t.Errorf("InWorkWindow(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"chrome.exe", "chrome"},
		{"WINWORD.EXE", "WINWORD"},
		{"firefox", "firefox"},
		{".exe", ".exe"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
