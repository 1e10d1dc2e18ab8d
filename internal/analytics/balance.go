package analytics

import (
	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

const (
	statusNoData  = "No Data"
	messageNoData = "No activity recorded yet"
)

type balanceBand struct {
	above   float64
	status  string
	message string
}

// balanceBands is a strict descending ladder; the first band whose threshold is
// exceeded wins.
var balanceBands = []balanceBand{
	{80, "Overworked", "Consider taking more breaks and personal time"},
	{65, "Work-Heavy", "Slightly work-heavy, but within reasonable limits"},
	{35, "Balanced", "Good balance between work and personal activities"},
	{20, "Life-Heavy", "More personal time than work time"},
}

var fallbackBand = balanceBand{status: "Mostly Personal", message: "Mostly personal activities"}

// WorkLifeStatus maps an unrounded work percentage to its status and message.
func WorkLifeStatus(workPercentage float64) (status, message string) {
	for _, b := range balanceBands {
		if workPercentage > b.above {
			return b.status, b.message
		}
	}
	return fallbackBand.status, fallbackBand.message
}

// WorkLife splits session time into work and personal time. Only work-app sessions
// that start inside the work window count as work.
func WorkLife(apps []domain.ProcessedApp, schedule domain.WorkSchedule, workApps domain.Keywords) domain.WorkLifeBalance {
	var work, personal float64
	for _, app := range apps {
		isWorkApp := workApps.Matches(app.AppName)
		for _, s := range app.Sessions {
			if isWorkApp && schedule.InWorkWindow(s.Start) {
				work += s.Duration
			} else {
				personal += s.Duration
			}
		}
	}

	wl := domain.WorkLifeBalance{
		WorkSeconds:     work,
		PersonalSeconds: personal,
		WorkTime:        util.FormatDuration(work),
		PersonalTime:    util.FormatDuration(personal),
	}

	total := work + personal
	if total == 0 {
		wl.Status = statusNoData
		wl.Message = messageNoData
		return wl
	}

	workPct := 100 * work / total
	wl.WorkPercentage = util.RoundHalfUp(workPct)
	wl.PersonalPercentage = util.RoundHalfUp(100 * personal / total)
	wl.Status, wl.Message = WorkLifeStatus(workPct)
	return wl
}
