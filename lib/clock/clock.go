package clock

import "time"

// BRT is the fixed business timezone of the report. The window is always
// computed in UTC-3 regardless of the host timezone.
var BRT = time.FixedZone("BRT", -3*60*60)

const (
	utcMillis = "2006-01-02T15:04:05.000"
	shortDate = "02/01/2006"
)

// Window is the invoiced-date query window for one report run: yesterday
// in BRT, rendered for the OMS date-range filter and for file names and
// the email subject.
type Window struct {
	StartUTC string // yesterday 00:00:00.000 BRT as UTC ISO
	EndUTC   string // yesterday 23:59:59.999 BRT as UTC ISO
	DateISO  string // yyyy-mm-dd
	DateBR   string // dd/mm/yyyy
	Suffix   string // dd-mm-yy, used in the circularized file name
}

// ReportWindow returns the window for the calendar day before now.
func ReportWindow(now time.Time) Window {
	yesterday := now.In(BRT).AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, BRT)
	end := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 59, 999000000, BRT)
	return Window{
		StartUTC: start.UTC().Format(utcMillis) + "Z",
		EndUTC:   end.UTC().Format(utcMillis) + "Z",
		DateISO:  start.Format("2006-01-02"),
		DateBR:   start.Format(shortDate),
		Suffix:   start.Format("02-01-06"),
	}
}

// FormatShortDate renders an OMS ISO timestamp as dd/mm/yyyy in BRT.
// Unparseable input is returned unchanged.
func FormatShortDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.In(BRT).Format(shortDate)
}
