package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pickhacks/portal/internal/domain/entity"
)

// ExportEventToICS renders an event as an all-day iCalendar entry spanning its start and end dates.
// The dates are taken as calendar days in loc.
func ExportEventToICS(event entity.Event, loc *time.Location, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//PickHacks Portal//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	e := cal.AddEvent(fmt.Sprintf("%s@pickhacks-portal", event.ID))
	e.SetDtStampTime(now)
	e.SetCreatedTime(event.CreatedAt)
	e.SetModifiedAt(event.UpdatedAt)

	// DTEND of an all-day event is exclusive
	e.SetProperty(ics.ComponentPropertyDtStart, event.StartDate.In(loc).Format("20060102"), ics.WithValue(string(ics.ValueDataTypeDate)))
	e.SetProperty(ics.ComponentPropertyDtEnd, event.EndDate.In(loc).AddDate(0, 0, 1).Format("20060102"), ics.WithValue(string(ics.ValueDataTypeDate)))

	e.SetSummary(event.Name)
	e.SetStatus(ics.ObjectStatusConfirmed)
	e.SetTimeTransparency(ics.TransparencyOpaque)
	e.SetClass(ics.ClassificationPublic)
	e.SetSequence(0)

	dayAlarm := e.AddAlarm()
	dayAlarm.SetAction(ics.ActionDisplay)
	dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
	dayAlarm.SetDescription(fmt.Sprintf("Reminder: %s starts tomorrow", event.Name))

	return []byte(cal.Serialize())
}
