package service

import (
	"fmt"
	"strings"
	"time"

	"plansync/modules/collab/entity"
)

const icsTimeLayout = "20060102T150405Z"

// buildICS renders a confirmed event as a minimal iCalendar document so
// participants can import it into any calendar client.
func buildICS(event *entity.CollaborativeEvent, now time.Time) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//PlanSync//Collaborative Events//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s@plansync\r\n", event.ID)
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", now.UTC().Format(icsTimeLayout))
	if event.FinalStartTime != nil {
		fmt.Fprintf(&b, "DTSTART:%s\r\n", event.FinalStartTime.UTC().Format(icsTimeLayout))
	}
	if event.FinalEndTime != nil {
		fmt.Fprintf(&b, "DTEND:%s\r\n", event.FinalEndTime.UTC().Format(icsTimeLayout))
	}
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICS(event.Title))
	if event.Description != nil && *event.Description != "" {
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeICS(*event.Description))
	}
	if event.FinalLocation != nil && *event.FinalLocation != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", escapeICS(*event.FinalLocation))
	}
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
