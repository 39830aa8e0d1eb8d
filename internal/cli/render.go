package cli

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/navigator"
	"github.com/specialistvlad/surveynav/internal/progress"
	"github.com/specialistvlad/surveynav/internal/router"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	return table
}

func renderNavigation(w io.Writer, entries []navigator.NavigationEntry) {
	table := newTable(w, []string{"", "Name", "Repeating", "Completed", "Location", "URL"})
	for _, e := range entries {
		marker := ""
		if e.Highlight {
			marker = "*"
		}
		table.Append([]string{
			marker,
			e.Name,
			yesNo(e.Repeating),
			yesNo(e.Completed),
			e.Location.String(),
			e.URL,
		})
	}
	table.Render()
}

func renderSectionStatuses(w io.Writer, statuses []router.SectionStatus) {
	table := newTable(w, []string{"Section", "Instance", "Status"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})
	for _, s := range statuses {
		table.Append([]string{s.SectionID, strconv.Itoa(s.Instance), string(s.Status)})
	}
	table.Render()
}

// completedLocations lists the completed locations of trackers that can
// enumerate them; others contribute nothing.
func completedLocations(t progress.Tracker) []location.Location {
	lister, ok := t.(interface{ Completed() []location.Location })
	if !ok {
		return nil
	}
	return lister.Completed()
}
