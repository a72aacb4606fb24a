package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/goliatone/go-activitylog/display"
	"github.com/goliatone/go-activitylog/resource"
	"github.com/goliatone/go-activitylog/taxonomy"
)

// badgeColors maps admin badge colors to terminal colors.
var badgeColors = map[string]color.Attribute{
	"primary": color.FgCyan,
	"success": color.FgGreen,
	"warning": color.FgYellow,
	"danger":  color.FgRed,
	"info":    color.FgBlue,
	"gray":    color.FgWhite,
}

func badge(label, badgeColor string) string {
	attr, ok := badgeColors[strings.ToLower(strings.TrimSpace(badgeColor))]
	if !ok {
		return label
	}
	return color.New(attr).Sprint(label)
}

func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

func renderEntries(w io.Writer, views []display.EntryView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No activity entries found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tEVENT\tSUBJECT\tUSER\tLOGGED AT")
	for _, view := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			view.ID,
			badge(view.LogName, view.LogNameColor),
			view.Event,
			view.Subject,
			view.Causer,
			view.LoggedAt,
		)
	}
	tw.Flush()
}

func renderIndicators(w io.Writer, indicators []resource.Indicator) {
	for _, indicator := range indicators {
		fmt.Fprintf(w, "filter: %s\n", indicator.Label)
	}
}

func renderDetail(w io.Writer, view display.EntryView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", view.ID)
	fmt.Fprintf(tw, "Type:\t%s\n", badge(view.LogName, view.LogNameColor))
	fmt.Fprintf(tw, "Event:\t%s\n", view.Event)
	fmt.Fprintf(tw, "Description:\t%s\n", view.Description)
	fmt.Fprintf(tw, "Subject:\t%s\n", view.Subject)
	fmt.Fprintf(tw, "User:\t%s\n", view.Causer)
	fmt.Fprintf(tw, "Logged At:\t%s\n", view.LoggedAt)
	tw.Flush()

	if !view.ShowProperties {
		return
	}
	for _, panel := range view.Panels {
		fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint(panel.Label))
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, row := range panel.Rows {
			fmt.Fprintf(tw, "  %s\t%s\n", row.Key, row.Value)
		}
		tw.Flush()
	}
}

func renderOptions(w io.Writer, logNames, colors, subjects *taxonomy.Options) {
	fmt.Fprintln(w, "Log names:")
	if logNames.Len() == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	logNames.Each(func(key, _ string) bool {
		fmt.Fprintf(w, "  %s\n", badge(key, taxonomy.ColorFor(colors, key)))
		return true
	})

	fmt.Fprintln(w, "Subject types:")
	if subjects.Len() == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	subjects.Each(func(key, label string) bool {
		fmt.Fprintf(w, "  %s\t%s\n", label, key)
		return true
	})
}

func renderIssues(w io.Writer, issues []taxonomy.Issue) {
	if len(issues) == 0 {
		return
	}
	warn := color.New(color.FgYellow)
	fmt.Fprintln(w, warn.Sprint("Configuration warnings:"))
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s %s\n", warn.Sprint("!"), issue.String())
	}
}
