package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/aretw0/jot"
)

const (
	previewLen = 48
	dateLayout = "2006-01-02 15:04"
)

// preview returns the first non-blank line of content, shortened to previewLen runes.
func preview(content string) string {
	line := ""
	for l := range strings.Lines(content) {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if utf8.RuneCountInString(line) <= previewLen {
		return line
	}
	runes := []rune(line)
	return strings.TrimSpace(string(runes[:previewLen-1])) + "…"
}

func formatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

func displayTitle(n jot.Note) string {
	if n.Title == "" {
		return "(untitled)"
	}
	return n.Title
}

// printNotes renders notes as an aligned table in collection order.
func printNotes(w io.Writer, notes []jot.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "No notes.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUPDATED\tTITLE\tPREVIEW")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, formatDate(n.UpdatedAt), displayTitle(n), preview(n.Content))
	}
	return tw.Flush()
}

func printNote(w io.Writer, n jot.Note) error {
	_, err := fmt.Fprintf(w, "%s\nID:      %s\nCreated: %s\nUpdated: %s\n\n%s\n",
		displayTitle(n), n.ID, formatDate(n.CreatedAt), formatDate(n.UpdatedAt), n.Content)
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
