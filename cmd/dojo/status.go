package main

import (
	"fmt"
	"io"

	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/service"
	"github.com/mmcdole/dojo/internal/tui/styles"
)

// writeStatus prints one line per curriculum lesson.
// Styling is only applied when writing to a terminal.
func writeStatus(w io.Writer, sum service.Summary, stray []domain.LessonID, styled bool) error {
	done, pending := "[x]", "[ ]"
	if styled {
		done, pending = styles.DoneCheck, styles.PendingDot
	}

	for i, l := range sum.Lessons {
		mark := pending
		if l.IsDone() {
			mark = done
		}
		if _, err := fmt.Fprintf(w, "%s %d. %s\n", mark, i+1, l.ID); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d/%d lessons complete", sum.Completed, sum.Total)
	if sum.AllDone() {
		summary += ", training finished"
	}
	if styled {
		summary = styles.SubtitleStyle.Render(summary)
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}

	for _, id := range stray {
		if _, err := fmt.Fprintf(w, "note: record %q is not part of the curriculum\n", domain.RecordKey(id)); err != nil {
			return err
		}
	}
	return nil
}
