package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/service"
)

func TestWriteStatusPlain(t *testing.T) {
	sum := service.Summary{
		Lessons: []domain.LessonStatus{
			{ID: "reconnaissance", Status: domain.DoneMarker},
			{ID: "enumeration"},
		},
		Completed: 1,
		Total:     2,
	}

	var buf bytes.Buffer
	require.NoError(t, writeStatus(&buf, sum, []domain.LessonID{"nmap"}, false))

	assert.Equal(t,
		"[x] 1. reconnaissance\n"+
			"[ ] 2. enumeration\n"+
			"1/2 lessons complete\n"+
			"note: record \"lesson:nmap\" is not part of the curriculum\n",
		buf.String())
}

func TestWriteStatusFinished(t *testing.T) {
	sum := service.Summary{
		Lessons:   []domain.LessonStatus{{ID: "a", Status: domain.DoneMarker}},
		Completed: 1,
		Total:     1,
	}

	var buf bytes.Buffer
	require.NoError(t, writeStatus(&buf, sum, nil, false))
	assert.Contains(t, buf.String(), "1/1 lessons complete, training finished")
}
