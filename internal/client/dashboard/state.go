package dashboard

import (
	"slices"

	"taskboard/internal/client/model"
	"taskboard/internal/client/taskform"
	"taskboard/internal/client/tasklist"
)

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// ViewState is everything the dashboard renders. It holds plain values only and survives a
// JSON round trip.
type ViewState struct {
	Tasks      []model.Task    `json:"tasks"`
	Selected   string          `json:"selected,omitempty"`
	EditorOpen bool            `json:"editorOpen"`
	Editor     *taskform.Form  `json:"editor,omitempty"`
	Filter     tasklist.Filter `json:"filter"`
	Sort       tasklist.Sort   `json:"sort"`
	Loading    bool            `json:"loading"`
	Notices    []Notice        `json:"notices,omitempty"`
}

func initialState() ViewState {
	return ViewState{
		Tasks:  []model.Task{},
		Filter: tasklist.DefaultFilter(),
		Sort:   tasklist.DefaultSort(),
	}
}

func (s ViewState) clone() ViewState {
	s.Tasks = slices.Clone(s.Tasks)
	for i := range s.Tasks {
		if due := s.Tasks[i].DueDate; due != nil {
			copied := *due
			s.Tasks[i].DueDate = &copied
		}
	}
	s.Notices = slices.Clone(s.Notices)
	if s.Editor != nil {
		editor := *s.Editor
		s.Editor = &editor
	}
	return s
}
