package repository

import (
	"log/slog"
	"time"

	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/docstore"
)

// Document field names, shared by goals and activities.
const (
	fieldTitle                = "title"
	fieldDescription          = "description"
	fieldSubject              = "subject"
	fieldTargetDate           = "targetDate"
	fieldActualCompletionDate = "actualCompletionDate"
	fieldCompleted            = "completed"
	fieldStatus               = "status"
	fieldIcon                 = "icon"
	fieldColor                = "color"
	fieldCreatedAt            = "createdAt"
)

func stringField(f docstore.Fields, key string) string {
	s, _ := f[key].(string)
	return s
}

func boolField(f docstore.Fields, key string) bool {
	b, _ := f[key].(bool)
	return b
}

// dateField decodes a calendar date. Unreadable values are logged and left zero
// so one bad document does not hide the rest of the list.
func dateField(f docstore.Fields, key, docID string) time.Time {
	raw := stringField(f, key)
	if raw == "" {
		return time.Time{}
	}
	t, err := dates.Parse(raw)
	if err != nil {
		slog.Warn("unreadable date field", "field", key, "value", raw, "doc_id", docID)
		return time.Time{}
	}
	return t
}

func optionalTimestampField(f docstore.Fields, key, docID string) *time.Time {
	raw := stringField(f, key)
	if raw == "" {
		return nil
	}
	t, err := dates.ParseTimestamp(raw)
	if err != nil {
		slog.Warn("unreadable timestamp field", "field", key, "value", raw, "doc_id", docID)
		return nil
	}
	return &t
}

// createdAtField falls back to now when a document has no creation time.
func createdAtField(f docstore.Fields, docID string, now time.Time) time.Time {
	t := optionalTimestampField(f, fieldCreatedAt, docID)
	if t == nil {
		return now
	}
	return *t
}

func optionalTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dates.FormatTimestamp(*t)
}
