package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matillion/pachca-export/internal/pachca"
)

// TimeLayout is how timestamps appear in the export
const TimeLayout = "2006-01-02 15:04:05 UTC"

// ErrBadTimestamp marks a message whose created_at is missing or unparseable
var ErrBadTimestamp = errors.New("bad created_at timestamp")

// FormatTimestamp converts an ISO-8601 API timestamp to TimeLayout in UTC
func FormatTimestamp(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrBadTimestamp)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadTimestamp, raw)
	}
	return t.UTC().Format(TimeLayout), nil
}

// RenderMessage formats one message as a text block: header line, link,
// trimmed content and the file list, each present only when non-empty.
func RenderMessage(m pachca.Message, users *pachca.Directory) (string, error) {
	ts, err := FormatTimestamp(m.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("message %d: %w", m.ID, err)
	}

	out := []string{fmt.Sprintf("[%s] %s", ts, users.Name(m.UserID))}
	if m.URL != "" {
		out = append(out, "link: "+m.URL)
	}
	if content := strings.TrimSpace(m.Content); content != "" {
		out = append(out, content)
	}
	if len(m.Files) > 0 {
		out = append(out, "files:")
		for _, f := range m.Files {
			out = append(out, fmt.Sprintf("- %s (%s): %s", f.Name, f.FileType, f.URL))
		}
	}
	return strings.Join(out, "\n"), nil
}
