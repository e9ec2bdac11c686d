package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SourceName appears in the export header
const SourceName = "Pachca"

// Exporter turns a channel and its threads into a single text document
type Exporter struct {
	source Source
	logger *zap.Logger
	now    func() time.Time
}

func NewExporter(source Source, logger *zap.Logger) *Exporter {
	return newExporterWithClock(source, logger, time.Now)
}

// newExporterWithClock creates an exporter with a fixed clock (for testing)
func newExporterWithClock(source Source, logger *zap.Logger, now func() time.Time) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		source: source,
		logger: logger,
		now:    now,
	}
}

// Build fetches the user directory and the channel, then renders the export text.
// Each thread is fetched right before it is rendered.
func (e *Exporter) Build(ctx context.Context, chatID string) (string, *Stats, error) {
	users, err := e.source.FetchAllUsers(ctx)
	if err != nil {
		return "", nil, err
	}

	channel, err := e.source.FetchMessages(ctx, chatID)
	if err != nil {
		return "", nil, err
	}
	e.logger.Info("Channel fetched",
		zap.String("chat_id", chatID),
		zap.Int("messages", len(channel)))

	stats := newStats()
	visited := map[string]bool{chatID: true}

	lines := []string{
		fmt.Sprintf("# Export from %s chat_id=%s", SourceName, chatID),
		fmt.Sprintf("# exported_at=%s", e.now().UTC().Format(TimeLayout)),
		"",
	}

	for _, m := range channel {
		block, err := RenderMessage(m, users)
		if err != nil {
			return "", nil, err
		}
		stats.trackMessage(m)
		lines = append(lines, "## MESSAGE", block)

		if threadID := m.ThreadChatID(); threadID != "" {
			lines = append(lines, "", fmt.Sprintf("### THREAD (thread_chat_id=%s)", threadID))

			if visited[threadID] {
				e.logger.Warn("Thread already exported, skipping",
					zap.Int64("message_id", m.ID),
					zap.String("thread_chat_id", threadID))
				stats.SkippedThread++
				lines = append(lines, "(thread already exported)", "")
			} else {
				visited[threadID] = true
				replies, err := e.source.FetchMessages(ctx, threadID)
				if err != nil {
					return "", nil, err
				}
				stats.ThreadCount++
				e.logger.Debug("Thread fetched",
					zap.String("thread_chat_id", threadID),
					zap.Int("messages", len(replies)))

				for _, r := range replies {
					block, err := RenderMessage(r, users)
					if err != nil {
						return "", nil, fmt.Errorf("thread %s: %w", threadID, err)
					}
					stats.trackMessage(r)
					lines = append(lines, block, "")
				}
			}
		}

		lines = append(lines, "\n---\n")
	}

	return strings.Join(lines, "\n"), stats, nil
}

// Export builds the export for chatID and writes it to outputPath.
// Nothing is written unless the whole export was built.
func (e *Exporter) Export(ctx context.Context, chatID string, outputPath string) (FileRef, error) {
	text, stats, err := e.Build(ctx, chatID)
	if err != nil {
		return FileRef{}, err
	}

	ref, err := WriteTextFile(outputPath, text)
	if err != nil {
		return FileRef{}, err
	}

	e.logger.Info("Export written",
		zap.String("path", ref.Path),
		zap.Int64("bytes", ref.Bytes),
		zap.Int("lines", ref.Lines),
		zap.Int("messages", stats.MessageCount),
		zap.Int("threads", stats.ThreadCount),
		zap.Int("skipped_threads", stats.SkippedThread),
		zap.Int("files", stats.FileCount),
		zap.Int("unique_users", stats.UniqueUsers()))

	return ref, nil
}
