package export

import "github.com/matillion/pachca-export/internal/pachca"

// Stats tracks what went into an export
type Stats struct {
	MessageCount  int
	ThreadCount   int
	FileCount     int
	SkippedThread int
	uniqueUsers   map[int64]bool
}

func newStats() *Stats {
	return &Stats{uniqueUsers: make(map[int64]bool)}
}

func (s *Stats) trackMessage(m pachca.Message) {
	s.MessageCount++
	s.FileCount += len(m.Files)
	s.uniqueUsers[m.UserID] = true
}

// UniqueUsers returns the number of distinct authors seen
func (s *Stats) UniqueUsers() int {
	return len(s.uniqueUsers)
}
