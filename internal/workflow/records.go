package workflow

import (
	"sync"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
)

// recordSnapshot guards the locally cached attendance list; refreshes
// replace it wholesale.
type recordSnapshot struct {
	mu      sync.RWMutex
	records []hrmsclient.Attendance
}

func (s *recordSnapshot) replace(records []hrmsclient.Attendance) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

func (s *recordSnapshot) snapshot() []hrmsclient.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}
