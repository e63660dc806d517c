package usecase

import (
	"sync"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/document/repository/repotest"
)

// recordingNotifier remembers every notification.
type recordingNotifier struct {
	mu      sync.Mutex
	actions []string
	errs    []error
}

func (n *recordingNotifier) Notify(action string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actions = append(n.actions, action)
	n.errs = append(n.errs, err)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.actions)
}

func newTestUsecase() (*documentUsecase, *repotest.Store, *recordingNotifier) {
	s := repotest.NewStore()
	n := &recordingNotifier{}
	docs, cards, comments := s.Repositories()
	uc := NewDocumentUsecase(docs, cards, comments, identity.NewSessions(), n).(*documentUsecase)
	return uc, s, n
}
