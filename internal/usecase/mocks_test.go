package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bid-match/internal/domain/bid"
	"bid-match/internal/domain/dictionary"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/reviewqueue"
	"bid-match/internal/repository"
)

type memSpecRepo struct {
	specs map[string]*jdspec.Spec
	err   error
}

func newMemSpecRepo() *memSpecRepo {
	return &memSpecRepo{specs: make(map[string]*jdspec.Spec)}
}

func (m *memSpecRepo) Save(_ context.Context, s *jdspec.Spec) error {
	if m.err != nil {
		return m.err
	}
	m.specs[s.ID()] = s
	return nil
}

func (m *memSpecRepo) FindByID(_ context.Context, id string) (*jdspec.Spec, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.specs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (m *memSpecRepo) FindAll(context.Context) ([]*jdspec.Spec, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*jdspec.Spec, 0, len(m.specs))
	for _, s := range m.specs {
		out = append(out, s)
	}
	return out, nil
}

func (m *memSpecRepo) Update(_ context.Context, s *jdspec.Spec) error {
	if _, ok := m.specs[s.ID()]; !ok {
		return repository.ErrNotFound
	}
	m.specs[s.ID()] = s
	return nil
}

func (m *memSpecRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.specs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.specs, id)
	return nil
}

type memBidRepo struct {
	bids map[string]*bid.Bid
}

func newMemBidRepo() *memBidRepo {
	return &memBidRepo{bids: make(map[string]*bid.Bid)}
}

func (m *memBidRepo) Save(_ context.Context, b *bid.Bid) error {
	m.bids[b.ID] = b
	return nil
}

func (m *memBidRepo) FindByID(_ context.Context, id string) (*bid.Bid, error) {
	b, ok := m.bids[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (m *memBidRepo) FindAll(context.Context) ([]*bid.Bid, error) {
	out := make([]*bid.Bid, 0, len(m.bids))
	for _, b := range m.bids {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBidRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.bids[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bids, id)
	return nil
}

type memResumeRepo struct {
	resumes map[string]repository.Resume
	err     error
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{resumes: make(map[string]repository.Resume)}
}

func (m *memResumeRepo) Save(_ context.Context, r repository.Resume) error {
	if m.err != nil {
		return m.err
	}
	m.resumes[r.ID] = r
	return nil
}

func (m *memResumeRepo) FindByID(_ context.Context, id string) (repository.Resume, error) {
	r, ok := m.resumes[id]
	if !ok {
		return repository.Resume{}, repository.ErrNotFound
	}
	return r, nil
}

func (m *memResumeRepo) FindAll(context.Context) ([]repository.Resume, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]repository.Resume, 0, len(m.resumes))
	for _, r := range m.resumes {
		out = append(out, r)
	}
	return out, nil
}

func (m *memResumeRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.resumes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

type memDictRepo struct {
	dict     *dictionary.Dictionary
	revision int64
	saves    int
	saveErr  error
	loadErr  error
}

func newMemDictRepo(dict *dictionary.Dictionary) *memDictRepo {
	return &memDictRepo{dict: dict, revision: 1}
}

func (m *memDictRepo) GetCurrent(context.Context) (*dictionary.Dictionary, int64, error) {
	if m.loadErr != nil {
		return nil, 0, m.loadErr
	}
	return m.dict, m.revision, nil
}

func (m *memDictRepo) Save(_ context.Context, d *dictionary.Dictionary, expectedRevision int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if expectedRevision != m.revision {
		return repository.ErrConcurrentModification
	}
	m.dict = d
	m.revision++
	m.saves++
	return nil
}

func (m *memDictRepo) GetVersion(context.Context) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.dict.Version(), nil
}

func (m *memDictRepo) AllVersions(context.Context) ([]string, error) {
	return []string{m.dict.Version()}, nil
}

type memQueueRepo struct {
	queue    *reviewqueue.Queue
	revision int64
	saves    int
	saveErr  error
	loadErr  error
}

func newMemQueueRepo() *memQueueRepo {
	return &memQueueRepo{queue: reviewqueue.New(), revision: 1}
}

func (m *memQueueRepo) GetCurrent(context.Context) (*reviewqueue.Queue, int64, error) {
	if m.loadErr != nil {
		return nil, 0, m.loadErr
	}
	return m.queue, m.revision, nil
}

func (m *memQueueRepo) Save(_ context.Context, q *reviewqueue.Queue, expectedRevision int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if expectedRevision != m.revision {
		return repository.ErrConcurrentModification
	}
	m.queue = q
	m.revision++
	m.saves++
	return nil
}

type memCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = b
	return nil
}

func (m *memCache) InvalidateStatistics(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
	m.invalidated++
	return nil
}

type notifierEvent struct {
	SkillName string
	Action    string
}

type captureNotifier struct {
	events []notifierEvent
}

func (n *captureNotifier) QueueUpdated(skillName, action string) {
	n.events = append(n.events, notifierEvent{SkillName: skillName, Action: action})
}
