package service

import (
	"context"
	"sync"
	"time"

	"github.com/leadflow/leadflow_end/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeLeadStore 内存实现, 仅测试使用
type fakeLeadStore struct {
	mu      sync.Mutex
	order   []string
	leads   map[string]models.Lead
	listErr error
	// 指定ID的写入操作返回该错误
	writeErrs map[string]error
}

func newFakeLeadStore(leads ...models.Lead) *fakeLeadStore {
	s := &fakeLeadStore{
		leads:     map[string]models.Lead{},
		writeErrs: map[string]error{},
	}
	for _, lead := range leads {
		if lead.ID.IsZero() {
			lead.ID = primitive.NewObjectID()
		}
		id := lead.ID.Hex()
		s.order = append(s.order, id)
		s.leads[id] = lead
	}
	return s
}

func (s *fakeLeadStore) List(ctx context.Context, scope models.OwnerScope) ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}

	result := []models.Lead{}
	for _, id := range s.order {
		lead := s.leads[id]
		if scope.All() || lead.UserID == scope.UserID {
			result = append(result, lead)
		}
	}
	return result, nil
}

func (s *fakeLeadStore) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, errLeadMissing
	}
	return &lead, nil
}

func (s *fakeLeadStore) UpdateStatus(ctx context.Context, id string, status models.LeadStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErrs[id]; err != nil {
		return err
	}

	lead, ok := s.leads[id]
	if !ok {
		return errLeadMissing
	}
	lead.Status = status
	lead.UpdatedAt = now
	s.leads[id] = lead
	return nil
}

func (s *fakeLeadStore) ApplyAdvance(ctx context.Context, id string, next models.LeadStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErrs[id]; err != nil {
		return err
	}

	lead, ok := s.leads[id]
	if !ok {
		return errLeadMissing
	}
	lead.Status = next
	lead.UpdatedAt = now
	lead.FollowupsSent++
	s.leads[id] = lead
	return nil
}

func (s *fakeLeadStore) get(id string) models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leads[id]
}

var errLeadMissing = errNotFound("lead not found")

type errNotFound string

func (e errNotFound) Error() string { return string(e) }
