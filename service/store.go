package service

import (
	"context"
	"time"

	"github.com/leadflow/leadflow_end/models"
)

// LeadStore 线索存储抽象, 由repository.LeadRepository实现
type LeadStore interface {
	List(ctx context.Context, scope models.OwnerScope) ([]models.Lead, error)
	FindByID(ctx context.Context, id string) (*models.Lead, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus, now time.Time) error
	ApplyAdvance(ctx context.Context, id string, next models.LeadStatus, now time.Time) error
}
