package services

import (
	"context"

	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
)

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, userID uint, action, entity string, entityID uint, details, ip, userAgent string) error {
	entry := &models.AuditLog{
		Action:    action,
		Entity:    entity,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if userID > 0 {
		entry.UserID = &userID
	}
	if entityID > 0 {
		entry.EntityID = &entityID
	}
	return s.repo.Create(ctx, entry)
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
