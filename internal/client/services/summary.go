package services

import (
	"context"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

type SummaryService interface {
	Get(ctx context.Context) (*models.Summary, error)
}

type summaryService struct {
	d client.Doer
}

func NewSummaryService(d client.Doer) SummaryService {
	return &summaryService{d: d}
}

func (s *summaryService) Get(ctx context.Context) (*models.Summary, error) {
	return get[models.Summary](ctx, s.d, "/summary")
}
