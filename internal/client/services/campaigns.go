package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

type CampaignsService interface {
	List(ctx context.Context) ([]models.Campaign, error)
	Create(ctx context.Context, c *models.Campaign) (*models.Campaign, error)
	Recipients(ctx context.Context, id string) ([]models.Recipient, error)
	AddRecipient(ctx context.Context, id string, r *models.Recipient) (*models.Recipient, error)
	Send(ctx context.Context, id string) (*models.SendResult, error)
}

type campaignsService struct {
	d   client.Doer
	log logging.Logger
}

func NewCampaignsService(d client.Doer, log logging.Logger) CampaignsService {
	return &campaignsService{d: d, log: log}
}

func (s *campaignsService) List(ctx context.Context) ([]models.Campaign, error) {
	return list[models.Campaign](ctx, s.d, s.log, "/campaigns")
}

func (s *campaignsService) Create(ctx context.Context, c *models.Campaign) (*models.Campaign, error) {
	return send[models.Campaign](ctx, s.d, http.MethodPost, "/campaigns", c)
}

func (s *campaignsService) Recipients(ctx context.Context, id string) ([]models.Recipient, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return list[models.Recipient](ctx, s.d, s.log, path("/campaigns", id, "recipients"))
}

func (s *campaignsService) AddRecipient(ctx context.Context, id string, r *models.Recipient) (*models.Recipient, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return send[models.Recipient](ctx, s.d, http.MethodPost, path("/campaigns", id, "recipients"), r)
}

func (s *campaignsService) Send(ctx context.Context, id string) (*models.SendResult, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return send[models.SendResult](ctx, s.d, http.MethodPost, path("/campaigns", id, "send"), nil)
}
