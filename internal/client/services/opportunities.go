package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

type OpportunitiesService interface {
	Jobs(ctx context.Context) ([]models.JobOpportunity, error)
	Hackathons(ctx context.Context) ([]models.Hackathon, error)
	SaveJob(ctx context.Context, id string) error
}

type opportunitiesService struct {
	d   client.Doer
	log logging.Logger
}

func NewOpportunitiesService(d client.Doer, log logging.Logger) OpportunitiesService {
	return &opportunitiesService{d: d, log: log}
}

func (s *opportunitiesService) Jobs(ctx context.Context) ([]models.JobOpportunity, error) {
	return list[models.JobOpportunity](ctx, s.d, s.log, "/opportunities/jobs")
}

func (s *opportunitiesService) Hackathons(ctx context.Context) ([]models.Hackathon, error) {
	return list[models.Hackathon](ctx, s.d, s.log, "/opportunities/hackathons")
}

func (s *opportunitiesService) SaveJob(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.d.Do(ctx, &client.Request{Method: http.MethodPost, Endpoint: path("/opportunities/jobs", id, "save")}, nil)
}
