package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

var ErrInvalidStatus = errors.New("invalid milestone status")

// RoadmapService reads and edits the learning roadmap.
type RoadmapService interface {
	Get(ctx context.Context) (*models.Roadmap, error)
	UpdateMilestone(ctx context.Context, id string, status models.MilestoneStatus) (*models.RoadmapMilestone, error)
	Regenerate(ctx context.Context) (*models.Roadmap, error)
}

type roadmapService struct {
	d client.Doer
}

func NewRoadmapService(d client.Doer) RoadmapService {
	return &roadmapService{d: d}
}

// Get returns the roadmap with milestones in display order.
func (s *roadmapService) Get(ctx context.Context) (*models.Roadmap, error) {
	r, err := get[models.Roadmap](ctx, s.d, "/roadmap")
	if err != nil {
		return nil, err
	}
	sortMilestones(r)
	return r, nil
}

// UpdateMilestone rejects statuses outside the closed set before any request.
func (s *roadmapService) UpdateMilestone(ctx context.Context, id string, status models.MilestoneStatus) (*models.RoadmapMilestone, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return send[models.RoadmapMilestone](ctx, s.d, http.MethodPatch,
		path("/roadmap/milestones", id), models.MilestoneUpdate{Status: status})
}

func (s *roadmapService) Regenerate(ctx context.Context) (*models.Roadmap, error) {
	r, err := send[models.Roadmap](ctx, s.d, http.MethodPost, "/roadmap/regenerate", nil)
	if err != nil {
		return nil, err
	}
	sortMilestones(r)
	return r, nil
}

func sortMilestones(r *models.Roadmap) {
	sort.SliceStable(r.Milestones, func(i, j int) bool {
		return r.Milestones[i].Order < r.Milestones[j].Order
	})
}
