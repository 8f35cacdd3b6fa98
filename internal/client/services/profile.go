package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

type ProfileService interface {
	Get(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, u *models.ProfileUpdate) (*models.User, error)
}

type profileService struct {
	d client.Doer
}

func NewProfileService(d client.Doer) ProfileService {
	return &profileService{d: d}
}

func (s *profileService) Get(ctx context.Context) (*models.User, error) {
	return get[models.User](ctx, s.d, "/users/me")
}

func (s *profileService) Update(ctx context.Context, u *models.ProfileUpdate) (*models.User, error) {
	return send[models.User](ctx, s.d, http.MethodPut, "/users/me", u)
}
