package services

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

// ResumeService covers the signed-in resume analysis. Parsing during
// onboarding goes through AuthService.ParseResume instead.
type ResumeService interface {
	Analysis(ctx context.Context) (*models.ResumeAnalysis, error)
	Upload(ctx context.Context, fileName string, r io.Reader) (*models.ResumeAnalysis, error)
}

type resumeService struct {
	d client.Doer
}

func NewResumeService(d client.Doer) ResumeService {
	return &resumeService{d: d}
}

func (s *resumeService) Analysis(ctx context.Context) (*models.ResumeAnalysis, error) {
	return get[models.ResumeAnalysis](ctx, s.d, "/resume/analysis")
}

func (s *resumeService) Upload(ctx context.Context, fileName string, r io.Reader) (*models.ResumeAnalysis, error) {
	res := client.Fetch[models.ResumeAnalysis](ctx, s.d, &client.Request{
		Method:    http.MethodPost,
		Endpoint:  "/resume/upload",
		Multipart: &client.Multipart{FieldName: "file", FileName: fileName, File: r},
	})
	if !res.OK() {
		return nil, res.Err()
	}
	return &res.Data, nil
}
