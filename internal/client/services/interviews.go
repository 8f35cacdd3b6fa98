package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

// InterviewsService drives mock interviews: start a session, answer its
// questions one by one, then finish it to get overall feedback.
type InterviewsService interface {
	List(ctx context.Context) ([]models.Interview, error)
	Get(ctx context.Context, id string) (*models.Interview, error)
	Start(ctx context.Context, role, kind string) (*models.Interview, error)
	Answer(ctx context.Context, id, questionID, answer string) (*models.AnswerFeedback, error)
	Finish(ctx context.Context, id string) (*models.Interview, error)
}

type interviewsService struct {
	d   client.Doer
	log logging.Logger
}

func NewInterviewsService(d client.Doer, log logging.Logger) InterviewsService {
	return &interviewsService{d: d, log: log}
}

func (s *interviewsService) List(ctx context.Context) ([]models.Interview, error) {
	return list[models.Interview](ctx, s.d, s.log, "/interviews")
}

func (s *interviewsService) Get(ctx context.Context, id string) (*models.Interview, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return get[models.Interview](ctx, s.d, path("/interviews", id))
}

func (s *interviewsService) Start(ctx context.Context, role, kind string) (*models.Interview, error) {
	return send[models.Interview](ctx, s.d, http.MethodPost, "/interviews",
		models.StartInterviewRequest{Role: role, Kind: kind})
}

func (s *interviewsService) Answer(ctx context.Context, id, questionID, answer string) (*models.AnswerFeedback, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return send[models.AnswerFeedback](ctx, s.d, http.MethodPost, path("/interviews", id, "answers"),
		models.InterviewAnswer{QuestionID: questionID, Answer: answer})
}

func (s *interviewsService) Finish(ctx context.Context, id string) (*models.Interview, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return send[models.Interview](ctx, s.d, http.MethodPost, path("/interviews", id, "finish"), nil)
}
