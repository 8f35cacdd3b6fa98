package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

var ErrEmptyEntry = errors.New("journal entry content is empty")

type JournalService interface {
	List(ctx context.Context) ([]models.JournalEntry, error)
	Create(ctx context.Context, e *models.JournalEntry) (*models.JournalEntry, error)
}

type journalService struct {
	d   client.Doer
	log logging.Logger
}

func NewJournalService(d client.Doer, log logging.Logger) JournalService {
	return &journalService{d: d, log: log}
}

func (s *journalService) List(ctx context.Context) ([]models.JournalEntry, error) {
	return list[models.JournalEntry](ctx, s.d, s.log, "/journal")
}

func (s *journalService) Create(ctx context.Context, e *models.JournalEntry) (*models.JournalEntry, error) {
	if strings.TrimSpace(e.Content) == "" {
		return nil, ErrEmptyEntry
	}
	return send[models.JournalEntry](ctx, s.d, http.MethodPost, "/journal", e)
}
