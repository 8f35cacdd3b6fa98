package fakebackend

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (b *Backend) summary(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	s := b.Summary
	if s.FullName == "" {
		s.FullName = accountFrom(r).user.FullName
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) roadmap(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.Roadmap)
}

func (b *Backend) updateMilestone(w http.ResponseWriter, r *http.Request) {
	var upd models.MilestoneUpdate
	if err := readJSON(r, &upd); err != nil || !upd.Status.Valid() {
		badRequest(w, "Invalid status")
		return
	}
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Roadmap.Milestones {
		if b.Roadmap.Milestones[i].ID == id {
			b.Roadmap.Milestones[i].Status = upd.Status
			writeJSON(w, http.StatusOK, b.Roadmap.Milestones[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Milestone not found"})
}

func (b *Backend) jobs(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.Jobs))
}

func (b *Backend) hackathons(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.Hackathons))
}

func (b *Backend) saveJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Jobs {
		if b.Jobs[i].ID == id {
			b.Jobs[i].Saved = true
			writeJSON(w, http.StatusOK, b.Jobs[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Job not found"})
}

func (b *Backend) resumeAnalysis(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Resume.FileName == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No resume uploaded"})
		return
	}
	writeJSON(w, http.StatusOK, b.Resume)
}

func (b *Backend) resumeUpload(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "No file uploaded")
		return
	}
	defer f.Close()
	n, _ := io.Copy(io.Discard, f)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.Resume.FileName = hdr.Filename
	if b.Resume.Score == 0 {
		b.Resume.Score = int(min(n, 100))
	}
	writeJSON(w, http.StatusOK, b.Resume)
}

func (b *Backend) listJournal(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.Journal))
}

func (b *Backend) createJournal(w http.ResponseWriter, r *http.Request) {
	var e models.JournalEntry
	if err := readJSON(r, &e); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	e.ID = uuid.NewString()
	e.CreatedAt = now()

	b.mu.Lock()
	b.Journal = append(b.Journal, e)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, e)
}

func (b *Backend) listInterviews(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.Interviews))
}

func (b *Backend) startInterview(w http.ResponseWriter, r *http.Request) {
	var req models.StartInterviewRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	iv := models.Interview{
		ID:     uuid.NewString(),
		Role:   req.Role,
		Kind:   req.Kind,
		Status: "in_progress",
		Questions: []models.InterviewQuestion{
			{ID: "q1", Prompt: "Tell me about a project you are proud of."},
			{ID: "q2", Prompt: "How do you handle disagreements in a team?"},
		},
	}
	b.mu.Lock()
	b.Interviews = append(b.Interviews, iv)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, iv)
}

func (b *Backend) interviewIndex(id string) int {
	for i := range b.Interviews {
		if b.Interviews[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) getInterview(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.interviewIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Interview not found"})
		return
	}
	writeJSON(w, http.StatusOK, b.Interviews[i])
}

func (b *Backend) answer(w http.ResponseWriter, r *http.Request) {
	var a models.InterviewAnswer
	if err := readJSON(r, &a); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.interviewIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Interview not found"})
		return
	}
	for j := range b.Interviews[i].Questions {
		if b.Interviews[i].Questions[j].ID == a.QuestionID {
			b.Interviews[i].Questions[j].Answered = true
		}
	}
	b.AnswersByQuest[a.QuestionID] = a.Answer
	writeJSON(w, http.StatusOK, models.AnswerFeedback{
		QuestionID: a.QuestionID,
		Feedback:   "Clear answer. Add a measurable outcome.",
		Score:      7,
	})
}

func (b *Backend) finishInterview(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.interviewIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Interview not found"})
		return
	}
	b.Interviews[i].Status = "completed"
	b.Interviews[i].Score = 7
	b.Interviews[i].Feedback = "Good structure overall."
	writeJSON(w, http.StatusOK, b.Interviews[i])
}

func (b *Backend) listCampaigns(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.Campaigns))
}

func (b *Backend) createCampaign(w http.ResponseWriter, r *http.Request) {
	var c models.Campaign
	if err := readJSON(r, &c); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	c.ID = uuid.NewString()
	c.Status = "draft"
	c.CreatedAt = now()

	b.mu.Lock()
	b.Campaigns = append(b.Campaigns, c)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (b *Backend) listRecipients(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.Recipients[chi.URLParam(r, "id")]))
}

func (b *Backend) addRecipient(w http.ResponseWriter, r *http.Request) {
	var rc models.Recipient
	if err := readJSON(r, &rc); err != nil || rc.Email == "" {
		badRequest(w, "Recipient email is required")
		return
	}
	id := chi.URLParam(r, "id")
	rc.ID = uuid.NewString()
	rc.Status = "pending"

	b.mu.Lock()
	b.Recipients[id] = append(b.Recipients[id], rc)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, rc)
}

func (b *Backend) sendCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	rs := b.Recipients[id]
	for i := range rs {
		rs[i].Status = "sent"
	}
	for i := range b.Campaigns {
		if b.Campaigns[i].ID == id {
			b.Campaigns[i].Status = "sent"
			b.Campaigns[i].SentCount += len(rs)
		}
	}
	writeJSON(w, http.StatusOK, models.SendResult{Queued: len(rs)})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
