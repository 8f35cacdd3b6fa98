package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoer answers every request with Resp (JSON round-tripped into out) or Err.
type fakeDoer struct {
	Resp any
	Err  error

	Calls []*client.Request
	Last  *client.Request
	// LastBody is Last.Body marshalled to JSON.
	LastBody string
	// LastFile is the uploaded file content for multipart requests.
	LastFile string
}

func (f *fakeDoer) Do(ctx context.Context, req *client.Request, out any) error {
	f.Calls = append(f.Calls, req)
	f.Last = req
	f.LastBody = ""
	if req.Body != nil {
		b, _ := json.Marshal(req.Body)
		f.LastBody = string(b)
	}
	if req.Multipart != nil {
		b, _ := io.ReadAll(req.Multipart.File)
		f.LastFile = string(b)
	}
	if f.Err != nil {
		return f.Err
	}
	if out == nil || f.Resp == nil {
		return nil
	}
	b, err := json.Marshal(f.Resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func newTestDashboard(d client.Doer) *Dashboard {
	return NewDashboard(d, logging.Discard())
}

func TestSummary_Get(t *testing.T) {
	d := &fakeDoer{Resp: models.Summary{FullName: "Alice", ResumeScore: 72}}
	s, err := newTestDashboard(d).Summary.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 72, s.ResumeScore)
	assert.Equal(t, http.MethodGet, d.Last.Method)
	assert.Equal(t, "/summary", d.Last.Endpoint)
	assert.False(t, d.Last.Anonymous)
}

func TestRoadmap_Get_SortsByOrder(t *testing.T) {
	d := &fakeDoer{Resp: models.Roadmap{Milestones: []models.RoadmapMilestone{
		{ID: "c", Order: 3}, {ID: "a", Order: 1}, {ID: "b", Order: 2},
	}}}
	r, err := newTestDashboard(d).Roadmap.Get(context.Background())
	require.NoError(t, err)

	ids := []string{}
	for _, m := range r.Milestones {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRoadmap_UpdateMilestone(t *testing.T) {
	d := &fakeDoer{Resp: models.RoadmapMilestone{ID: "m/1", Status: models.MilestoneCompleted}}
	m, err := newTestDashboard(d).Roadmap.UpdateMilestone(context.Background(), "m/1", models.MilestoneCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.MilestoneCompleted, m.Status)
	assert.Equal(t, http.MethodPatch, d.Last.Method)
	assert.Equal(t, "/roadmap/milestones/m%2F1", d.Last.Endpoint)
	assert.JSONEq(t, `{"status":"completed"}`, d.LastBody)
}

func TestRoadmap_UpdateMilestone_InvalidStatus_NoRequest(t *testing.T) {
	d := &fakeDoer{}
	_, err := newTestDashboard(d).Roadmap.UpdateMilestone(context.Background(), "m1", "done")
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, d.Calls)

	_, err = newTestDashboard(d).Roadmap.UpdateMilestone(context.Background(), "", models.MilestonePending)
	require.ErrorIs(t, err, ErrEmptyID)
	assert.Empty(t, d.Calls)
}

func TestRoadmap_Regenerate(t *testing.T) {
	d := &fakeDoer{Resp: models.Roadmap{TargetRole: "Backend Engineer"}}
	r, err := newTestDashboard(d).Roadmap.Regenerate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", r.TargetRole)
	assert.Equal(t, "/roadmap/regenerate", d.Last.Endpoint)
	assert.Equal(t, http.MethodPost, d.Last.Method)
}

func TestOpportunities(t *testing.T) {
	d := &fakeDoer{Resp: []models.JobOpportunity{{ID: "j1", Title: "Go Developer"}}}
	svc := newTestDashboard(d).Opportunities

	jobs, err := svc.Jobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "/opportunities/jobs", d.Last.Endpoint)

	d.Resp = nil
	hs, err := svc.Hackathons(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, hs)
	assert.Empty(t, hs)
	assert.Equal(t, "/opportunities/hackathons", d.Last.Endpoint)

	require.NoError(t, svc.SaveJob(context.Background(), "j1"))
	assert.Equal(t, "/opportunities/jobs/j1/save", d.Last.Endpoint)
	assert.Equal(t, http.MethodPost, d.Last.Method)
}

func TestList_ParseFailureDegradesToEmpty(t *testing.T) {
	d := &fakeDoer{Err: &client.Error{Kind: client.KindParse, Message: client.MsgParse, Status: 200}}
	jobs, err := newTestDashboard(d).Opportunities.Jobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestList_OtherErrorsSurface(t *testing.T) {
	d := &fakeDoer{Err: &client.Error{Kind: client.KindUnauthorized, Message: client.MsgUnauthorized, Status: 401}}
	_, err := newTestDashboard(d).Journal.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestResume(t *testing.T) {
	d := &fakeDoer{Resp: models.ResumeAnalysis{Score: 80}}
	svc := newTestDashboard(d).Resume

	a, err := svc.Analysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 80, a.Score)
	assert.Equal(t, "/resume/analysis", d.Last.Endpoint)

	_, err = svc.Upload(context.Background(), "cv.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	require.NotNil(t, d.Last.Multipart)
	assert.Equal(t, "/resume/upload", d.Last.Endpoint)
	assert.Equal(t, "file", d.Last.Multipart.FieldName)
	assert.Equal(t, "cv.pdf", d.Last.Multipart.FileName)
	assert.Equal(t, "%PDF-1.7", d.LastFile)
	assert.False(t, d.Last.Anonymous)
}

func TestJournal_Create(t *testing.T) {
	d := &fakeDoer{Resp: models.JournalEntry{ID: "e1", Title: "Day 1", Content: "Started"}}
	svc := newTestDashboard(d).Journal

	_, err := svc.Create(context.Background(), &models.JournalEntry{Title: "x", Content: "  "})
	require.ErrorIs(t, err, ErrEmptyEntry)
	assert.Empty(t, d.Calls)

	e, err := svc.Create(context.Background(), &models.JournalEntry{Title: "Day 1", Content: "Started", Mood: "good"})
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, "/journal", d.Last.Endpoint)
	assert.Contains(t, d.LastBody, `"mood":"good"`)
}

func TestInterviews(t *testing.T) {
	d := &fakeDoer{Resp: models.Interview{ID: "i1", Questions: []models.InterviewQuestion{{ID: "q1", Prompt: "Tell me about yourself"}}}}
	svc := newTestDashboard(d).Interviews
	ctx := context.Background()

	iv, err := svc.Start(ctx, "Backend Engineer", "technical")
	require.NoError(t, err)
	assert.Equal(t, "i1", iv.ID)
	assert.JSONEq(t, `{"role":"Backend Engineer","kind":"technical"}`, d.LastBody)

	_, err = svc.Get(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "/interviews/i1", d.Last.Endpoint)

	d.Resp = models.AnswerFeedback{QuestionID: "q1", Score: 7}
	fb, err := svc.Answer(ctx, "i1", "q1", "I build services in Go")
	require.NoError(t, err)
	assert.Equal(t, 7, fb.Score)
	assert.Equal(t, "/interviews/i1/answers", d.Last.Endpoint)
	assert.JSONEq(t, `{"question_id":"q1","answer":"I build services in Go"}`, d.LastBody)

	d.Resp = models.Interview{ID: "i1", Status: "completed", Score: 8}
	done, err := svc.Finish(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.Equal(t, "/interviews/i1/finish", d.Last.Endpoint)

	_, err = svc.Finish(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestCampaigns(t *testing.T) {
	d := &fakeDoer{Resp: models.Campaign{ID: "c1", Name: "Spring outreach"}}
	svc := newTestDashboard(d).Campaigns
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.Campaign{Name: "Spring outreach", Subject: "Hi", Template: "Hello {{name}}"})
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "/campaigns", d.Last.Endpoint)

	d.Resp = models.Recipient{ID: "r1", Email: "hr@acme.io"}
	r, err := svc.AddRecipient(ctx, "c1", &models.Recipient{Email: "hr@acme.io"})
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "/campaigns/c1/recipients", d.Last.Endpoint)
	assert.Equal(t, http.MethodPost, d.Last.Method)

	d.Resp = []models.Recipient{{ID: "r1"}}
	rs, err := svc.Recipients(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, rs, 1)
	assert.Equal(t, http.MethodGet, d.Last.Method)

	d.Resp = models.SendResult{Queued: 1}
	res, err := svc.Send(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Queued)
	assert.Equal(t, "/campaigns/c1/send", d.Last.Endpoint)
}

func TestProfile(t *testing.T) {
	d := &fakeDoer{Resp: models.User{ID: "u1", FullName: "Alice B"}}
	svc := newTestDashboard(d).Profile

	_, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/users/me", d.Last.Endpoint)

	name := "Alice B"
	u, err := svc.Update(context.Background(), &models.ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", u.FullName)
	assert.Equal(t, http.MethodPut, d.Last.Method)
	assert.JSONEq(t, `{"full_name":"Alice B"}`, d.LastBody)
}

// Through the real HTTP client: an object where a list is expected is not
// fatal for the view.
func TestList_WrongShape_OverHTTP(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/journal", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries":[]}`))
	})
	r.Get("/campaigns", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Spring"}]`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	hc, err := client.NewHTTPClient(srv.URL, nil, logging.Discard())
	require.NoError(t, err)
	dash := newTestDashboard(hc)

	entries, err := dash.Journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	cs, err := dash.Campaigns.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "Spring", cs[0].Name)
}
