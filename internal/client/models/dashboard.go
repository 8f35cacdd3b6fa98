package models

import "time"

type Summary struct {
	FullName           string  `json:"full_name"`
	TargetRole         string  `json:"target_role"`
	RoadmapProgress    float64 `json:"roadmap_progress"`
	ResumeScore        int     `json:"resume_score"`
	ApplicationsCount  int     `json:"applications_count"`
	UpcomingInterviews int     `json:"upcoming_interviews"`
	JournalStreak      int     `json:"journal_streak"`
	ActiveCampaigns    int     `json:"active_campaigns"`
}

// MilestoneStatus is the closed set of roadmap milestone states.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted:
		return true
	default:
		return false
	}
}

type RoadmapMilestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueDate     string          `json:"due_date,omitempty"`
	Status      MilestoneStatus `json:"status"`
	Skills      []string        `json:"skills,omitempty"`
	Order       int             `json:"order"`
}

type Roadmap struct {
	TargetRole string             `json:"target_role"`
	Progress   float64            `json:"progress"`
	Milestones []RoadmapMilestone `json:"milestones"`
}

type MilestoneUpdate struct {
	Status MilestoneStatus `json:"status"`
}

type JobOpportunity struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Company    string  `json:"company"`
	Location   string  `json:"location,omitempty"`
	URL        string  `json:"url,omitempty"`
	Salary     string  `json:"salary,omitempty"`
	MatchScore float64 `json:"match_score"`
	PostedAt   string  `json:"posted_at,omitempty"`
	Saved      bool    `json:"saved"`
}

type Hackathon struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Organizer string `json:"organizer,omitempty"`
	URL       string `json:"url,omitempty"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Prize     string `json:"prize,omitempty"`
}

type ResumeAnalysis struct {
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Keywords    []string `json:"keywords"`
	FileName    string   `json:"file_name,omitempty"`
}

type JournalEntry struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type InterviewQuestion struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Answered bool   `json:"answered,omitempty"`
}

type Interview struct {
	ID          string              `json:"id"`
	Role        string              `json:"role"`
	Kind        string              `json:"kind"`
	Status      string              `json:"status"`
	ScheduledAt string              `json:"scheduled_at,omitempty"`
	Questions   []InterviewQuestion `json:"questions,omitempty"`
	Feedback    string              `json:"feedback,omitempty"`
	Score       int                 `json:"score,omitempty"`
}

type StartInterviewRequest struct {
	Role string `json:"role"`
	Kind string `json:"kind"`
}

type InterviewAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type AnswerFeedback struct {
	QuestionID string `json:"question_id"`
	Feedback   string `json:"feedback"`
	Score      int    `json:"score"`
}

type Campaign struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	Template   string    `json:"template"`
	Status     string    `json:"status,omitempty"`
	SentCount  int       `json:"sent_count"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

type Recipient struct {
	ID      string `json:"id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
	Status  string `json:"status,omitempty"`
}

type SendResult struct {
	Queued int `json:"queued"`
	Failed int `json:"failed"`
}

// AgentStatus is pushed over the realtime channel while backend agents work.
type AgentStatus struct {
	Agent    string  `json:"agent"`
	Status   string  `json:"status"`
	Message  string  `json:"message,omitempty"`
	Progress float64 `json:"progress,omitempty"`
}

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Link  string `json:"link,omitempty"`
}
