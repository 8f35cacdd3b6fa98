package cli

import (
	"context"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

// interviewSession tracks the question being asked in the interview view.
type interviewSession struct {
	iv   *models.Interview
	next int
}

// resumeSession starts at the first question the backend has no answer for.
func resumeSession(iv *models.Interview) *interviewSession {
	s := &interviewSession{iv: iv}
	for s.next < len(iv.Questions) && iv.Questions[s.next].Answered {
		s.next++
	}
	return s
}

func (s *interviewSession) current() (models.InterviewQuestion, bool) {
	if s.next >= len(s.iv.Questions) {
		return models.InterviewQuestion{}, false
	}
	return s.iv.Questions[s.next], true
}

func (a *App) interviewCommands() []command {
	return []command{
		{name: "skip", usage: "skip the current question", run: a.skipQuestion},
		{name: "repeat", usage: "show the current question again", run: a.repeatQuestion},
		{name: "done", usage: "finish the interview and get feedback", run: a.finishInterview},
		{name: "leave", usage: "go back to the dashboard without finishing", run: a.leaveInterview},
	}
}

func (a *App) Interviews(ctx context.Context, _ []string) error {
	ivs, err := a.dashboard.Interviews.List(ctx)
	if err != nil {
		return err
	}
	if len(ivs) == 0 {
		a.println("No interviews yet. Type 'interview' to start one.")
		return nil
	}
	for _, iv := range ivs {
		a.printf("  [%s] %s %s interview, %s", iv.ID, iv.Role, iv.Kind, iv.Status)
		if iv.Score > 0 {
			a.printf(", score %d", iv.Score)
		}
		a.println()
	}
	return nil
}

// Interview resumes the interview with the given id, or starts a new one.
func (a *App) Interview(ctx context.Context, args []string) error {
	var iv *models.Interview
	var err error

	switch len(args) {
	case 0:
		target := ""
		if u := a.authService.User(); u != nil {
			target = u.TargetRole
		}
		role, err := GetDefault(a.reader, "Role to practise for", target, a.out)
		if err != nil {
			return err
		}
		kind, err := GetChoice(a.reader, "Interview type", []string{"behavioral", "technical", "system_design"}, a.out)
		if err != nil {
			return err
		}
		iv, err = a.dashboard.Interviews.Start(ctx, role, kind)
		if err != nil {
			return err
		}
	case 1:
		iv, err = a.dashboard.Interviews.Get(ctx, args[0])
		if err != nil {
			return err
		}
	default:
		return errUsage
	}

	a.setView(ViewInterview)
	a.interview = resumeSession(iv)
	a.printf("\n%s %s interview. Type your answer, or 'skip', 'done' or 'leave'.\n", iv.Role, iv.Kind)
	if n := a.interview.next; n > 0 {
		a.printf("%d of %d questions already answered.\n", n, len(iv.Questions))
	}
	a.askNext()
	return nil
}

func (a *App) askNext() {
	q, ok := a.interview.current()
	if !ok {
		a.println("No more questions. Type 'done' to get your feedback.")
		return
	}
	a.printf("\nQuestion %d of %d: %s\n", a.interview.next+1, len(a.interview.iv.Questions), q.Prompt)
}

// answer sends line as the answer to the current question.
func (a *App) answer(ctx context.Context, line string) error {
	if a.interview == nil {
		return nil
	}
	q, ok := a.interview.current()
	if !ok {
		a.println("No more questions. Type 'done' to get your feedback.")
		return nil
	}

	fb, err := a.dashboard.Interviews.Answer(ctx, a.interview.iv.ID, q.ID, line)
	if err != nil {
		return err
	}
	a.printf("Feedback (%d/10): %s\n", fb.Score, fb.Feedback)

	a.interview.next++
	a.askNext()
	return nil
}

func (a *App) skipQuestion(_ context.Context, _ []string) error {
	if _, ok := a.interview.current(); ok {
		a.interview.next++
	}
	a.askNext()
	return nil
}

func (a *App) repeatQuestion(_ context.Context, _ []string) error {
	a.askNext()
	return nil
}

func (a *App) finishInterview(ctx context.Context, _ []string) error {
	iv, err := a.dashboard.Interviews.Finish(ctx, a.interview.iv.ID)
	if err != nil {
		return err
	}
	a.printf("\nInterview complete. Score: %d\n%s\n", iv.Score, iv.Feedback)
	a.backToDashboard()
	return nil
}

func (a *App) leaveInterview(_ context.Context, _ []string) error {
	a.backToDashboard()
	return nil
}

func (a *App) backToDashboard() {
	ctx := a.setView(ViewDashboard)
	a.startRealtime(ctx)
}
