package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/filex"
)

var errUsage = errors.New("wrong arguments, type 'help' for usage")

func (a *App) dashboardCommands() []command {
	return []command{
		{name: "summary", usage: "show your progress at a glance", run: a.Summary},
		{name: "roadmap", usage: "show your learning roadmap", run: a.Roadmap},
		{name: "milestone", usage: "milestone <id> <pending|in_progress|completed>", run: a.Milestone},
		{name: "regenerate", usage: "ask the coach for a fresh roadmap", run: a.RegenerateRoadmap},
		{name: "jobs", usage: "list matching job openings", run: a.Jobs},
		{name: "hackathons", usage: "list upcoming hackathons", run: a.Hackathons},
		{name: "save", usage: "save <job id>", run: a.SaveJob},
		{name: "resume", usage: "show the latest resume analysis", run: a.Resume},
		{name: "upload", usage: "upload <path> a new resume for analysis", run: a.UploadResume},
		{name: "journal", usage: "list journal entries", run: a.Journal},
		{name: "write", usage: "add a journal entry", run: a.WriteJournal},
		{name: "interviews", usage: "list mock interviews", run: a.Interviews},
		{name: "interview", usage: "interview [id] start or resume a mock interview", run: a.Interview},
		{name: "campaigns", usage: "list outreach campaigns", run: a.Campaigns},
		{name: "campaign", usage: "campaign <id> show recipients", run: a.Campaign},
		{name: "newcampaign", usage: "create an outreach campaign", run: a.NewCampaign},
		{name: "addrecipient", usage: "addrecipient <campaign id>", run: a.AddRecipient},
		{name: "send", usage: "send <campaign id>", run: a.SendCampaign},
		{name: "profile", usage: "show your profile", run: a.Profile},
		{name: "editprofile", usage: "update your profile", run: a.EditProfile},
		{name: "status", usage: "show session and live update status", run: a.Status},
		{name: "logout", usage: "sign out", run: a.Logout},
	}
}

func (a *App) Summary(ctx context.Context, _ []string) error {
	s, err := a.dashboard.Summary.Get(ctx)
	if err != nil {
		return err
	}

	a.printf("\n%s, aiming for %s\n", s.FullName, s.TargetRole)
	a.printf("  Roadmap progress:    %.0f%%\n", s.RoadmapProgress)
	a.printf("  Resume score:        %d\n", s.ResumeScore)
	a.printf("  Applications:        %d\n", s.ApplicationsCount)
	a.printf("  Upcoming interviews: %d\n", s.UpcomingInterviews)
	a.printf("  Journal streak:      %d days\n", s.JournalStreak)
	a.printf("  Active campaigns:    %d\n", s.ActiveCampaigns)
	return nil
}

func (a *App) Roadmap(ctx context.Context, _ []string) error {
	r, err := a.dashboard.Roadmap.Get(ctx)
	if err != nil {
		return err
	}
	a.printRoadmap(r)
	return nil
}

func (a *App) RegenerateRoadmap(ctx context.Context, _ []string) error {
	a.println("Generating a new roadmap, this can take a moment...")
	r, err := a.dashboard.Roadmap.Regenerate(ctx)
	if err != nil {
		return err
	}
	a.printRoadmap(r)
	return nil
}

func (a *App) printRoadmap(r *models.Roadmap) {
	a.printf("\nRoadmap to %s (%.0f%% done)\n", r.TargetRole, r.Progress)
	if len(r.Milestones) == 0 {
		a.println("No milestones yet.")
		return
	}
	for _, m := range r.Milestones {
		a.printf("  %s %-3d %s [%s]", statusMark(m.Status), m.Order, m.Title, m.ID)
		if m.DueDate != "" {
			a.printf(" due %s", m.DueDate)
		}
		a.println()
	}
}

func statusMark(s models.MilestoneStatus) string {
	switch s {
	case models.MilestoneCompleted:
		return "[x]"
	case models.MilestoneInProgress:
		return "[~]"
	case models.MilestonePending:
		return "[ ]"
	default:
		return "[?]"
	}
}

func (a *App) Milestone(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	m, err := a.dashboard.Roadmap.UpdateMilestone(ctx, args[0], models.MilestoneStatus(args[1]))
	if err != nil {
		return err
	}
	a.printf("Milestone %q is now %s.\n", m.Title, m.Status)
	return nil
}

func (a *App) Jobs(ctx context.Context, _ []string) error {
	jobs, err := a.dashboard.Opportunities.Jobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		a.println("No job matches yet.")
		return nil
	}

	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].MatchScore > jobs[j].MatchScore })
	for _, j := range jobs {
		saved := ""
		if j.Saved {
			saved = " (saved)"
		}
		a.printf("  [%s] %s at %s, %s, match %.0f%%%s\n", j.ID, j.Title, j.Company, j.Location, j.MatchScore, saved)
		if j.URL != "" {
			a.printf("        %s\n", j.URL)
		}
	}
	return nil
}

func (a *App) SaveJob(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.dashboard.Opportunities.SaveJob(ctx, args[0]); err != nil {
		return err
	}
	a.println("Saved.")
	return nil
}

func (a *App) Hackathons(ctx context.Context, _ []string) error {
	hs, err := a.dashboard.Opportunities.Hackathons(ctx)
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		a.println("No upcoming hackathons.")
		return nil
	}
	for _, h := range hs {
		a.printf("  %s (%s) %s to %s, %s\n", h.Name, h.Organizer, h.StartDate, h.EndDate, h.Location)
	}
	return nil
}

func (a *App) Resume(ctx context.Context, _ []string) error {
	r, err := a.dashboard.Resume.Analysis(ctx)
	if err != nil {
		return err
	}
	a.printAnalysis(r)
	return nil
}

func (a *App) UploadResume(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	file, err := filex.OpenRegular(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	a.println("Uploading and analysing...")
	r, err := a.dashboard.Resume.Upload(ctx, filepath.Base(args[0]), file)
	if err != nil {
		return err
	}
	a.printAnalysis(r)
	return nil
}

func (a *App) printAnalysis(r *models.ResumeAnalysis) {
	a.printf("\nResume score: %d\n", r.Score)
	printBullets := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		a.printf("%s:\n", title)
		for _, s := range items {
			a.printf("  - %s\n", s)
		}
	}
	printBullets("Strengths", r.Strengths)
	printBullets("Weaknesses", r.Weaknesses)
	printBullets("Suggestions", r.Suggestions)
	if len(r.Keywords) > 0 {
		a.printf("Keywords: %s\n", strings.Join(r.Keywords, ", "))
	}
}

// Status reports the signed-in user, the live channel and the last known
// state of each backend agent.
func (a *App) Status(_ context.Context, _ []string) error {
	a.printf("Signed in as %s\n", a.authService.User().DisplayName())

	a.agentsMu.Lock()
	state := a.rtState
	agents := make([]models.AgentStatus, 0, len(a.agents))
	for _, s := range a.agents {
		agents = append(agents, s)
	}
	a.agentsMu.Unlock()

	switch {
	case state != "":
		a.printf("Live updates: %s\n", state)
	case a.channel != nil && a.channel.Connected():
		a.println("Live updates: connected")
	default:
		a.println("Live updates: disconnected")
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Agent < agents[j].Agent })
	for _, s := range agents {
		line := fmt.Sprintf("  %s: %s", s.Agent, s.Status)
		if s.Progress > 0 {
			line += fmt.Sprintf(" (%.0f%%)", s.Progress)
		}
		a.println(line)
	}
	return nil
}
