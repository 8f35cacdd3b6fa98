package services

import (
	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

// Dashboard bundles the services behind the dashboard modules.
type Dashboard struct {
	Summary       SummaryService
	Roadmap       RoadmapService
	Opportunities OpportunitiesService
	Resume        ResumeService
	Journal       JournalService
	Interviews    InterviewsService
	Campaigns     CampaignsService
	Profile       ProfileService
}

func NewDashboard(d client.Doer, log logging.Logger) *Dashboard {
	log = log.With("component", "dashboard")
	return &Dashboard{
		Summary:       NewSummaryService(d),
		Roadmap:       NewRoadmapService(d),
		Opportunities: NewOpportunitiesService(d, log),
		Resume:        NewResumeService(d),
		Journal:       NewJournalService(d, log),
		Interviews:    NewInterviewsService(d, log),
		Campaigns:     NewCampaignsService(d, log),
		Profile:       NewProfileService(d),
	}
}
