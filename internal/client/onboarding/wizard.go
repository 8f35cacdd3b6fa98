// Package onboarding implements the registration wizard: an ordered table
// of steps, each with a guard deciding whether it applies to the current
// form and a validator gating the move forward.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

var (
	ErrStepInvalid = errors.New("step is not complete")
	ErrNotAtReview = errors.New("registration can only be submitted from the review step")
)

// Registrar creates the account. services.AuthService satisfies it.
type Registrar interface {
	Register(ctx context.Context, req *models.RegistrationRequest) (*models.User, error)
}

type Wizard struct {
	form    Form
	current Step
	errors  map[Step]FieldErrors
}

func New() *Wizard {
	return &Wizard{current: StepAccount, errors: map[Step]FieldErrors{}}
}

func (w *Wizard) Current() Step {
	return w.current
}

// Form returns the form for editing in place.
func (w *Wizard) Form() *Form {
	return &w.form
}

// Validate runs the validator of step against the current form without
// recording the result.
func (w *Wizard) Validate(step Step) FieldErrors {
	i := indexOf(step)
	if i < 0 {
		return FieldErrors{"step": "unknown step"}
	}
	errs := flow[i].validate(&w.form)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (w *Wizard) Valid(step Step) bool {
	return len(w.Validate(step)) == 0
}

// Errors returns what the last Next or Submit recorded for step.
func (w *Wizard) Errors(step Step) FieldErrors {
	return w.errors[step]
}

// Path lists the steps that apply to the form as it is now.
func (w *Wizard) Path() []Step {
	out := make([]Step, 0, len(flow))
	for _, d := range flow {
		if d.enabled(&w.form) {
			out = append(out, d.step)
		}
	}
	return out
}

// Next moves to the first applicable step after the current one. It does
// not move while the current step has errors, and stays at the last step.
func (w *Wizard) Next() (Step, error) {
	if errs := w.Validate(w.current); len(errs) > 0 {
		w.errors[w.current] = errs
		return w.current, fmt.Errorf("%w: %s", ErrStepInvalid, errs)
	}
	delete(w.errors, w.current)

	for i := indexOf(w.current) + 1; i < len(flow); i++ {
		if flow[i].enabled(&w.form) {
			w.current = flow[i].step
			return w.current, nil
		}
	}
	return w.current, nil
}

// Back moves to the last applicable step before the current one. It reports
// false at the first step.
func (w *Wizard) Back() (Step, bool) {
	for i := indexOf(w.current) - 1; i >= 0; i-- {
		if flow[i].enabled(&w.form) {
			w.current = flow[i].step
			return w.current, true
		}
	}
	return w.current, false
}

// ApplyExtraction copies the non-empty parts of a resume extraction into the
// form and records the file it came from. Lists are replaced only when the
// extraction has rows. The email and name typed at earlier steps are kept.
func (w *Wizard) ApplyExtraction(fileName string, ex *models.ResumeExtraction) {
	if ex == nil {
		return
	}
	f := &w.form
	fill := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	fill(&f.Location, ex.Location)
	fill(&f.TargetRole, ex.TargetRole)
	fill(&f.Vision, ex.Summary)
	if blank(f.Email) {
		fill(&f.Email, ex.Email)
	}
	if blank(f.FullName) {
		fill(&f.FullName, ex.FullName)
	}

	if skills := nonBlankStrings(ex.Skills); len(skills) > 0 {
		f.Skills = skills
	}
	if len(ex.Education) > 0 {
		f.Education = append([]models.Education(nil), ex.Education...)
	}
	if len(ex.Experience) > 0 {
		f.Experience = append([]models.Experience(nil), ex.Experience...)
	}
	if len(ex.Projects) > 0 {
		f.Projects = append([]models.Project(nil), ex.Projects...)
	}

	f.ResumeFileName = fileName
	f.ResumeParsed = true
	f.ExtractionError = ""
}

// ExtractionFailed records a failed parse. The user fills the profile by hand
// and the flow is not blocked.
func (w *Wizard) ExtractionFailed(err error) {
	w.form.ResumeFileName = ""
	w.form.ResumeParsed = false
	if err != nil {
		w.form.ExtractionError = err.Error()
	}
}

// Registration maps the form to the register request. Strings are trimmed,
// blank list rows dropped, and academic fields sent only for students.
func (w *Wizard) Registration() *models.RegistrationRequest {
	f := &w.form
	req := &models.RegistrationRequest{
		Email:         strings.TrimSpace(f.Email),
		Password:      f.Password,
		Username:      strings.TrimSpace(f.Username),
		FullName:      strings.TrimSpace(f.FullName),
		Location:      strings.TrimSpace(f.Location),
		CurrentStatus: strings.TrimSpace(f.CurrentStatus),
		WeeklyHours:   f.WeeklyHours,
		PreferredDays: nonBlankStrings(f.PreferredDays),
		PreferredTime: strings.TrimSpace(f.PreferredTime),
		TargetRole:    strings.TrimSpace(f.TargetRole),
		Timeline:      strings.TrimSpace(f.Timeline),
		Vision:        strings.TrimSpace(f.Vision),
		Skills:        nonBlankStrings(f.Skills),
		Education:     []models.Education{},
		Experience:    []models.Experience{},
		Projects:      []models.Project{},
		ResumeParsed:  f.Source == SourceResume && f.ResumeParsed,
	}

	if f.IsStudent() {
		req.Institution = strings.TrimSpace(f.Institution)
		req.Program = strings.TrimSpace(f.Program)
		req.ExpectedGraduation = strings.TrimSpace(f.ExpectedGraduation)
	}

	for _, e := range f.Education {
		if e.IsBlank() {
			continue
		}
		req.Education = append(req.Education, models.Education{
			Institution:    strings.TrimSpace(e.Institution),
			Degree:         strings.TrimSpace(e.Degree),
			FieldOfStudy:   strings.TrimSpace(e.FieldOfStudy),
			GraduationYear: strings.TrimSpace(e.GraduationYear),
		})
	}
	for _, e := range f.Experience {
		if e.IsBlank() {
			continue
		}
		req.Experience = append(req.Experience, models.Experience{
			Company:     strings.TrimSpace(e.Company),
			Title:       strings.TrimSpace(e.Title),
			StartDate:   strings.TrimSpace(e.StartDate),
			EndDate:     strings.TrimSpace(e.EndDate),
			Description: strings.TrimSpace(e.Description),
		})
	}
	for _, p := range f.Projects {
		if p.IsBlank() {
			continue
		}
		req.Projects = append(req.Projects, models.Project{
			Name:         strings.TrimSpace(p.Name),
			Description:  strings.TrimSpace(p.Description),
			URL:          strings.TrimSpace(p.URL),
			Technologies: nonBlankStrings(p.Technologies),
		})
	}
	return req
}

// Submit registers the account. Every applicable step is checked again since
// earlier answers can change which steps apply.
func (w *Wizard) Submit(ctx context.Context, r Registrar) (*models.User, error) {
	if w.current != StepReview {
		return nil, ErrNotAtReview
	}
	for _, s := range w.Path() {
		if errs := w.Validate(s); len(errs) > 0 {
			w.errors[s] = errs
			return nil, fmt.Errorf("%w: %s: %s", ErrStepInvalid, s, errs)
		}
	}
	return r.Register(ctx, w.Registration())
}

// String renders the errors as "field: message" in field order.
func (e FieldErrors) String() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return strings.Join(parts, "; ")
}

func nonBlankStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
