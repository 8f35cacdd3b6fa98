package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/client/onboarding"
	"github.com/dmitrijs2005/careercoach/internal/filex"
	"github.com/dmitrijs2005/careercoach/internal/shared"
)

// Register runs the onboarding wizard. Each step asks for its fields, then
// the user continues, goes back or cancels. The account is created from the
// review step.
func (a *App) Register(_ context.Context, _ []string) error {
	ctx := a.setView(ViewOnboarding)
	w := onboarding.New()

	for {
		step := w.Current()
		a.printf("\n== Step %d of %d: %s ==\n", step.Number(), onboarding.TotalSteps, step)

		if step == onboarding.StepReview {
			done, err := a.review(ctx, w)
			if err != nil || done {
				return err
			}
			continue
		}

		if err := a.fillStep(ctx, w, step); err != nil {
			a.setView(ViewLanding)
			return err
		}

		nav, err := getSimpleText(a.reader, "Press Enter to continue, or type 'back' or 'cancel'", a.out)
		if err != nil {
			a.setView(ViewLanding)
			return err
		}
		switch strings.ToLower(nav) {
		case "cancel":
			a.setView(ViewLanding)
			a.println("Registration cancelled.")
			return nil
		case "back":
			if _, ok := w.Back(); !ok {
				a.println("This is the first step.")
			}
			continue
		}

		if _, err := w.Next(); err != nil {
			a.printFieldErrors(w.Errors(step))
		}
	}
}

func (a *App) review(ctx context.Context, w *onboarding.Wizard) (bool, error) {
	a.printRegistration(w.Registration())

	choice, err := getSimpleText(a.reader, "Type 'submit' to create your account, 'back' to change answers or 'cancel'", a.out)
	if err != nil {
		a.setView(ViewLanding)
		return true, err
	}

	switch strings.ToLower(choice) {
	case "back":
		w.Back()
		return false, nil
	case "cancel":
		a.setView(ViewLanding)
		a.println("Registration cancelled.")
		return true, nil
	case "submit":
	default:
		return false, nil
	}

	user, err := w.Submit(ctx, a.authService)
	if err != nil {
		if errors.Is(err, onboarding.ErrStepInvalid) {
			for _, s := range w.Path() {
				if errs := w.Errors(s); len(errs) > 0 {
					a.printf("%s:\n", s)
					a.printFieldErrors(errs)
				}
			}
			return false, nil
		}
		a.printf("Registration failed: %s\n", userMessage(err))
		return false, nil
	}

	a.println("Your account is ready.")
	a.enterDashboard(user)
	return true, nil
}

// fillStep asks for the fields of step. Current values are offered as
// defaults so going back does not lose answers.
func (a *App) fillStep(ctx context.Context, w *onboarding.Wizard, step onboarding.Step) error {
	f := w.Form()
	var err error

	switch step {
	case onboarding.StepAccount:
		if f.Email, err = GetDefault(a.reader, "Email", f.Email, a.out); err != nil {
			return err
		}
		pw, err := getPassword(a.reader, "Password (at least 8 characters)", a.out)
		if err != nil {
			return err
		}
		confirm, err := getPassword(a.reader, "Confirm password", a.out)
		if err != nil {
			return err
		}
		f.Password, f.ConfirmPassword = string(pw), string(confirm)
		shared.WipeByteArray(pw)
		shared.WipeByteArray(confirm)

	case onboarding.StepIdentity:
		if f.FullName, err = GetDefault(a.reader, "Full name", f.FullName, a.out); err != nil {
			return err
		}
		if f.Username, err = GetDefault(a.reader, "Username", f.Username, a.out); err != nil {
			return err
		}

	case onboarding.StepSource:
		src, err := GetChoice(a.reader, "How would you like to build your profile?",
			[]string{string(onboarding.SourceResume), string(onboarding.SourceManual)}, a.out)
		if err != nil {
			return err
		}
		f.Source = onboarding.Source(src)

	case onboarding.StepResumeUpload:
		return a.uploadForExtraction(ctx, w)

	case onboarding.StepProfileDetail:
		return a.fillProfileDetail(f)

	case onboarding.StepGeography:
		if f.Location, err = GetDefault(a.reader, "Location (city, country)", f.Location, a.out); err != nil {
			return err
		}
		if f.CurrentStatus, err = GetChoice(a.reader, "Current status", onboarding.Statuses, a.out); err != nil {
			return err
		}

	case onboarding.StepAcademic:
		if f.Institution, err = GetDefault(a.reader, "Institution", f.Institution, a.out); err != nil {
			return err
		}
		if f.Program, err = GetDefault(a.reader, "Program", f.Program, a.out); err != nil {
			return err
		}
		if f.ExpectedGraduation, err = GetDefault(a.reader, "Expected graduation (e.g. 2027-06)", f.ExpectedGraduation, a.out); err != nil {
			return err
		}

	case onboarding.StepSchedule:
		cur := ""
		if f.WeeklyHours > 0 {
			cur = strconv.Itoa(f.WeeklyHours)
		}
		hours, err := GetDefault(a.reader, "Hours per week you can invest (1-80)", cur, a.out)
		if err != nil {
			return err
		}
		f.WeeklyHours, _ = strconv.Atoi(hours)
		if f.PreferredDays, err = GetList(a.reader, "Preferred days", f.PreferredDays, a.out); err != nil {
			return err
		}
		if f.PreferredTime, err = GetDefault(a.reader, "Preferred time of day", f.PreferredTime, a.out); err != nil {
			return err
		}

	case onboarding.StepGoals:
		if f.TargetRole, err = GetDefault(a.reader, "Target role", f.TargetRole, a.out); err != nil {
			return err
		}
		if f.Timeline, err = GetDefault(a.reader, "Timeline (e.g. 6 months)", f.Timeline, a.out); err != nil {
			return err
		}
		if f.Vision, err = GetDefault(a.reader, "Where do you see yourself in a few years?", f.Vision, a.out); err != nil {
			return err
		}

	case onboarding.StepReview:
	}
	return nil
}

// uploadForExtraction parses a resume to prefill the form. Any failure is
// reported and the user carries on filling the profile by hand.
func (a *App) uploadForExtraction(ctx context.Context, w *onboarding.Wizard) error {
	f := w.Form()
	prompt := "Path to your resume (PDF or DOCX), empty to skip"
	if f.ResumeParsed && f.ResumeFileName != "" {
		prompt = fmt.Sprintf("Path to your resume (PDF or DOCX), empty to keep %s", f.ResumeFileName)
	}

	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if path == "" {
		if !f.ResumeParsed {
			w.ExtractionFailed(nil)
		}
		return nil
	}

	file, err := filex.OpenRegular(path)
	if err != nil {
		w.ExtractionFailed(err)
		a.printf("Could not read the file: %s\nYou can fill in your profile manually.\n", err)
		return nil
	}
	defer file.Close()

	a.println("Analysing your resume...")
	name := filepath.Base(path)
	ex, err := a.authService.ParseResume(ctx, name, file)
	if err != nil {
		w.ExtractionFailed(err)
		a.printf("Could not extract details: %s\nYou can fill in your profile manually.\n", userMessage(err))
		return nil
	}

	w.ApplyExtraction(name, ex)
	a.printf("Found %d skills, %d education and %d experience entries. Review them on the next step.\n",
		len(ex.Skills), len(ex.Education), len(ex.Experience))
	return nil
}

func (a *App) fillProfileDetail(f *onboarding.Form) error {
	var err error
	if f.Skills, err = GetList(a.reader, "Skills", f.Skills, a.out); err != nil {
		return err
	}

	for {
		inst, err := getSimpleText(a.reader, fmt.Sprintf("Add education: institution (%d so far, empty to continue)", len(f.Education)), a.out)
		if err != nil || inst == "" {
			break
		}
		e := models.Education{Institution: inst}
		e.Degree, _ = getSimpleText(a.reader, "Degree", a.out)
		e.FieldOfStudy, _ = getSimpleText(a.reader, "Field of study", a.out)
		e.GraduationYear, _ = getSimpleText(a.reader, "Graduation year", a.out)
		f.Education = append(f.Education, e)
	}

	for {
		company, err := getSimpleText(a.reader, fmt.Sprintf("Add experience: company (%d so far, empty to continue)", len(f.Experience)), a.out)
		if err != nil || company == "" {
			break
		}
		e := models.Experience{Company: company}
		e.Title, _ = getSimpleText(a.reader, "Title", a.out)
		e.StartDate, _ = getSimpleText(a.reader, "Start date", a.out)
		e.EndDate, _ = getSimpleText(a.reader, "End date (empty if current)", a.out)
		f.Experience = append(f.Experience, e)
	}

	for {
		name, err := getSimpleText(a.reader, fmt.Sprintf("Add project: name (%d so far, empty to continue)", len(f.Projects)), a.out)
		if err != nil || name == "" {
			break
		}
		p := models.Project{Name: name}
		p.Description, _ = getSimpleText(a.reader, "Description", a.out)
		p.Technologies, _ = GetList(a.reader, "Technologies", nil, a.out)
		f.Projects = append(f.Projects, p)
	}
	return nil
}

func (a *App) printFieldErrors(errs onboarding.FieldErrors) {
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		a.printf("  - %s: %s\n", field, errs[field])
	}
}

func (a *App) printRegistration(r *models.RegistrationRequest) {
	a.printf("Email:        %s\n", r.Email)
	a.printf("Name:         %s (@%s)\n", r.FullName, r.Username)
	a.printf("Location:     %s\n", r.Location)
	a.printf("Status:       %s\n", r.CurrentStatus)
	if r.Institution != "" {
		a.printf("Studying:     %s %s\n", r.Institution, r.Program)
	}
	a.printf("Availability: %d h/week\n", r.WeeklyHours)
	a.printf("Goal:         %s in %s\n", r.TargetRole, r.Timeline)
	if len(r.Skills) > 0 {
		a.printf("Skills:       %s\n", strings.Join(r.Skills, ", "))
	}
	a.printf("Education: %d, experience: %d, projects: %d\n", len(r.Education), len(r.Experience), len(r.Projects))
}
