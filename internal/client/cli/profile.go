package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

func (a *App) Profile(ctx context.Context, _ []string) error {
	u, err := a.dashboard.Profile.Get(ctx)
	if err != nil {
		return err
	}

	a.printf("\n%s (@%s) <%s>\n", u.FullName, u.Username, u.Email)
	a.printf("Location: %s\n", u.Location)
	a.printf("Status:   %s\n", u.CurrentStatus)
	a.printf("Goal:     %s in %s\n", u.TargetRole, u.Timeline)
	if u.Vision != "" {
		a.printf("Vision:   %s\n", u.Vision)
	}
	if len(u.Skills) > 0 {
		a.printf("Skills:   %s\n", strings.Join(u.Skills, ", "))
	}
	for _, e := range u.Experience {
		a.printf("  %s at %s (%s - %s)\n", e.Title, e.Company, e.StartDate, e.EndDate)
	}
	for _, e := range u.Education {
		a.printf("  %s %s, %s %s\n", e.Degree, e.FieldOfStudy, e.Institution, e.GraduationYear)
	}
	return nil
}

// EditProfile asks for each editable field with the current value as the
// default and sends only what changed.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	u, err := a.dashboard.Profile.Get(ctx)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	changed := false
	ask := func(prompt, current string, dst **string) error {
		v, err := GetDefault(a.reader, prompt, current, a.out)
		if err != nil {
			return err
		}
		if v != current {
			*dst = &v
			changed = true
		}
		return nil
	}

	if err := ask("Full name", u.FullName, &upd.FullName); err != nil {
		return err
	}
	if err := ask("Location", u.Location, &upd.Location); err != nil {
		return err
	}
	if err := ask("Target role", u.TargetRole, &upd.TargetRole); err != nil {
		return err
	}
	if err := ask("Timeline", u.Timeline, &upd.Timeline); err != nil {
		return err
	}
	if err := ask("Vision", u.Vision, &upd.Vision); err != nil {
		return err
	}
	skills, err := GetList(a.reader, "Skills", u.Skills, a.out)
	if err != nil {
		return err
	}
	if !slices.Equal(skills, u.Skills) {
		upd.Skills = skills
		changed = true
	}

	if !changed {
		a.println("Nothing changed.")
		return nil
	}

	updated, err := a.dashboard.Profile.Update(ctx, &upd)
	if err != nil {
		return err
	}
	a.printf("Profile updated for %s.\n", updated.DisplayName())
	return nil
}
