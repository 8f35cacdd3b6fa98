package cli

import (
	"context"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

func (a *App) Campaigns(ctx context.Context, _ []string) error {
	cs, err := a.dashboard.Campaigns.List(ctx)
	if err != nil {
		return err
	}
	if len(cs) == 0 {
		a.println("No campaigns yet. Type 'newcampaign' to create one.")
		return nil
	}
	for _, c := range cs {
		a.printf("  [%s] %s (%s) sent %d, replies %d\n", c.ID, c.Name, c.Status, c.SentCount, c.ReplyCount)
	}
	return nil
}

func (a *App) Campaign(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	rs, err := a.dashboard.Campaigns.Recipients(ctx, args[0])
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		a.println("No recipients. Type 'addrecipient " + args[0] + "' to add one.")
		return nil
	}
	for _, r := range rs {
		a.printf("  %s <%s> %s, %s [%s]\n", r.Name, r.Email, r.Role, r.Company, r.Status)
	}
	return nil
}

func (a *App) NewCampaign(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Campaign name", a.out)
	if err != nil {
		return err
	}
	subject, err := getSimpleText(a.reader, "Email subject", a.out)
	if err != nil {
		return err
	}
	tmpl, err := GetMultiline(a.reader, "Email template ({{name}} and {{company}} are filled in per recipient)", a.out)
	if err != nil {
		return err
	}

	c, err := a.dashboard.Campaigns.Create(ctx, &models.Campaign{Name: name, Subject: subject, Template: tmpl})
	if err != nil {
		return err
	}
	a.printf("Created campaign %s [%s].\n", c.Name, c.ID)
	return nil
}

func (a *App) AddRecipient(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	var r models.Recipient
	var err error
	if r.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if r.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if r.Company, err = getSimpleText(a.reader, "Company", a.out); err != nil {
		return err
	}
	if r.Role, err = getSimpleText(a.reader, "Role", a.out); err != nil {
		return err
	}

	added, err := a.dashboard.Campaigns.AddRecipient(ctx, args[0], &r)
	if err != nil {
		return err
	}
	a.printf("Added %s.\n", added.Email)
	return nil
}

func (a *App) SendCampaign(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	res, err := a.dashboard.Campaigns.Send(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Queued %d emails, %d failed.\n", res.Queued, res.Failed)
	return nil
}
