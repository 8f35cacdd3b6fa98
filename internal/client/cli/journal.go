package cli

import (
	"context"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

func (a *App) Journal(ctx context.Context, _ []string) error {
	entries, err := a.dashboard.Journal.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.println("Your journal is empty. Type 'write' to add an entry.")
		return nil
	}
	for _, e := range entries {
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("2006-01-02") + " "
		}
		a.printf("\n%s%s", date, e.Title)
		if e.Mood != "" {
			a.printf(" (%s)", e.Mood)
		}
		a.printf("\n%s\n", e.Content)
	}
	return nil
}

func (a *App) WriteJournal(ctx context.Context, _ []string) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Entry (finish with an empty line)", a.out)
	if err != nil {
		return err
	}
	mood, err := getSimpleText(a.reader, "Mood (optional)", a.out)
	if err != nil {
		return err
	}
	tags, err := GetList(a.reader, "Tags", nil, a.out)
	if err != nil {
		return err
	}

	e, err := a.dashboard.Journal.Create(ctx, &models.JournalEntry{Title: title, Content: content, Mood: mood, Tags: tags})
	if err != nil {
		return err
	}
	a.printf("Saved entry %q.\n", e.Title)
	return nil
}
