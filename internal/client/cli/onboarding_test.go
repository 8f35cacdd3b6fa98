package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipedInput(t *testing.T, a *App, lines ...string) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRegister_ManualPathSubmitsAndEntersDashboard(t *testing.T) {
	fa := &fakeAuth{RegisterUser: ada}
	a, out, live := newUnitApp(t, fa, &stubDoer{})
	pipedInput(t, a,
		"ada@example.com", "correct-horse", "correct-horse", "",
		"Ada Lovelace", "ada", "",
		"2", "",
		"Go, SQL", "", "", "", "",
		"London, UK", "Employed", "",
		"10", "Mon, Wed", "evening", "",
		"Backend Engineer", "6 months", "", "",
		"submit",
	)

	require.NoError(t, a.Register(context.Background(), nil))

	require.NotNil(t, fa.LastReg)
	r := fa.LastReg
	assert.Equal(t, "ada@example.com", r.Email)
	assert.Equal(t, "correct-horse", r.Password)
	assert.Equal(t, "ada", r.Username)
	assert.Equal(t, []string{"Go", "SQL"}, r.Skills)
	assert.Equal(t, "Employed", r.CurrentStatus)
	assert.Equal(t, 10, r.WeeklyHours)
	assert.Equal(t, []string{"Mon", "Wed"}, r.PreferredDays)
	assert.Empty(t, r.Institution)
	assert.False(t, r.ResumeParsed)
	assert.NotNil(t, r.Education)

	s := out.String()
	assert.Contains(t, s, "Step 1 of 9")
	assert.Contains(t, s, "Step 9 of 9")
	assert.NotContains(t, s, "Step 6 of 9")
	assert.Contains(t, s, "Welcome, Ada Lovelace!")
	assert.Equal(t, ViewDashboard, a.view)
	assert.Equal(t, 1, live.started)
}

func TestRegister_InvalidStepShowsErrorsThenCancel(t *testing.T) {
	fa := &fakeAuth{}
	a, out, _ := newUnitApp(t, fa, &stubDoer{})
	pipedInput(t, a,
		"not-an-email", "short", "short", "",
		"", "short", "short", "cancel",
	)

	require.NoError(t, a.Register(context.Background(), nil))

	s := out.String()
	assert.Contains(t, s, "email: Enter a valid email address")
	assert.Contains(t, s, "password: Password must be at least 8 characters")
	assert.Contains(t, s, "Registration cancelled.")
	assert.Equal(t, 2, strings.Count(s, "Step 1 of 9"))
	assert.Nil(t, fa.LastReg)
	assert.Equal(t, ViewLanding, a.view)
}

func TestRegister_ServerRejectionStaysOnReview(t *testing.T) {
	fa := &fakeAuth{RegisterErr: &client.Error{Kind: client.KindValidation, Status: 400, Message: "Email already registered"}}
	a, out, _ := newUnitApp(t, fa, &stubDoer{})
	pipedInput(t, a,
		"ada@example.com", "correct-horse", "correct-horse", "",
		"Ada Lovelace", "ada", "",
		"manual", "",
		"", "", "", "", "",
		"London, UK", "Student", "",
		"UCL", "Computer Science", "2027-06", "",
		"20", "", "", "",
		"Backend Engineer", "1 year", "", "",
		"submit",
		"cancel",
	)

	require.NoError(t, a.Register(context.Background(), nil))

	s := out.String()
	assert.Contains(t, s, "Step 6 of 9: ")
	assert.Contains(t, s, "Registration failed: Email already registered")
	require.NotNil(t, fa.LastReg)
	assert.Equal(t, "UCL", fa.LastReg.Institution)
	assert.Equal(t, ViewLanding, a.view)
}

func TestRegister_ResumeBranch(t *testing.T) {
	resume := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0o600))

	t.Run("extraction prefills", func(t *testing.T) {
		fa := &fakeAuth{Extraction: &models.ResumeExtraction{Skills: []string{"Go"}, Experience: []models.Experience{{Company: "Acme", Title: "Dev"}}}}
		a, out, _ := newUnitApp(t, fa, &stubDoer{})
		pipedInput(t, a,
			"ada@example.com", "correct-horse", "correct-horse", "",
			"Ada Lovelace", "ada", "",
			"resume", "",
			resume, "",
			"", "", "", "", "cancel",
		)

		require.NoError(t, a.Register(context.Background(), nil))
		s := out.String()
		assert.Contains(t, s, "Found 1 skills, 0 education and 1 experience entries.")
		assert.Contains(t, s, "Skills (comma separated) [Go]")
	})

	t.Run("extraction failure continues", func(t *testing.T) {
		fa := &fakeAuth{ParseErr: &client.Error{Kind: client.KindValidation, Status: 422, Message: "Could not parse resume"}}
		a, out, _ := newUnitApp(t, fa, &stubDoer{})
		pipedInput(t, a,
			"ada@example.com", "correct-horse", "correct-horse", "",
			"Ada Lovelace", "ada", "",
			"resume", "",
			resume, "cancel",
		)

		require.NoError(t, a.Register(context.Background(), nil))
		assert.Contains(t, out.String(), "Could not extract details: Could not parse resume")
	})

	t.Run("going back keeps the parsed resume", func(t *testing.T) {
		fa := &fakeAuth{Extraction: &models.ResumeExtraction{Skills: []string{"Go"}}}
		a, out, _ := newUnitApp(t, fa, &stubDoer{})
		pipedInput(t, a,
			"ada@example.com", "correct-horse", "correct-horse", "",
			"Ada Lovelace", "ada", "",
			"resume", "",
			resume, "",
			"", "", "", "", "back",
			"", "",
			"", "", "", "", "cancel",
		)

		require.NoError(t, a.Register(context.Background(), nil))
		s := out.String()
		assert.Contains(t, s, "Path to your resume (PDF or DOCX), empty to keep cv.pdf")
		assert.Equal(t, 1, strings.Count(s, "Found 1 skills"))
		assert.Equal(t, 2, strings.Count(s, "Skills (comma separated) [Go]"))
	})
}
