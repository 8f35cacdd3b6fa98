package cli

// View is the screen the client is on. Every view-dependent decision goes
// through a switch on View; there are no string comparisons elsewhere.
type View int

const (
	ViewLanding View = iota
	ViewOnboarding
	ViewLogin
	ViewForgotPassword
	ViewDashboard
	ViewInterview
)

func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewOnboarding:
		return "onboarding"
	case ViewLogin:
		return "login"
	case ViewForgotPassword:
		return "forgot-password"
	case ViewDashboard:
		return "dashboard"
	case ViewInterview:
		return "interview"
	default:
		return "unknown"
	}
}
