// Package cli provides the interactive careercoach command-line client.
//
// It wires configuration, local token storage, the API services and the
// realtime status channel behind a REPL. What the REPL accepts depends on
// the current View:
//   - Landing: login, register (the onboarding wizard), forgot
//   - Dashboard: one or more commands per module (summary, roadmap, jobs,
//     resume, journal, interviews, campaigns, profile) plus status and logout
//   - Interview: free text answers the current question; skip, repeat,
//     done and leave
//
// Each view owns a context. Switching views cancels it, which aborts that
// view's requests and closes the realtime channel when leaving the
// dashboard. An authentication error on a signed-in view logs the user out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
