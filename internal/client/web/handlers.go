package web

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/authdash/internal/client/authform"
	"github.com/dmitrijs2005/authdash/internal/client/dashboard"
	"github.com/dmitrijs2005/authdash/internal/client/strength"
	"github.com/goccy/go-json"
)

func (s *Server) formPage(notice string, fields []authform.FieldError) formPage {
	p := formPage{
		page:   newPage(),
		State:  s.form.Snapshot(),
		Fields: make(map[string]string, len(fields)),
		Notice: notice,
		Rules:  strength.Rules(),
	}
	for _, f := range fields {
		p.Fields[f.Field] = f.Message
	}
	return p
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "form", s.formPage("", nil))
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	s.form.SetEmail(r.PostForm.Get("email"))
	if s.form.Snapshot().Mode == authform.ModeRegister {
		s.form.SetUsername(r.PostForm.Get("username"))
	}
	// the page never echoes the password back, so the form forgets it once
	// the attempt is over
	s.form.SetPassword(r.PostForm.Get("password"))
	res := s.form.Submit(r.Context())
	s.form.SetPassword("")

	var notice string
	switch res.Outcome {
	case authform.OutcomeSucceeded:
		if res.Identity != nil {
			notice = fmt.Sprintf("Signed in as %s.", res.Identity.Email)
		} else {
			notice = "Check your inbox to confirm your email."
		}
	case authform.OutcomeProfilePending:
		notice = "Your account was created, but your profile is not set up yet."
	}

	status := http.StatusOK
	if res.Outcome == authform.OutcomeInvalid {
		status = http.StatusUnprocessableEntity
	}
	p := s.formPage(notice, res.Fields)
	p.ShowRules = res.Outcome == authform.OutcomeRejected
	s.render(w, r, status, "form", p)
}

func (s *Server) toggleMode(w http.ResponseWriter, r *http.Request) {
	s.form.ToggleMode()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) retryProfile(w http.ResponseWriter, r *http.Request) {
	res := s.form.RetryProfile(r.Context())

	var notice string
	if res.Outcome == authform.OutcomeSucceeded {
		notice = "Your profile is set up."
	}
	s.render(w, r, http.StatusOK, "form", s.formPage(notice, nil))
}

func (s *Server) dashboardPage(errMsg string) dashboardPage {
	return dashboardPage{
		page:      newPage(),
		View:      s.dash.Snapshot(),
		Heading:   dashboard.Heading,
		LoggedOut: dashboard.MsgLoggedOut,
		Error:     errMsg,
	}
}

func (s *Server) showDashboard(w http.ResponseWriter, r *http.Request) {
	<-s.dash.Mount(r.Context())
	s.render(w, r, http.StatusOK, "dashboard", s.dashboardPage(""))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var errMsg string
	if err := s.dash.Logout(r.Context()); err != nil {
		errMsg = "Logout failed. Please try again."
	} else {
		s.form.Reset()
	}

	<-s.dash.Mount(r.Context())
	s.render(w, r, http.StatusOK, "dashboard", s.dashboardPage(errMsg))
}

type userJSON struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

type meJSON struct {
	Loading bool      `json:"loading"`
	User    *userJSON `json:"user"`
}

// currentUser reports the dashboard view as JSON.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	<-s.dash.Mount(r.Context())
	v := s.dash.Snapshot()

	resp := meJSON{Loading: v.Loading}
	if v.Identity != nil {
		resp.User = &userJSON{ID: v.Identity.ID, Email: v.Identity.Email, Username: v.Identity.Username}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error(r.Context(), "encode response", "error", err)
	}
}
