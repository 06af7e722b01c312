package authform

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/authdash/internal/client/models"
	"github.com/dmitrijs2005/authdash/internal/client/provider"
	"github.com/dmitrijs2005/authdash/internal/client/strength"
	"github.com/dmitrijs2005/authdash/internal/logging"
)

// ErrWeakPassword is returned in Result.Err when the strength oracle judged
// the password weak at submit time.
var ErrWeakPassword = errors.New("password judged weak by strength oracle")

// Authenticator is the part of the identity provider the form needs.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignUp(ctx context.Context, email, password, username string) (*models.Identity, error)
}

// ProfileWriter stores the profile row of a newly registered account.
type ProfileWriter interface {
	Upsert(ctx context.Context, p models.Profile) error
}

// Controller is safe for concurrent use.
type Controller struct {
	auth     Authenticator
	profiles ProfileWriter
	oracle   strength.Oracle
	logger   logging.Logger
	timeout  time.Duration
	now      func() time.Time

	mu       sync.Mutex
	mode     Mode
	email    string
	password string
	username string
	inFlight bool
	errMsg   string
	verdict  Verdict
	identity *models.Identity
	phase    Phase
	pending  models.Profile

	gen         uint64
	cancelCheck context.CancelFunc
	checkDone   chan struct{}
}

// NewController returns a controller in login mode. timeout bounds every
// provider and oracle call; zero disables it.
func NewController(auth Authenticator, profiles ProfileWriter, oracle strength.Oracle, logger logging.Logger, timeout time.Duration) *Controller {
	return &Controller{
		auth:     auth,
		profiles: profiles,
		oracle:   oracle,
		logger:   logger.With("module", "authform"),
		timeout:  timeout,
		now:      time.Now,
	}
}

func (c *Controller) SetEmail(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.email = v
}

func (c *Controller) SetUsername(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = v
}

// ChangePassword stores v and, in register mode, starts a strength check
// for it. The verdict is unknown until that check replies.
func (c *Controller) ChangePassword(ctx context.Context, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.password = v
	c.verdict = VerdictUnknown
	c.startCheckLocked(ctx)
}

// SetPassword stores v without starting a strength check and forgets the
// verdict. Front ends that only see the password on submit use it; the
// submit-time check still applies.
func (c *Controller) SetPassword(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.password = v
	c.verdict = VerdictUnknown
	c.stopCheckLocked()
}

// ToggleMode switches between login and register. The error is cleared,
// field values are kept.
func (c *Controller) ToggleMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeLogin {
		c.mode = ModeRegister
	} else {
		c.mode = ModeLogin
	}
	c.errMsg = ""
	c.verdict = VerdictUnknown
	c.startCheckLocked(context.Background())
}

// WaitChecks blocks until the latest strength check has returned.
// Superseded checks are not waited for; their replies are discarded.
func (c *Controller) WaitChecks() {
	c.mu.Lock()
	done := c.checkDone
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	return !c.inFlight && !(c.mode == ModeRegister && c.verdict == VerdictWeak)
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var id *models.Identity
	if c.identity != nil {
		cp := *c.identity
		id = &cp
	}
	return State{
		Mode:        c.mode,
		Email:       c.email,
		Username:    c.username,
		HasPassword: c.password != "",
		InFlight:    c.inFlight,
		Error:       c.errMsg,
		Verdict:     c.verdict,
		Identity:    id,
		Phase:       c.phase,
		CanSubmit:   c.canSubmitLocked(),
	}
}

// Submit runs one login or registration attempt.
func (c *Controller) Submit(ctx context.Context) Result {
	c.mu.Lock()
	if !c.canSubmitLocked() {
		c.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}

	d := draft{
		mode:     c.mode,
		email:    strings.TrimSpace(c.email),
		password: c.password,
		username: strings.TrimSpace(c.username),
	}
	if fields := validateFields(d); len(fields) > 0 {
		c.mu.Unlock()
		return Result{
			Outcome: OutcomeInvalid,
			Message: fields[0].Message,
			Err:     joinFieldErrors(fields),
			Fields:  fields,
		}
	}

	c.errMsg = ""
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if d.mode == ModeLogin {
		return c.login(ctx, d)
	}
	return c.register(ctx, d)
}

// RetryProfile repeats the profile write of an account left in
// PhaseProfilePending. In any other phase it is a no-op.
func (c *Controller) RetryProfile(ctx context.Context) Result {
	c.mu.Lock()
	if c.phase != PhaseProfilePending || c.inFlight {
		c.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}
	p, id := c.pending, c.identity
	c.errMsg = ""
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if err := c.writeProfile(ctx, p); err != nil {
		return c.profilePending(ctx, id, p, err)
	}
	c.logger.Info(ctx, "profile written on retry", "user_id", id.ID)
	return c.succeed(id)
}

// Reset forgets the identity, the error and all field values. The mode is
// kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopCheckLocked()
	c.email, c.password, c.username = "", "", ""
	c.errMsg = ""
	c.verdict = VerdictUnknown
	c.identity = nil
	c.phase = PhaseAnonymous
	c.pending = models.Profile{}
}

func (c *Controller) login(ctx context.Context, d draft) Result {
	tctx, cancel := c.withTimeout(ctx)
	defer cancel()

	id, err := c.auth.SignIn(tctx, d.email, d.password)
	if err != nil {
		reason := provider.Reason(err)
		c.logger.Warn(ctx, "sign in failed", "reason", reason, "error", err)
		return c.fail(OutcomeFailed, LoginMessage(reason), err)
	}

	if id != nil {
		c.logger.Info(ctx, "user logged in", "user_id", id.ID)
	}
	return c.succeed(id)
}

func (c *Controller) register(ctx context.Context, d draft) Result {
	if err := strength.Validate(d.password); err != nil {
		c.logger.Debug(ctx, "password rejected by local policy", "error", err)
		return c.fail(OutcomeRejected, MsgPolicyRejected, err)
	}

	tctx, cancel := c.withTimeout(ctx)
	strong, err := c.oracle.Check(tctx, d.password)
	cancel()
	if err != nil {
		c.logger.Warn(ctx, "strength check failed", "error", err)
		return c.fail(OutcomeFailed, MsgRegistrationFailed, err)
	}
	if !strong {
		return c.fail(OutcomeRejected, MsgWeakPassword, ErrWeakPassword)
	}

	tctx, cancel = c.withTimeout(ctx)
	id, err := c.auth.SignUp(tctx, d.email, d.password, d.username)
	cancel()
	if err != nil {
		reason := provider.Reason(err)
		c.logger.Warn(ctx, "sign up failed", "reason", reason, "error", err)
		return c.fail(OutcomeFailed, RegisterMessage(reason), err)
	}
	if id == nil {
		c.logger.Info(ctx, "sign up accepted without identity")
		return c.succeed(nil)
	}

	email := id.Email
	if email == "" {
		email = d.email
	}
	p := models.Profile{ID: id.ID, Email: email, Username: d.username, CreatedAt: c.now().UTC()}

	if err := c.writeProfile(ctx, p); err != nil {
		return c.profilePending(ctx, id, p, err)
	}
	c.logger.Info(ctx, "user registered and profile created", "user_id", id.ID)
	return c.succeed(id)
}

func (c *Controller) writeProfile(ctx context.Context, p models.Profile) error {
	tctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.profiles.Upsert(tctx, p)
}

func (c *Controller) profilePending(ctx context.Context, id *models.Identity, p models.Profile, err error) Result {
	c.logger.Error(ctx, "account created but profile write failed", "user_id", id.ID, "error", err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = id
	c.phase = PhaseProfilePending
	c.pending = p
	c.errMsg = MsgUnexpected
	return Result{Outcome: OutcomeProfilePending, Identity: id, Message: MsgUnexpected, Err: err}
}

func (c *Controller) fail(o Outcome, msg string, err error) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
	return Result{Outcome: o, Message: msg, Err: err}
}

func (c *Controller) succeed(id *models.Identity) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != nil {
		c.identity = id
		c.phase = PhaseAuthenticated
		c.pending = models.Profile{}
	}
	return Result{Outcome: OutcomeSucceeded, Identity: id}
}

// startCheckLocked invalidates any running check and, when the draft is a
// non-empty register password, starts a new one. c.mu must be held.
func (c *Controller) startCheckLocked(ctx context.Context) {
	c.stopCheckLocked()
	if c.mode != ModeRegister || c.password == "" {
		return
	}

	gen, pw := c.gen, c.password
	// the check outlives the caller's request
	cctx, cancel := c.withTimeout(context.WithoutCancel(ctx))
	c.cancelCheck = cancel

	done := make(chan struct{})
	c.checkDone = done
	go func() {
		defer close(done)
		defer cancel()

		strong, err := c.oracle.Check(cctx, pw)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen {
			return
		}
		if err != nil {
			c.logger.Warn(cctx, "strength check failed", "error", err)
			return
		}
		c.verdict = verdictOf(strong)
	}()
}

// stopCheckLocked invalidates and cancels the running check. c.mu must be
// held.
func (c *Controller) stopCheckLocked() {
	c.gen++
	if c.cancelCheck != nil {
		c.cancelCheck()
		c.cancelCheck = nil
	}
	c.checkDone = nil
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
