// package workflow implements the screen state machine driving the client
package workflow

import (
	"context"
	"strings"

	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/services"
	"github.com/desertthunder/insure/internal/session"
	"github.com/desertthunder/insure/internal/shared"
)

// Screen is the single active UI mode. Login and Register are two views of
// one unauthenticated mode, toggled without any network effect.
type Screen int

const (
	Login Screen = iota
	Register
	CollectingProfile
	ShowingRecommendation
)

func (s Screen) String() string {
	switch s {
	case Login:
		return "login"
	case Register:
		return "register"
	case CollectingProfile:
		return "collecting-profile"
	case ShowingRecommendation:
		return "showing-recommendation"
	default:
		return "unknown"
	}
}

// Command is the deferred network work for one user action. It runs off the
// event loop and its Event is fed back through [Controller.Apply].
type Command func(ctx context.Context) Event

type eventKind int

const (
	credentialsEvent eventKind = iota
	profileEvent
)

// Event is the outcome of a completed [Command].
type Event struct {
	seq    int
	kind   eventKind
	tokens *models.TokenPair
	rec    *models.Recommendation
	err    error
}

// Controller maps session status plus user actions onto exactly one active
// Screen, and owns the two network operations.
//
// All mutation happens on the caller's event loop: Submit* methods stage a
// Command, the Command runs elsewhere, and Apply folds its Event back in.
// The busy flag admits at most one in-flight Command; Events from a
// superseded action (stale sequence, e.g. after logout) are discarded.
type Controller struct {
	session *session.Store
	svc     services.Service

	screen  Screen
	busy    bool
	errMsg  string
	profile models.ProfileInput
	rec     *models.Recommendation
	seq     int
}

// NewController derives the initial screen from the session store:
// Login when anonymous, CollectingProfile when a session was restored.
func NewController(sess *session.Store, svc services.Service) *Controller {
	screen := Login
	if sess.Status() == session.Authenticated {
		screen = CollectingProfile
	}

	return &Controller{session: sess, svc: svc, screen: screen}
}

func (c *Controller) Screen() Screen                         { return c.screen }
func (c *Controller) Busy() bool                             { return c.busy }
func (c *Controller) Err() string                            { return c.errMsg }
func (c *Controller) Profile() models.ProfileInput           { return c.profile }
func (c *Controller) Recommendation() *models.Recommendation { return c.rec }

// ToggleMode switches between the Login and Register views. No-op outside
// the unauthenticated mode.
func (c *Controller) ToggleMode() {
	switch c.screen {
	case Login:
		c.screen = Register
		c.errMsg = ""
	case Register:
		c.screen = Login
		c.errMsg = ""
	}
}

// SubmitCredentials stages the authenticate-or-register action for the
// current mode. Returns false when the controller is busy, on the wrong
// screen, or the credentials fail local validation (the error slot is set).
//
// In Register mode the Command chains two calls: registration, then the
// token call with the same credentials, because registration does not itself
// return a session. When the registration succeeds but the token call does
// not, the token call's error is surfaced and no session is established.
func (c *Controller) SubmitCredentials(creds models.Credentials) (Command, bool) {
	if c.busy || (c.screen != Login && c.screen != Register) {
		return nil, false
	}

	if err := creds.Validate(); err != nil {
		c.errMsg = validationMessage(err)
		return nil, false
	}

	c.errMsg = ""
	c.busy = true
	c.seq++

	seq := c.seq
	register := c.screen == Register
	svc := c.svc

	return func(ctx context.Context) Event {
		if register {
			if err := svc.Register(ctx, creds); err != nil {
				return Event{seq: seq, kind: credentialsEvent, err: err}
			}
		}
		tokens, err := svc.Authenticate(ctx, creds)
		return Event{seq: seq, kind: credentialsEvent, tokens: tokens, err: err}
	}, true
}

// SubmitProfile stages the recommendation request. The profile is retained
// either way so a failed attempt can be corrected and resubmitted.
// Validation failures set the error slot without any network round-trip.
func (c *Controller) SubmitProfile(profile models.ProfileInput) (Command, bool) {
	if c.busy || c.screen != CollectingProfile {
		return nil, false
	}

	c.profile = profile

	if err := profile.Validate(); err != nil {
		c.errMsg = validationMessage(err)
		return nil, false
	}

	c.errMsg = ""
	c.busy = true
	c.seq++

	seq := c.seq
	svc := c.svc

	return func(ctx context.Context) Event {
		rec, err := svc.Recommend(ctx, profile)
		return Event{seq: seq, kind: profileEvent, rec: rec, err: err}
	}, true
}

// Apply folds a completed Command's outcome into the state machine.
// Stale events are dropped without any transition.
func (c *Controller) Apply(ev Event) {
	if !c.busy || ev.seq != c.seq {
		return
	}
	c.busy = false

	switch ev.kind {
	case credentialsEvent:
		if ev.err != nil {
			c.errMsg = services.ErrorMessage(ev.err)
			return
		}
		if err := c.session.Login(ev.tokens.AccessToken, ev.tokens.RefreshToken); err != nil {
			c.errMsg = services.FallbackMessage
			return
		}
		c.screen = CollectingProfile
		c.profile = models.ProfileInput{}
		c.errMsg = ""

	case profileEvent:
		if ev.err != nil {
			c.errMsg = services.ErrorMessage(ev.err)
			return
		}
		c.rec = ev.rec
		c.screen = ShowingRecommendation
		c.errMsg = ""
	}
}

// Reset discards the recommendation and returns to an empty profile form.
// Only meaningful on the result screen; elsewhere the state is untouched.
func (c *Controller) Reset() {
	if c.screen != ShowingRecommendation {
		return
	}

	c.rec = nil
	c.profile = models.ProfileInput{}
	c.errMsg = ""
	c.screen = CollectingProfile
}

// Logout delegates to the session store and unconditionally returns to the
// Login view, discarding the recommendation, the profile input, and any
// in-flight action's eventual result.
func (c *Controller) Logout() {
	if c.screen != CollectingProfile && c.screen != ShowingRecommendation {
		return
	}

	c.session.Logout()

	c.rec = nil
	c.profile = models.ProfileInput{}
	c.errMsg = ""
	c.busy = false
	c.seq++ // orphans any outstanding Command
	c.screen = Login
}

// validationMessage strips the sentinel prefix so the screen shows only the
// human-readable part.
func validationMessage(err error) string {
	msg := err.Error()
	if after, found := strings.CutPrefix(msg, shared.ErrInvalidInput.Error()+": "); found {
		return after
	}
	return msg
}
