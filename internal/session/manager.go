// Package session owns the authentication state of the app: login and
// registration against the remote endpoint, the guest path, the
// service-link registration follow-up, and the launch-time auto-login
// gate driven by the notification bus.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fishinghit/fishhit/internal/bus"
	"github.com/fishinghit/fishhit/internal/prefs"
	"go.uber.org/zap"
)

// State is the session lifecycle state
type State int

const (
	StateLoading State = iota
	StateGuestOrAuthenticated
	StateAwaitingRegistrationCallback
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateGuestOrAuthenticated:
		return "authenticated"
	case StateAwaitingRegistrationCallback:
		return "awaiting-registration-callback"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// GuestIdentifier is the sentinel identity used by VisitAsGuest
const GuestIdentifier = "guest"

// The auto-login gate waits this long for the push token and the
// attribution payload before attempting anyway.
const defaultStartupTimeout = 5500 * time.Millisecond

// auto-login gate states; transitions go through compare-and-swap so two
// near-simultaneous triggers cannot both fire
const (
	gateIdle int32 = iota
	gateInFlight
	gateDone
)

// Prefs is the slice of the preference store the manager needs
type Prefs interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Snapshot is a read-only copy of the session state. The rest of the app
// observes the session only through snapshots.
type Snapshot struct {
	State                State
	Identifier           string
	Authenticated        bool
	RegistrationComplete bool
	PushToken            string
	Attribution          map[string]string
	DeepLink             string
	ClientID             string
}

// Manager owns the session. All state mutation happens under one mutex,
// including the preference-store writes that mirror it.
type Manager struct {
	client *Client
	prefs  Prefs
	log    *zap.Logger

	startupTimeout time.Duration

	mu                   sync.Mutex
	state                State
	identifier           string
	secret               string
	authenticated        bool
	registrationComplete bool
	noAutoRetry          bool
	pushToken            string
	attribution          map[string]string
	attributionSet       bool
	deepLink             string
	clientID             string

	timedOut atomic.Bool
	gate     atomic.Int32

	resolveOnce sync.Once
	resolved    chan struct{}

	wg sync.WaitGroup
}

// NewManager creates a Manager in the Loading state. A previously stored
// client id is picked up from the preference store. client may be nil
// when only the local operations (VisitAsGuest, Logout, Snapshot) are
// used; Login and Register then fail with ErrUnknown.
func NewManager(client *Client, p Prefs, log *zap.Logger) *Manager {
	m := &Manager{
		client:         client,
		prefs:          p,
		log:            log,
		startupTimeout: defaultStartupTimeout,
		state:          StateLoading,
		resolved:       make(chan struct{}),
	}
	if id, ok := p.Get(prefs.KeyClientID); ok {
		m.clientID = id
	}
	return m
}

// SetStartupTimeout overrides how long Begin waits for the launch
// signals before attempting auto-login anyway
func (m *Manager) SetStartupTimeout(d time.Duration) {
	if d > 0 {
		m.startupTimeout = d
	}
}

// Snapshot returns a copy of the current session state
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var attribution map[string]string
	if m.attributionSet {
		attribution = make(map[string]string, len(m.attribution))
		for k, v := range m.attribution {
			attribution[k] = v
		}
	}

	return Snapshot{
		State:                m.state,
		Identifier:           m.identifier,
		Authenticated:        m.authenticated,
		RegistrationComplete: m.registrationComplete,
		PushToken:            m.pushToken,
		Attribution:          attribution,
		DeepLink:             m.deepLink,
		ClientID:             m.clientID,
	}
}

// Resolved is closed once the session leaves the Loading/Awaiting states
// for the first time
func (m *Manager) Resolved() <-chan struct{} {
	return m.resolved
}

// Wait blocks until background work (the registration follow-up) finishes
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Login authenticates against the remote endpoint. On plain success the
// credentials are persisted and the session becomes authenticated; when
// the reply carries a service link the session instead awaits the
// registration follow-up, which runs in the background.
func (m *Manager) Login(ctx context.Context, identifier, secret string) error {
	if m.client == nil {
		return fmt.Errorf("%w: no endpoint configured", ErrUnknown)
	}

	res, err := m.client.Authorize(ctx, identifier, secret)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.identifier = identifier
	m.secret = secret

	if res.serviceLink != "" {
		m.state = StateAwaitingRegistrationCallback
		link := res.serviceLink
		params := m.callbackParamsLocked()
		m.mu.Unlock()

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.completeRegistration(ctx, link, params)
		}()
		return nil
	}

	m.authenticated = true
	m.state = StateGuestOrAuthenticated
	m.persistCredentialsLocked()
	m.mu.Unlock()

	m.markResolved()
	return nil
}

// Register creates an account on the remote endpoint; on success it
// behaves exactly like Login
func (m *Manager) Register(ctx context.Context, identifier, phone, secret string) error {
	if m.client == nil {
		return fmt.Errorf("%w: no endpoint configured", ErrUnknown)
	}

	res, err := m.client.Register(ctx, identifier, phone, secret)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.identifier = identifier
	m.secret = secret

	if res.serviceLink != "" {
		m.state = StateAwaitingRegistrationCallback
		link := res.serviceLink
		params := m.callbackParamsLocked()
		m.mu.Unlock()

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.completeRegistration(ctx, link, params)
		}()
		return nil
	}

	m.authenticated = true
	m.state = StateGuestOrAuthenticated
	m.persistCredentialsLocked()
	m.mu.Unlock()

	m.markResolved()
	return nil
}

// Logout clears the persisted credentials. No remote call is made.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.prefs.Delete(prefs.KeyEmail); err != nil {
		m.log.Warn("clear stored identifier", zap.Error(err))
	}
	if err := m.prefs.Delete(prefs.KeyPassword); err != nil {
		m.log.Warn("clear stored secret", zap.Error(err))
	}

	m.identifier = ""
	m.secret = ""
	m.authenticated = false
	m.registrationComplete = false
	m.state = StateUnauthenticated
}

// VisitAsGuest enters the app without any remote call
func (m *Manager) VisitAsGuest() {
	m.mu.Lock()
	m.identifier = GuestIdentifier
	m.authenticated = true
	m.state = StateGuestOrAuthenticated
	m.mu.Unlock()

	m.markResolved()
}

// Begin arms the launch flow: it subscribes to the push-token,
// attribution and deep-link topics and starts the startup timeout. The
// automatic login with stored credentials fires once both signals have
// arrived or the timeout elapses, whichever comes first.
func (m *Manager) Begin(ctx context.Context, b *bus.Bus) {
	b.Subscribe(bus.TopicPushToken, func(p bus.Payload) {
		m.mu.Lock()
		m.pushToken = p[bus.KeyPushToken]
		m.mu.Unlock()
		m.maybeAutoLogin(ctx)
	})

	b.Subscribe(bus.TopicAttribution, func(p bus.Payload) {
		m.mu.Lock()
		m.attribution = make(map[string]string, len(p))
		for k, v := range p {
			m.attribution[k] = v
		}
		m.attributionSet = true
		m.mu.Unlock()
		m.maybeAutoLogin(ctx)
	})

	b.Subscribe(bus.TopicDeepLink, func(p bus.Payload) {
		m.mu.Lock()
		// first deep link wins; later ones are ignored
		if m.deepLink == "" {
			m.deepLink = p[bus.KeyDeepLink]
		}
		m.mu.Unlock()
	})

	time.AfterFunc(m.startupTimeout, func() {
		m.timedOut.Store(true)
		m.maybeAutoLogin(ctx)
	})
}

// maybeAutoLogin fires the stored-credential login when the launch
// signals are in (or the timeout passed). The gate transition is a CAS,
// so concurrent triggers collapse into a single attempt; a failed attempt
// re-arms the gate so a later signal can retry.
func (m *Manager) maybeAutoLogin(ctx context.Context) {
	m.mu.Lock()
	ready := (m.pushToken != "" && m.attributionSet) || m.timedOut.Load()
	blocked := m.noAutoRetry
	m.mu.Unlock()

	if !ready || blocked {
		return
	}
	if !m.gate.CompareAndSwap(gateIdle, gateInFlight) {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.autoLogin(ctx)
	}()
}

func (m *Manager) autoLogin(ctx context.Context) {
	identifier, okID := m.prefs.Get(prefs.KeyEmail)
	secret, okPW := m.prefs.Get(prefs.KeyPassword)

	if !okID || !okPW || identifier == "" {
		// nothing stored: resolve to unauthenticated, no retry needed
		m.gate.Store(gateDone)
		m.mu.Lock()
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.markResolved()
		return
	}

	if err := m.Login(ctx, identifier, secret); err != nil {
		m.log.Warn("automatic login failed", zap.Error(err))
		m.gate.Store(gateIdle)
		m.mu.Lock()
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.markResolved()
		return
	}

	m.gate.Store(gateDone)
}

// completeRegistration runs the service-link follow-up. The client id it
// returns is always persisted; the session only becomes authenticated
// when the reply carries a status.
func (m *Manager) completeRegistration(ctx context.Context, link string, params CallbackParams) {
	resp, err := m.client.CompleteRegistration(ctx, link, params)

	m.mu.Lock()
	if err != nil {
		// silent failure path: the user stays unauthenticated
		m.log.Error("registration follow-up failed", zap.Error(err))
		m.authenticated = false
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.markResolved()
		return
	}

	m.clientID = resp.ClientID
	if err := m.prefs.Set(prefs.KeyClientID, resp.ClientID); err != nil {
		m.log.Warn("persist client id", zap.Error(err))
	}

	if resp.Response != nil {
		m.registrationComplete = true
		m.authenticated = true
		m.state = StateGuestOrAuthenticated
		m.persistCredentialsLocked()
	} else {
		m.noAutoRetry = true
		m.authenticated = false
		m.state = StateUnauthenticated
	}
	m.mu.Unlock()

	m.markResolved()
}

// callbackParamsLocked assembles the follow-up parameters; callers hold m.mu
func (m *Manager) callbackParamsLocked() CallbackParams {
	p := CallbackParams{
		PushToken:   m.pushToken,
		ClientID:    m.clientID,
		DeepLink:    m.deepLink != "",
		Attribution: m.attribution,
	}
	if pushID, ok := m.prefs.Get(prefs.KeyPushID); ok {
		p.PushID = pushID
	}
	if idfa, ok := m.prefs.Get(prefs.KeyIDFA); ok {
		p.IDFA = idfa
	}
	return p
}

// persistCredentialsLocked mirrors the in-memory credentials to the
// preference store; failures are logged, not surfaced. Callers hold m.mu.
func (m *Manager) persistCredentialsLocked() {
	if err := m.prefs.Set(prefs.KeyEmail, m.identifier); err != nil {
		m.log.Warn("persist identifier", zap.Error(err))
	}
	if err := m.prefs.Set(prefs.KeyPassword, m.secret); err != nil {
		m.log.Warn("persist secret", zap.Error(err))
	}
}

func (m *Manager) markResolved() {
	m.resolveOnce.Do(func() { close(m.resolved) })
}
