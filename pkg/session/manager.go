package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	loginPath  = "/api/auth/login"
	signupPath = "/api/auth/signup"
	logoutPath = "/api/auth/logout"
)

// Manager is the single source of truth for "who is logged in". It bridges
// the remote authentication API and local durable storage, and is safe for
// concurrent use.
type Manager struct {
	baseURL string
	client  *http.Client
	store   Store
	log     *zap.Logger

	mu      sync.Mutex
	gen     uint64
	current *Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient overrides the HTTP client used for auth API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithLogger attaches a logger; by default the manager is silent.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager returns a Manager talking to the auth API at baseURL and
// persisting sessions in store. The manager starts logged out; call Restore
// to load a previously persisted session.
func NewManager(baseURL string, store Store, opts ...Option) *Manager {
	m := &Manager{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		store:   store,
		log:     zap.NewNop(),
		current: &Session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the in-memory session. It is never nil; a zero session
// means logged out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	return m.Current().Token
}

// Restore loads a previously persisted session from the store. Missing or
// malformed data degrades to the logged-out state; Restore never fails, so a
// corrupt local record cannot block application startup.
func (m *Manager) Restore() *Session {
	token, ok, err := m.store.Get(KeyToken)
	if err != nil || !ok || token == "" {
		return m.setCurrent(&Session{})
	}
	raw, ok, err := m.store.Get(KeyUser)
	if err != nil || !ok {
		return m.setCurrent(&Session{})
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.log.Warn("discarding malformed persisted session", zap.Error(err))
		return m.setCurrent(&Session{})
	}
	return m.setCurrent(&Session{Token: token, User: &user})
}

// Login authenticates against the remote API and replaces the session
// wholesale on success. On any failure the previous session, in memory and
// persisted, is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string, role Role) (*Session, error) {
	if email == "" || password == "" {
		return nil, &Error{Kind: KindValidation, Message: "email and password are required"}
	}
	if !role.Valid() {
		return nil, &Error{Kind: KindValidation, Message: "role must be PATIENT or DOCTOR"}
	}
	body := map[string]any{"email": email, "password": password, "role": role}
	return m.authenticate(ctx, loginPath, body)
}

// Register creates an account and logs it in, applying the same response
// normalization and persistence as Login. Role-specific required fields are
// checked before any network call.
func (m *Manager) Register(ctx context.Context, data RegistrationData) (*Session, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, signupPath, data)
}

// Logout revokes the token server-side on a best-effort basis, then clears
// the persisted and in-memory session. It is idempotent: logging out while
// already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	token := m.Token()
	if token != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+logoutPath, nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			if resp, err := m.client.Do(req); err != nil {
				m.log.Warn("server-side logout failed", zap.Error(err))
			} else {
				resp.Body.Close()
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Advance the generation so a login or register response still in flight
	// cannot re-install a session the user just logged out of.
	m.gen++
	if err := m.store.Delete(KeyToken, KeyUser); err != nil {
		m.log.Warn("clearing persisted session failed", zap.Error(err))
	}
	m.current = &Session{}
}

// authPayload is the loose shape of the auth API's responses. The token
// arrives under a provider-specific name depending on the endpoint.
type authPayload struct {
	Message        string          `json:"message"`
	Jwt            string          `json:"jwt"`
	Token          string          `json:"token"`
	AccessToken    string          `json:"accessToken"`
	UserID         int64           `json:"userId"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	Email          string          `json:"email"`
	Birthday       *string         `json:"birthday"`
	PhoneNumber    string          `json:"phoneNumber"`
	Specialization *Specialization `json:"specialization"`
}

func (p *authPayload) token() string {
	switch {
	case p.Jwt != "":
		return p.Jwt
	case p.Token != "":
		return p.Token
	default:
		return p.AccessToken
	}
}

func (m *Manager) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	gen := m.nextGen()

	payload, err := m.post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	sess, err := normalize(payload)
	if err != nil {
		return nil, err
	}
	if err := m.commit(gen, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *Manager) post(ctx context.Context, path string, body any) (*authPayload, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "could not reach the authentication server", cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "could not read the server response", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteError(resp.StatusCode, data)
	}

	var payload authPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &Error{Kind: KindServer, Message: "server returned an unexpected response", cause: err}
	}
	return &payload, nil
}

// remoteError maps a non-2xx response to the error taxonomy. A parseable
// JSON message is surfaced verbatim; anything else, including HTML error
// pages, becomes a ServerError.
func remoteError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		if status >= 500 {
			return &Error{Kind: KindServer, Message: payload.Message}
		}
		return &Error{Kind: KindInvalidCredentials, Message: payload.Message}
	}
	return &Error{Kind: KindServer, Message: fmt.Sprintf("server error (status %d)", status)}
}

// normalize maps the provider field names onto the canonical session shape.
func normalize(p *authPayload) (*Session, error) {
	token := p.token()
	if token == "" {
		return nil, &Error{Kind: KindServer, Message: "server response is missing a token"}
	}
	role := Role(p.Role)
	if !role.Valid() {
		return nil, &Error{Kind: KindServer, Message: "server response has an unknown role"}
	}
	user := &User{
		UserID:         p.UserID,
		Name:           p.Name,
		Email:          p.Email,
		Role:           role,
		Birthday:       dateOnly(p.Birthday),
		Specialization: p.Specialization,
		PhoneNumber:    p.PhoneNumber,
	}
	return &Session{Token: token, User: user}, nil
}

// dateOnly strips any time component from a timestamp-style birthday.
func dateOnly(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	d, _, _ := strings.Cut(*s, "T")
	return &d
}

// commit persists and installs a new session. The generation check keeps a
// response from a superseded login or register attempt from overwriting a
// session established by a newer one.
func (m *Manager) commit(gen uint64, sess *Session) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		m.log.Warn("discarding session from superseded auth attempt")
		return nil
	}
	if err := m.store.Put(map[string]string{KeyToken: sess.Token, KeyUser: string(raw)}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.current = sess
	return nil
}

func (m *Manager) nextGen() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

func (m *Manager) setCurrent(sess *Session) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = sess
	return sess
}
