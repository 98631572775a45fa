package infra

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"
	"time"

	"github.com/MartinOstios/backend-posco/internal/config"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ErrMailerDisabled is returned when SMTP_HOST is not configured.
var ErrMailerDisabled = errors.New("mailer: smtp not configured")

// oauthTokenCache holds the SMTP OAuth2 access token and refreshes it with
// the refresh token when it expires or the server rejects it.
type oauthTokenCache struct {
	mu   sync.Mutex
	conf *oauth2.Config
	tok  *oauth2.Token
}

func newOAuthTokenCache(cfg *config.Config) *oauthTokenCache {
	return &oauthTokenCache{
		conf: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.OAuthTokenURL},
		},
		tok: &oauth2.Token{
			AccessToken:  cfg.OAuthAccessToken,
			RefreshToken: cfg.OAuthRefreshToken,
		},
	}
}

// Token returns a usable access token, refreshing when needed.
func (c *oauthTokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tok.Valid() {
		return c.tok.AccessToken, nil
	}
	fresh, err := c.conf.TokenSource(ctx, c.tok).Token()
	if err != nil {
		return "", fmt.Errorf("mailer: refresh oauth token: %w", err)
	}
	c.tok = fresh
	return fresh.AccessToken, nil
}

// Invalidate drops the access token so the next Token call refreshes.
func (c *oauthTokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tok = &oauth2.Token{RefreshToken: c.tok.RefreshToken}
}

// xoauth2Auth implements the SASL XOAUTH2 mechanism used by Gmail and Outlook.
type xoauth2Auth struct {
	user, token string
}

func (a *xoauth2Auth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "XOAUTH2", []byte("user=" + a.user + "\x01auth=Bearer " + a.token + "\x01\x01"), nil
}

func (a *xoauth2Auth) Next(fromServer []byte, more bool) ([]byte, error) {
	if more {
		return nil, fmt.Errorf("xoauth2: %s", fromServer)
	}
	return nil, nil
}

// Mailer sends transactional email. It authenticates with XOAUTH2 when a
// refresh token is configured and with PLAIN otherwise.
type Mailer struct {
	host     string
	addr     string
	from     string
	fromName string
	password string
	project  string
	oauth    *oauthTokenCache
	send     func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		host:     cfg.SMTPHost,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     cfg.EmailsFrom,
		fromName: cfg.EmailsFromName,
		password: cfg.SMTPPassword,
		project:  cfg.ProjectName,
		send:     func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
	if cfg.OAuthRefreshToken != "" {
		m.oauth = newOAuthTokenCache(cfg)
	}
	return m
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hola {{.Name}},</p>
<p>Tu código para restablecer la contraseña de {{.Project}} es:</p>
<h2 style="letter-spacing:4px">{{.Code}}</h2>
<p>El código vence en {{.Minutes}} minutos. Si no solicitaste el cambio, ignora este mensaje.</p>`))

// SendResetCode emails a password reset code.
func (m *Mailer) SendResetCode(ctx context.Context, to, name, code string, ttl time.Duration) error {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, map[string]interface{}{
		"Name": name, "Project": m.project, "Code": code, "Minutes": int(ttl.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("mailer: render template: %w", err)
	}

	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	e.To = []string{to}
	e.Subject = fmt.Sprintf("%s - Recuperación de contraseña", m.project)
	e.Text = []byte(fmt.Sprintf("Tu código de recuperación es %s. Vence en %d minutos.", code, int(ttl.Minutes())))
	e.HTML = body.Bytes()
	return m.deliver(ctx, e)
}

func (m *Mailer) deliver(ctx context.Context, e *email.Email) error {
	if m.host == "" {
		return ErrMailerDisabled
	}
	if m.oauth == nil {
		return m.send(e, m.addr, smtp.PlainAuth("", m.from, m.password, m.host))
	}

	tok, err := m.oauth.Token(ctx)
	if err != nil {
		return err
	}
	err = m.send(e, m.addr, &xoauth2Auth{user: m.from, token: tok})
	if err == nil {
		return nil
	}

	// the cached token may have been revoked or expired server-side
	log.Warn().Err(err).Msg("mailer: xoauth2 send failed, refreshing token")
	m.oauth.Invalidate()
	if tok, err = m.oauth.Token(ctx); err != nil {
		return err
	}
	return m.send(e, m.addr, &xoauth2Auth{user: m.from, token: tok})
}
