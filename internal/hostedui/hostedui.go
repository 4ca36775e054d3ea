// Package hostedui builds redirect URLs for the hosted login pages and
// parses the token fragment the implicit flow sends back. There is no
// network I/O here; the hosted UI and the API backend do the heavy lifting.
package hostedui

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daburgger/daburgger/internal/session"
)

const (
	// CallbackPath is where the hosted UI redirects back to with tokens in
	// the URL fragment.
	CallbackPath = "/auth/callback"

	defaultExpiresIn = 3600

	// groupsClaim is where Cognito-style pools put group membership.
	groupsClaim = "cognito:groups"
)

type Config struct {
	Domain       string
	ClientID     string
	RedirectBase string
	Scopes       []string
}

func (c Config) LoginURL() string {
	p := url.Values{}
	p.Set("client_id", c.ClientID)
	p.Set("redirect_uri", c.RedirectBase+CallbackPath)
	p.Set("response_type", "token")
	p.Set("scope", strings.Join(c.Scopes, " "))
	return c.Domain + "/login?" + p.Encode()
}

func (c Config) LogoutURL() string {
	p := url.Values{}
	p.Set("client_id", c.ClientID)
	p.Set("logout_uri", c.RedirectBase+"/")
	return c.Domain + "/logout?" + p.Encode()
}

// ParseRedirectFragment turns the hosted UI redirect fragment
// (#id_token=...&access_token=...&expires_in=3600) into a Session. It
// returns nil when neither token is present or the fragment is unparsable.
// Claim decode failures leave the identity fields empty instead of failing
// the whole parse; identity-token claims win over access-token claims.
func ParseRedirectFragment(fragment string, now time.Time) *session.Session {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return nil
	}
	params, err := url.ParseQuery(fragment)
	if err != nil {
		return nil
	}

	idToken := params.Get("id_token")
	accessToken := params.Get("access_token")
	if idToken == "" && accessToken == "" {
		return nil
	}

	expiresIn, err := strconv.Atoi(params.Get("expires_in"))
	if err != nil {
		expiresIn = defaultExpiresIn
	}

	idClaims := jwt.MapClaims{}
	if idToken != "" {
		idClaims = session.ClaimsFromToken(idToken)
	}
	atClaims := jwt.MapClaims{}
	if accessToken != "" {
		atClaims = session.ClaimsFromToken(accessToken)
	}

	return &session.Session{
		IDToken:     idToken,
		AccessToken: accessToken,
		ExpiresAt:   now.Unix() + int64(expiresIn),
		Email:       firstString(idClaims["email"], atClaims["email"]),
		Name:        firstString(idClaims["name"], atClaims["username"]),
		Groups:      groupsFrom(idClaims, atClaims),
	}
}

func firstString(vals ...any) string {
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func groupsFrom(claims ...jwt.MapClaims) []string {
	for _, c := range claims {
		switch v := c[groupsClaim].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, g := range v {
				if s, ok := g.(string); ok {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		case []string:
			if len(v) > 0 {
				return v
			}
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return nil
}
