package hostedui

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Domain:       "https://auth.example.com",
		ClientID:     "client-123",
		RedirectBase: "https://daburgger.example",
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginURL(t *testing.T) {
	t.Parallel()

	u, err := url.Parse(testConfig().LoginURL())
	require.NoError(t, err)

	assert.Equal(t, "auth.example.com", u.Host)
	assert.Equal(t, "/login", u.Path)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://daburgger.example/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "token", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
}

func TestLogoutURL(t *testing.T) {
	t.Parallel()

	u, err := url.Parse(testConfig().LogoutURL())
	require.NoError(t, err)

	assert.Equal(t, "/logout", u.Path)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://daburgger.example/", q.Get("logout_uri"))
}

func TestParseRedirectFragment_NoTokens(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.Nil(t, ParseRedirectFragment("", now))
	assert.Nil(t, ParseRedirectFragment("#", now))
	assert.Nil(t, ParseRedirectFragment("#state=abc&token_type=Bearer", now))
	assert.Nil(t, ParseRedirectFragment("#id_token=;;;%zz", now))
}

func TestParseRedirectFragment_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	at := signToken(t, jwt.MapClaims{"username": "alex"})

	t.Run("explicit expires_in", func(t *testing.T) {
		t.Parallel()

		sess := ParseRedirectFragment("#access_token="+at+"&expires_in=120", now)
		require.NotNil(t, sess)
		assert.Equal(t, now.Unix()+120, sess.ExpiresAt)
	})

	t.Run("missing expires_in defaults to an hour", func(t *testing.T) {
		t.Parallel()

		sess := ParseRedirectFragment("#access_token="+at, now)
		require.NotNil(t, sess)
		assert.Equal(t, now.Unix()+3600, sess.ExpiresAt)
	})

	t.Run("garbage expires_in defaults to an hour", func(t *testing.T) {
		t.Parallel()

		sess := ParseRedirectFragment("#access_token="+at+"&expires_in=soon", now)
		require.NotNil(t, sess)
		assert.Equal(t, now.Unix()+3600, sess.ExpiresAt)
	})
}

func TestParseRedirectFragment_Claims(t *testing.T) {
	t.Parallel()

	now := time.Now()

	idToken := signToken(t, jwt.MapClaims{
		"email":          "id@b.c",
		"name":           "Id Name",
		"cognito:groups": []string{"admins", "staff"},
	})
	accessToken := signToken(t, jwt.MapClaims{
		"email":          "at@b.c",
		"username":       "at-user",
		"cognito:groups": []string{"staff"},
	})

	t.Run("identity token claims win", func(t *testing.T) {
		t.Parallel()

		sess := ParseRedirectFragment("#id_token="+idToken+"&access_token="+accessToken+"&expires_in=3600", now)
		require.NotNil(t, sess)
		assert.Equal(t, idToken, sess.IDToken)
		assert.Equal(t, accessToken, sess.AccessToken)
		assert.Equal(t, "id@b.c", sess.Email)
		assert.Equal(t, "Id Name", sess.Name)
		assert.Equal(t, []string{"admins", "staff"}, sess.Groups)
		assert.True(t, sess.IsAdmin())
	})

	t.Run("access token fills the gaps", func(t *testing.T) {
		t.Parallel()

		sess := ParseRedirectFragment("#access_token="+accessToken+"&expires_in=3600", now)
		require.NotNil(t, sess)
		assert.Equal(t, "at@b.c", sess.Email)
		assert.Equal(t, "at-user", sess.Name)
		assert.Equal(t, []string{"staff"}, sess.Groups)
		assert.False(t, sess.IsAdmin())
	})

	t.Run("undecodable token still yields a session", func(t *testing.T) {
		t.Parallel()

		sess := ParseRedirectFragment("#access_token=garbage&expires_in=3600", now)
		require.NotNil(t, sess)
		assert.Equal(t, "garbage", sess.AccessToken)
		assert.Empty(t, sess.Email)
		assert.Empty(t, sess.Groups)
	})

	t.Run("single string group claim", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{"cognito:groups": "admins"})
		sess := ParseRedirectFragment("#id_token="+tok+"&expires_in=3600", now)
		require.NotNil(t, sess)
		assert.Equal(t, []string{"admins"}, sess.Groups)
	})
}
