package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const setupKey = "bootstrap-key"

func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("jwt.secret", "test-secret")
	viper.Set("app.dev", true)
	viper.Set("db.driver", "sqlite")
	viper.Set("db.dsn", fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	viper.Set("admin.setup_key", setupKey)

	a, err := NewRouter()
	require.NoError(t, err)

	return a
}

func doJSON(t *testing.T, a *API, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	return w
}

func register(t *testing.T, a *API, username, email, password string) {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/api/users", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func liveToken(t *testing.T, a *API, username string) string {
	t.Helper()

	var user model.User
	require.NoError(t, a.DB.Where("username = ?", username).First(&user).Error)

	var tok model.VerificationToken
	require.NoError(t, a.DB.Where("user_id = ?", user.ID).First(&tok).Error)

	return tok.Token
}

func verify(t *testing.T, a *API, username string) {
	t.Helper()

	w := doJSON(t, a, http.MethodGet, "/api/users/verify?token="+liveToken(t, a, username), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func login(t *testing.T, a *API, username, password string) *http.Cookie {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/api/users/login", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}

	t.Fatal("no auth_token cookie set")
	return nil
}

func TestHeartbeat(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodHead, "/api/heartbeat", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	a := newTestAPI(t)

	register(t, a, "alice", "a@x.com", "SecureP@ss123")

	// Duplicates are rejected with a conflict
	w := doJSON(t, a, http.MethodPost, "/api/users", gin.H{
		"username": "alice2",
		"email":    "a@x.com",
		"password": "SecureP@ss123",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Unverified users can't log in yet
	w = doJSON(t, a, http.MethodPost, "/api/users/login", gin.H{
		"username": "alice",
		"password": "SecureP@ss123",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// A made up token never verifies anything
	w = doJSON(t, a, http.MethodGet, "/api/users/verify?token=definitely-not-real", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	token := liveToken(t, a, "alice")
	verify(t, a, "alice")

	// Single use
	w = doJSON(t, a, http.MethodGet, "/api/users/verify?token="+token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Wrong password
	w = doJSON(t, a, http.MethodPost, "/api/users/login", gin.H{
		"username": "alice",
		"password": "WrongPass1",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := login(t, a, "alice", "SecureP@ss123")

	w = doJSON(t, a, http.MethodGet, "/api/users", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		Verified bool   `json:"verified"`
		Staff    bool   `json:"staff"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, "member", profile.Role)
	require.True(t, profile.Verified)
	require.False(t, profile.Staff)

	// Logout clears the session cookie
	w = doJSON(t, a, http.MethodPost, "/api/users/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResendReplacesToken(t *testing.T) {
	a := newTestAPI(t)

	register(t, a, "carol", "c@x.com", "SecureP@ss123")
	old := liveToken(t, a, "carol")

	w := doJSON(t, a, http.MethodPost, "/api/users/resend", gin.H{"email": "c@x.com"})
	require.Equal(t, http.StatusOK, w.Code)

	fresh := liveToken(t, a, "carol")
	require.NotEqual(t, old, fresh)

	// Unknown emails get the exact same answer
	w = doJSON(t, a, http.MethodPost, "/api/users/resend", gin.H{"email": "ghost@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetupAdmin(t *testing.T) {
	a := newTestAPI(t)

	register(t, a, "root", "root@x.com", "SecureP@ss123")

	w := doJSON(t, a, http.MethodGet, "/api/setup-admin?key=wrong&username=root", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, a, http.MethodGet, "/api/setup-admin?key="+setupKey+"&username=root", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var root model.User
	require.NoError(t, a.DB.Where("username = ?", "root").First(&root).Error)
	require.Equal(t, model.RoleAdmin, root.Role)
	require.True(t, root.Verified)
	require.True(t, root.Active)

	// Without a configured key the endpoint doesn't exist
	viper.Set("admin.setup_key", "")
	w = doJSON(t, a, http.MethodGet, "/api/setup-admin?key=&username=root", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	viper.Set("admin.setup_key", setupKey)
}

func TestAdminSurface(t *testing.T) {
	a := newTestAPI(t)

	register(t, a, "root", "root@x.com", "SecureP@ss123")
	register(t, a, "bob", "bob@x.com", "SecureP@ss123")
	verify(t, a, "bob")

	w := doJSON(t, a, http.MethodGet, "/api/setup-admin?key="+setupKey+"&username=root", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rootCookie := login(t, a, "root", "SecureP@ss123")
	bobCookie := login(t, a, "bob", "SecureP@ss123")

	// Members never reach the admin surface
	w = doJSON(t, a, http.MethodGet, "/api/admin/users", nil, bobCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, a, http.MethodGet, "/api/admin/users", nil, rootCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list struct {
		Users []struct {
			Username string `json:"username"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Users, 2)

	var bob model.User
	require.NoError(t, a.DB.Where("username = ?", "bob").First(&bob).Error)
	var root model.User
	require.NoError(t, a.DB.Where("username = ?", "root").First(&root).Error)

	// Promote bob to moderator
	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+bob.ID+"/role", gin.H{"role": "moderator"}, rootCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, a.DB.Where("id = ?", bob.ID).First(&bob).Error)
	require.Equal(t, model.RoleModerator, bob.Role)
	require.True(t, bob.Role.IsStaff())
	require.False(t, bob.Role.IsSuperuser())

	// Admins can't act on themselves
	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+root.ID+"/active", nil, rootCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+root.ID+"/role", gin.H{"role": "member"}, rootCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Moderators reach the admin surface but can't touch staff
	w = doJSON(t, a, http.MethodGet, "/api/admin/users", nil, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+root.ID+"/active", nil, bobCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+bob.ID+"/role", gin.H{"role": "member"}, bobCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Invalid role selections bounce
	register(t, a, "carl", "carl@x.com", "SecureP@ss123")
	var carl model.User
	require.NoError(t, a.DB.Where("username = ?", "carl").First(&carl).Error)

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+carl.ID+"/role", gin.H{"role": "owner"}, rootCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Deactivate carl, then his login is refused
	verify(t, a, "carl")

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+carl.ID+"/active", nil, rootCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/users/login", gin.H{
		"username": "carl",
		"password": "SecureP@ss123",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Unknown target
	w = doJSON(t, a, http.MethodPost, "/api/admin/users/missing-id/active", nil, rootCookie)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStats(t *testing.T) {
	a := newTestAPI(t)

	register(t, a, "dave", "d@x.com", "SecureP@ss123")
	verify(t, a, "dave")
	register(t, a, "erin", "e@x.com", "SecureP@ss123")

	w := doJSON(t, a, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		TotalUsers    int64 `json:"totalUsers"`
		VerifiedUsers int64 `json:"verifiedUsers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(1), stats.VerifiedUsers)
}
