package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

const (
	ownerEmail    = "owner@flyers.example"
	ownerPassword = "correct-horse"
)

func bootstrapOwner(t *testing.T, env *testEnv) {
	t.Helper()
	created, err := EnsureBootstrapAdmin(context.Background(), env.db, " Owner@Flyers.example ", ownerPassword)
	require.NoError(t, err)
	require.True(t, created)
}

func adminLogin(t *testing.T, env *testEnv, email, password, role string) (int, map[string]interface{}) {
	t.Helper()
	w := env.do(jsonRequest("POST", "/api/auth/login",
		`{"email":"`+email+`","password":"`+password+`","role":"`+role+`"}`))
	return w.Code, decode(t, w)
}

func ownerToken(t *testing.T, env *testEnv) string {
	t.Helper()
	code, body := adminLogin(t, env, ownerEmail, ownerPassword, models.RoleAdmin)
	require.Equal(t, http.StatusOK, code, body)
	return body["token"].(string)
}

func webSignUp(t *testing.T, env *testEnv, socialID, email string) (int64, string) {
	t.Helper()
	w := env.do(jsonRequest("POST", "/api/web/auth/register",
		`{"fullname":"Test User","email":"`+email+`","user_id":"`+socialID+`"}`))
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, w.Code, w.Body.String())
	var resp models.WebAuthResponse
	require.NoError(t, jsonUnmarshal(w, &resp))
	require.NotNil(t, resp.User)
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := EnsureBootstrapAdmin(ctx, env.db, "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, env.db.admins)

	bootstrapOwner(t, env)
	owner := env.db.admins[ownerEmail]
	assert.Equal(t, models.RoleAdmin, owner.Role)
	assert.True(t, services.CheckPassword(owner.PasswordHash, ownerPassword))

	created, err = EnsureBootstrapAdmin(ctx, env.db, ownerEmail, "a-different-password")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, services.CheckPassword(env.db.admins[ownerEmail].PasswordHash, ownerPassword))
}

func TestAdminRegister_RequiresAdminToken(t *testing.T) {
	env := newTestEnv(t)
	bootstrapOwner(t, env)
	body := `{"email":"evil@x.io","password":"password123","role":"admin"}`

	w := env.do(jsonRequest("POST", "/api/auth/register", body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, webToken := webSignUp(t, env, "google_evil", "evil@x.io")
	w = env.do(withToken(jsonRequest("POST", "/api/auth/register", body), webToken))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, env.db.admins, "evil@x.io")

	token := ownerToken(t, env)
	w = env.do(withToken(jsonRequest("POST", "/api/auth/register",
		`{"email":"Staff@X.io","password":"password123","role":"admin"}`), token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, env.db.admins, "staff@x.io")
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(withToken(jsonRequest("POST", "/api/auth/register",
		`{"email":"staff@x.io","password":"password123","role":"admin"}`), token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["message"])
}

func TestAdminRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	bootstrapOwner(t, env)
	token := ownerToken(t, env)

	for _, body := range []string{
		`{"email":"a@x.io","password":"password123","role":"superuser"}`,
		`{"email":"a@x.io","password":"p","role":"admin"}`,
		`{"email":"not-an-email","password":"password123","role":"admin"}`,
	} {
		w := env.do(withToken(jsonRequest("POST", "/api/auth/register", body), token))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Len(t, env.db.admins, 1)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	bootstrapOwner(t, env)

	code, body := adminLogin(t, env, "nobody@x.io", ownerPassword, models.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["message"])

	code, body = adminLogin(t, env, ownerEmail, ownerPassword, "editor")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized role", body["message"])

	code, body = adminLogin(t, env, ownerEmail, "wrong-password", models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["message"])

	code, body = adminLogin(t, env, ownerEmail, ownerPassword, models.RoleAdmin)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
}

func TestWebRegister_SocialPrefixAndUpsert(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(jsonRequest("POST", "/api/web/auth/register", `{"email":"a@x.io","user_id":"twitter_1"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["message"], "google_")

	w = env.do(jsonRequest("POST", "/api/web/auth/register", `{"fullname":"A","email":"a@x.io","user_id":"google_1"}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["token"])

	w = env.do(jsonRequest("POST", "/api/web/auth/register", `{"fullname":"A B","email":"ab@x.io","user_id":"google_1"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User updated successfully", decode(t, w)["message"])
	assert.Len(t, env.db.webUsers, 1)

	assert.Equal(t, http.StatusNotFound, env.do(jsonRequest("POST", "/api/web/auth/login", `{"user_id":"apple_404"}`)).Code)
	assert.Equal(t, http.StatusOK, env.do(jsonRequest("POST", "/api/web/auth/login", `{"user_id":"google_1"}`)).Code)
}

func TestUpdateProfile_EmailCollision(t *testing.T) {
	env := newTestEnv(t)
	_, token := webSignUp(t, env, "google_a", "a@x.io")
	webSignUp(t, env, "apple_b", "b@x.io")

	w := env.do(withToken(jsonRequest("PUT", "/api/web/auth/profile", `{"fullname":"A","email":"b@x.io"}`), token))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email is already in use", decode(t, w)["message"])

	w = env.do(withToken(jsonRequest("PUT", "/api/web/auth/profile", `{"fullname":"Anna","email":"anna@x.io"}`), token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(jsonRequest("PUT", "/api/web/auth/profile", `{"fullname":"Anna","email":"anna@x.io"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebAccount_RejectsAdminToken(t *testing.T) {
	env := newTestEnv(t)
	bootstrapOwner(t, env)
	token := ownerToken(t, env)

	// A customer whose web_users id equals the admin's users id.
	targetID := env.db.admins[ownerEmail].ID
	env.db.webUsers[targetID] = models.WebUser{ID: targetID, Fullname: "Victim", Email: "victim@x.io", UserID: "google_victim"}

	w := env.do(withToken(jsonRequest("PUT", "/api/web/auth/profile", `{"fullname":"Owned","email":"attacker@x.io"}`), token))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "victim@x.io", env.db.webUsers[targetID].Email)

	w = env.do(withToken(jsonRequest("PUT", "/api/web/auth/password",
		`{"current_password":"whatever1","new_password":"attacker-pass"}`), token))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, env.db.webUsers[targetID].PasswordHash)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	id, token := webSignUp(t, env, "cognito_1", "c@x.io")
	change := func(body string) (int, string) {
		w := env.do(withToken(jsonRequest("PUT", "/api/web/auth/password", body), token))
		return w.Code, decode(t, w)["message"].(string)
	}

	code, msg := change(`{"current_password":"anything","new_password":"new-password"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No password is set for this account", msg)

	hash, err := services.HashPassword("old-password")
	require.NoError(t, err)
	require.NoError(t, env.db.UpdateWebUserPassword(context.Background(), id, hash))

	code, _ = change(`{"current_password":"old-password","new_password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, msg = change(`{"current_password":"not-the-password","new_password":"new-password"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Current password is incorrect", msg)

	code, _ = change(`{"current_password":"old-password","new_password":"new-password"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, services.CheckPassword(*env.db.webUsers[id].PasswordHash, "new-password"))
}
