package tests

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/VarunPasupunuri/mind-sprouts/apps/api/echo"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	emailsvc "github.com/VarunPasupunuri/mind-sprouts/services/email"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func Test_userApi_login(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	testutil.CreateUser(t, env.usrRepo, "Naughty", "naughty1", "ndog@test.st", "LePass123", []string{user.RoleStudent}, false)

	tests := []httpTest{
		{
			name: "empty credentials", body: marchallObj(t, echoapi.LoginRequest{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "username is a required field", "password": "password is a required field"}),
		},
		{
			name: "unknown user", body: marchallObj(t, echoapi.LoginRequest{Username: "who", Password: "LePass123"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marchallObj(t, echoapi.LoginRequest{Username: student.Username, Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: marchallObj(t, echoapi.LoginRequest{Username: "naughty1", Password: "LePass123"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("first login pays the flat daily bonus", func(t *testing.T) {
		var resp echoapi.LoginResponse
		rec := doJSON(t, env.server, http.MethodPost, "/v1/users/login", "",
			marchallObj(t, echoapi.LoginRequest{Username: student.Username, Password: "LePass123"}), &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.Reward)
		assert.Equal(t, 10, resp.Reward.Points)
		assert.Equal(t, 1, resp.Reward.Streak)
		require.NotNil(t, resp.User)
		assert.Equal(t, 1, resp.User.Stats.Streak)
	})

	t.Run("second login same day is not rewarded", func(t *testing.T) {
		var resp echoapi.LoginResponse
		rec := doJSON(t, env.server, http.MethodPost, "/v1/users/login", "",
			marchallObj(t, echoapi.LoginRequest{Username: student.Username, Password: "LePass123"}), &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, resp.Token)
		assert.Nil(t, resp.Reward)
	})

	t.Run("login works with email too", func(t *testing.T) {
		var resp echoapi.LoginResponse
		rec := doJSON(t, env.server, http.MethodPost, "/v1/users/login", "",
			marchallObj(t, echoapi.LoginRequest{Username: student.Email, Password: "LePass123"}), &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, resp.Token)
	})
}

func Test_userApi_register(t *testing.T) {
	env := setup(t)

	t.Run("self registration creates a student", func(t *testing.T) {
		var usr user.User
		rec := doJSON(t, env.server, http.MethodPost, "/v1/users/register", "",
			marchallObj(t, user.NewUser{
				Name:            "New Sprout",
				Username:        "sprout99",
				Email:           "sprout99@test.st",
				Password:        "LePass123",
				PasswordConfirm: "LePass123",
			}), &usr)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{user.RoleStudent}, usr.Roles)
		assert.Zero(t, usr.Stats.Points)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/users/register", "",
			marchallObj(t, user.NewUser{
				Name:            "Copycat",
				Username:        "sprout99",
				Email:           "other@test.st",
				Password:        "LePass123",
				PasswordConfirm: "LePass123",
			}), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_userApi_me(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/users/me")
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("returns profile with rank", func(t *testing.T) {
		var usr user.User
		rec := doJSON(t, env.server, http.MethodGet, "/v1/users/me", getToken(t, student), nil, &usr)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, student.ID, usr.ID)
		assert.Equal(t, 1, usr.Stats.Rank)
	})

	t.Run("badges follow points", func(t *testing.T) {
		_, err := env.usrSvc.AwardPoints(student.ID, 60)
		require.NoError(t, err)

		var badges []user.Badge
		rec := doJSON(t, env.server, http.MethodGet, "/v1/users/me/badges", getToken(t, student), nil, &badges)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, badges, 2) // Seedling + Sprout
		assert.Equal(t, "Seedling", badges[0].Name)
		assert.Equal(t, "Sprout", badges[1].Name)
	})
}

func Test_userApi_leaderboard(t *testing.T) {
	env := setup(t)

	first := testutil.CreateUser(t, env.usrRepo, "First", "first1", "first@test.st", "LePass123", []string{user.RoleStudent}, true)
	second := testutil.CreateUser(t, env.usrRepo, "Second", "second1", "second@test.st", "LePass123", []string{user.RoleStudent}, true)
	inactive := testutil.CreateUser(t, env.usrRepo, "Ghost", "ghost1", "ghost@test.st", "LePass123", []string{user.RoleStudent}, false)

	for id, pts := range map[string]int{first.ID: 100, second.ID: 50, inactive.ID: 999} {
		if _, err := env.usrSvc.AwardPoints(id, pts); err != nil {
			t.Fatalf("awarding points: %v", err)
		}
	}

	var board []user.User
	rec := doJSON(t, env.server, http.MethodGet, "/v1/leaderboard", getToken(t, first), nil, &board)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, board, 2, "inactive users stay off the board")
	assert.Equal(t, first.ID, board[0].ID)
	assert.Equal(t, 1, board[0].Stats.Rank)
	assert.Equal(t, second.ID, board[1].ID)
	assert.Equal(t, 2, board[1].Stats.Rank)
}

func Test_userApi_passwordResetFlow(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "OldPass123", []string{user.RoleStudent}, true)

	emailsvc.SentMessages = emailsvc.SentMessages[:0]
	rec := doJSON(t, env.server, http.MethodPost, "/v1/users/password-reset", "",
		marchallObj(t, echoapi.PasswordResetRequest{Email: student.Email}), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, emailsvc.SentMessages, 1)

	// pull uid & token out of the reset link
	re := regexp.MustCompile(`/password-reset/([^/\s]+)/([^/\s]+)`)
	m := re.FindStringSubmatch(emailsvc.SentMessages[0].TextContent)
	require.Len(t, m, 3, "reset link not found in email")
	uid, token := m[1], m[2]

	rec = doJSON(t, env.server, http.MethodPost, "/v1/users/password-reset-confirm", "",
		marchallObj(t, user.ResetUserPassword{
			UID:             uid,
			Token:           token,
			Password:        "NewPass456",
			PasswordConfirm: "NewPass456",
		}), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// old password is dead, new one works
	rec = doJSON(t, env.server, http.MethodPost, "/v1/users/login", "",
		marchallObj(t, echoapi.LoginRequest{Username: student.Username, Password: "OldPass123"}), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, env.server, http.MethodPost, "/v1/users/login", "",
		marchallObj(t, echoapi.LoginRequest{Username: student.Username, Password: "NewPass456"}), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// a used token does not verify again
	rec = doJSON(t, env.server, http.MethodPost, "/v1/users/password-reset-confirm", "",
		marchallObj(t, user.ResetUserPassword{
			UID:             uid,
			Token:           token,
			Password:        "Again789!",
			PasswordConfirm: "Again789!",
		}), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_userApi_adminSurface(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin1", "admin@test.st", "LePass123", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{name: "list: auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "list: admin required", path: "/v1/users", token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "list: ok", path: "/v1/users", token: adminToken, wantData: marchallList(t, student, admin)},
		{name: "detail: ok", path: "/v1/users/" + student.ID, token: adminToken, wantData: marchallObj(t, student)},
		{name: "detail: own profile", path: "/v1/users/" + student.ID, token: getToken(t, student), wantData: marchallObj(t, student)},
		{
			name: "detail: someone else's profile hidden", path: "/v1/users/" + admin.ID, token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.method == "" {
				tt.method = http.MethodGet
			}
			if tt.wantCode == 0 {
				tt.wantCode = http.StatusOK
			}
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("admin cannot delete themselves", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodDelete, "/v1/users/"+admin.ID, adminToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deletes a user", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodDelete, "/v1/users/"+student.ID, adminToken, nil, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		_, err := env.usrSvc.GetByID(student.ID)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func Test_userApi_tokenRefresh(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)

	var resp echoapi.LoginResponse
	rec := doJSON(t, env.server, http.MethodPost, "/v1/users/token-refresh", getToken(t, student), nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp.Token)

	// refreshed tokens keep working
	time.Sleep(time.Second) // new iat
	rec = doJSON(t, env.server, http.MethodGet, "/v1/users/me", resp.Token, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
