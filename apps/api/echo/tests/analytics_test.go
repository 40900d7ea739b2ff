package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/VarunPasupunuri/mind-sprouts/apps/api/echo"
	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func Test_analyticsApi(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	teacher := testutil.CreateUser(t, env.usrRepo, "Teacher", "teacher1", "teacher@test.st", "LePass123", []string{user.RoleTeacher}, true)
	studentToken := getToken(t, student)
	teacherToken := getToken(t, teacher)

	t.Run("visit is recorded once per minute", func(t *testing.T) {
		var resp echoapi.RecordedResponse
		rec := doJSON(t, env.server, http.MethodPost, "/v1/visits", studentToken, nil, &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Recorded)

		rec = doJSON(t, env.server, http.MethodPost, "/v1/visits", studentToken, nil, &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, resp.Recorded, "repeat visit within the throttle window")
	})

	t.Run("dashboard needs a teacher", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodGet, "/v1/analytics/active", studentToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("active users", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/visits", teacherToken, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp echoapi.ActiveUsersResponse
		rec = doJSON(t, env.server, http.MethodGet, "/v1/analytics/active", teacherToken, nil, &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, resp.Active)
	})

	t.Run("snapshot has six chart windows", func(t *testing.T) {
		var snap analytics.Snapshot
		rec := doJSON(t, env.server, http.MethodGet, "/v1/analytics/snapshot", teacherToken, nil, &snap)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, snap.Buckets, 6)
		assert.Equal(t, 2, snap.TodayVisitors)
		assert.Equal(t, 2, snap.Buckets[5].Count, "both visits land in the newest window")
		assert.Equal(t, 2, snap.Peak)
	})
}

func Test_tipsApi(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	var resp echoapi.TipResponse
	rec := doJSON(t, env.server, http.MethodGet, "/v1/tips", token, nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Generated)
	assert.Equal(t, "Take a five-minute shower today.", resp.Tip)

	t.Run("prompt reflects completed challenges and the goal", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/challenges/ch-1/complete", token, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, env.server, http.MethodGet, "/v1/tips?goal=save+water+at+home", token, nil, &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Generated)

		require.NotNil(t, env.tipRec.Last)
		prompt := env.tipRec.Last.Messages[1].Content
		assert.Contains(t, prompt, "- Sort your recycling\n", "completed challenge listed")
		assert.NotContains(t, prompt, "Lights-off hour", "open challenge stays out of the prompt")
		assert.Contains(t, prompt, "Their current goal: save water at home")
	})
}
