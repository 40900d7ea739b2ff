package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/VarunPasupunuri/mind-sprouts/apps/api/echo"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func Test_learnApi_complete(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	path := "/v1/learn/topics/recycling/content/video-1/complete"

	t.Run("first completion is recorded and pays out", func(t *testing.T) {
		var resp echoapi.RecordedResponse
		rec := doJSON(t, env.server, http.MethodPost, path, token, marchallObj(t, learn.CompleteContent{Points: 15}), &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Recorded)

		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, usr.Stats.Points)
	})

	t.Run("repeat completion pays nothing", func(t *testing.T) {
		var resp echoapi.RecordedResponse
		rec := doJSON(t, env.server, http.MethodPost, path, token, marchallObj(t, learn.CompleteContent{Points: 15}), &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, resp.Recorded)

		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, usr.Stats.Points, "content points are once-only")
	})

	t.Run("oversized award is refused", func(t *testing.T) {
		path := "/v1/learn/topics/energy/content/video-9/complete"
		rec := doJSON(t, env.server, http.MethodPost, path, token, marchallObj(t, learn.CompleteContent{Points: 999}), nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, usr.Stats.Points, "no points granted past the cap")
	})

	t.Run("completions listing", func(t *testing.T) {
		var comps []learn.Completion
		rec := doJSON(t, env.server, http.MethodGet, "/v1/learn/completions", token, nil, &comps)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, comps, 1)
		assert.Equal(t, "recycling", comps[0].TopicID)
		assert.Equal(t, "video-1", comps[0].ContentID)
	})
}
