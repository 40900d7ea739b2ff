package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func Test_notificationApi_feed(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	feed := func(t *testing.T) []notification.Notification {
		t.Helper()
		var notifs []notification.Notification
		rec := doJSON(t, env.server, http.MethodGet, "/v1/notifications", token, nil, &notifs)
		require.Equal(t, http.StatusOK, rec.Code)
		return notifs
	}

	t.Run("feed carries a reminder for the first incomplete challenge", func(t *testing.T) {
		notifs := feed(t)
		require.Len(t, notifs, 1)
		assert.Equal(t, notification.TypeChallenge, notifs[0].Type)
		assert.Equal(t, "ch-1", notifs[0].RelatedID)
		assert.False(t, notifs[0].Read)
	})

	t.Run("reminder is not duplicated on refetch", func(t *testing.T) {
		require.Len(t, feed(t), 1)
	})

	t.Run("reminder follows challenge progress", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/challenges/ch-1/complete", token, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		notifs := feed(t)
		require.Len(t, notifs, 1)
		assert.Equal(t, "ch-2", notifs[0].RelatedID)
	})

	t.Run("mark read and clear", func(t *testing.T) {
		notifs := feed(t)
		require.Len(t, notifs, 1)

		rec := doJSON(t, env.server, http.MethodPost, "/v1/notifications/"+notifs[0].ID+"/read", token, nil, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		notifs = feed(t)
		require.Len(t, notifs, 1)
		assert.True(t, notifs[0].Read)

		rec = doJSON(t, env.server, http.MethodDelete, "/v1/notifications/read", token, nil, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// the feed resyncs a fresh unread reminder
		notifs = feed(t)
		require.Len(t, notifs, 1)
		assert.False(t, notifs[0].Read)
	})

	t.Run("mark all read", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/notifications/read-all", token, nil, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		for _, n := range feed(t) {
			assert.True(t, n.Read)
		}
	})

	t.Run("marking an unknown notification is a 404", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/notifications/nope/read", token, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_notificationApi_prefs(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	t.Run("defaults to an empty blob", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodGet, "/v1/notifications/prefs", token, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "{}", rec.Body.String())
	})

	t.Run("saved wholesale and echoed back", func(t *testing.T) {
		blob := []byte(`{"daily_reminder":true,"sound":"off"}`)
		rec := doJSON(t, env.server, http.MethodPut, "/v1/notifications/prefs", token, blob, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, env.server, http.MethodGet, "/v1/notifications/prefs", token, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, string(blob), rec.Body.String())
	})
}
