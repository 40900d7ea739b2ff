package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/VarunPasupunuri/mind-sprouts/apps/api/echo"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func Test_assignmentApi_submitAndAutoApprove(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	var sub assignment.Submission
	rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/submit", token,
		marchallObj(t, assignment.SubmitAssignment{Content: "my audit"}), &sub)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, assignment.StatusSubmitted, sub.Status)
	assert.Equal(t, 1, sub.Attempt)

	t.Run("double submit conflicts", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/submit", token,
			marchallObj(t, assignment.SubmitAssignment{Content: "again"}), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("auto-approval fires after the review delay", func(t *testing.T) {
		env.sched.Advance(3 * time.Second)

		var asgs []assignment.UserAssignment
		rec := doJSON(t, env.server, http.MethodGet, "/v1/assignments", token, nil, &asgs)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, asgs, 1)
		assert.Equal(t, assignment.StatusApproved, asgs[0].Status)

		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, usr.Stats.Points)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/submit", token,
			marchallObj(t, assignment.SubmitAssignment{Content: "once more"}), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)

		// stale timers must not double-award
		env.sched.Advance(time.Minute)
		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, usr.Stats.Points)
	})
}

func Test_assignmentApi_review(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	teacher := testutil.CreateUser(t, env.usrRepo, "Teacher", "teacher1", "teacher@test.st", "LePass123", []string{user.RoleTeacher}, true)
	studentToken := getToken(t, student)
	teacherToken := getToken(t, teacher)

	submit := func(t *testing.T) {
		t.Helper()
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/submit", studentToken,
			marchallObj(t, assignment.SubmitAssignment{Content: "my audit"}), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("students cannot review", func(t *testing.T) {
		submit(t)
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/review", studentToken,
			marchallObj(t, echoapi.ReviewRequest{UserID: student.ID, Approve: true}), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejection cancels the pending auto-approval", func(t *testing.T) {
		var sub assignment.Submission
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/review", teacherToken,
			marchallObj(t, echoapi.ReviewRequest{UserID: student.ID, Approve: false}), &sub)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, assignment.StatusRejected, sub.Status)

		env.sched.Advance(time.Minute)
		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Zero(t, usr.Stats.Points, "cancelled timer must not award")
	})

	t.Run("rejected submissions can be resubmitted", func(t *testing.T) {
		var sub assignment.Submission
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/submit", studentToken,
			marchallObj(t, assignment.SubmitAssignment{Content: "fixed audit"}), &sub)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, assignment.StatusSubmitted, sub.Status)
		assert.Equal(t, 2, sub.Attempt)
	})

	t.Run("explicit approval awards once", func(t *testing.T) {
		var sub assignment.Submission
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/review", teacherToken,
			marchallObj(t, echoapi.ReviewRequest{UserID: student.ID, Approve: true}), &sub)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, assignment.StatusApproved, sub.Status)

		// the cancelled auto-approval timer stays dead
		env.sched.Advance(time.Minute)
		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, usr.Stats.Points)
	})

	t.Run("reviewing an unknown user is a 404", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/assignments/as-1/review", teacherToken,
			marchallObj(t, echoapi.ReviewRequest{UserID: "nope", Approve: true}), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
