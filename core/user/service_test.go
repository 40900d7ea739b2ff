package user_test

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	emailsvc "github.com/VarunPasupunuri/mind-sprouts/services/email"
	logsvc "github.com/VarunPasupunuri/mind-sprouts/services/logger"
	inmemdb "github.com/VarunPasupunuri/mind-sprouts/storage/database/inmem"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func newTestService(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()

	db := inmemdb.Open()
	repo := inmemdb.NewUserRepository(db)
	logger := logsvc.NewStdLogger(log.New(os.Stderr, "TEST : ", log.LstdFlags))
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(), logger), repo
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newTestService(t)

	usr, err := svc.Create(user.NewUser{
		Name:            "New Sprout",
		Username:        "sprout99",
		Email:           "sprout99@test.st",
		Password:        "LePass123",
		PasswordConfirm: "LePass123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, []string{user.RoleStudent}, usr.Roles, "default role is student")
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("LePass123"))

	t.Run("duplicate email fails validation", func(t *testing.T) {
		nu := user.NewUser{
			Name:            "Copycat",
			Username:        "copycat99",
			Email:           "sprout99@test.st",
			Password:        "LePass123",
			PasswordConfirm: "LePass123",
		}
		err := nu.Validate(svc)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, user.ErrEmailExists, vErr.Err)
	})
}

func TestServicePoints(t *testing.T) {
	svc, repo := newTestService(t)
	usr := testutil.CreateUser(t, repo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)

	t.Run("award accumulates", func(t *testing.T) {
		got, err := svc.AwardPoints(usr.ID, 30)
		require.NoError(t, err)
		assert.Equal(t, 30, got.Stats.Points)

		got, err = svc.AwardPoints(usr.ID, 20)
		require.NoError(t, err)
		assert.Equal(t, 50, got.Stats.Points)
	})

	t.Run("negative award is a programming error", func(t *testing.T) {
		_, err := svc.AwardPoints(usr.ID, -5)
		require.Error(t, err)
		assert.True(t, core.IsShutdown(err))
	})

	t.Run("challenge award bumps the counter", func(t *testing.T) {
		got, err := svc.AwardChallengePoints(usr.ID, 10)
		require.NoError(t, err)
		assert.Equal(t, 60, got.Stats.Points)
		assert.Equal(t, 1, got.Stats.ChallengesCompleted)
	})

	t.Run("spend within balance", func(t *testing.T) {
		got, err := svc.SpendPoints(usr.ID, 60)
		require.NoError(t, err)
		assert.Zero(t, got.Stats.Points)
	})

	t.Run("overspending is refused, balance untouched", func(t *testing.T) {
		_, err := svc.SpendPoints(usr.ID, 1)
		assert.Equal(t, user.ErrInsufficientPoints, err)

		got, err := svc.GetByID(usr.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Stats.Points, "points never go negative")
	})
}

func TestServiceLeaderboard(t *testing.T) {
	svc, repo := newTestService(t)

	alice := testutil.CreateUser(t, repo, "Alice", "alice1", "alice@test.st", "LePass123", []string{user.RoleStudent}, true)
	bob := testutil.CreateUser(t, repo, "Bob", "bob1", "bob@test.st", "LePass123", []string{user.RoleStudent}, true)
	carol := testutil.CreateUser(t, repo, "Carol", "carol1", "carol@test.st", "LePass123", []string{user.RoleStudent}, true)
	ghost := testutil.CreateUser(t, repo, "Ghost", "ghost1", "ghost@test.st", "LePass123", []string{user.RoleStudent}, false)

	for id, pts := range map[string]int{alice.ID: 10, bob.ID: 99, carol.ID: 50, ghost.ID: 1000} {
		_, err := svc.AwardPoints(id, pts)
		require.NoError(t, err)
	}

	board, err := svc.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 3, "inactive users are excluded")

	var ids []string
	for _, u := range board {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{bob.ID, carol.ID, alice.ID}, ids)
	for i, u := range board {
		assert.Equal(t, i+1, u.Stats.Rank)
	}

	t.Run("rank of a single user", func(t *testing.T) {
		got, err := svc.GetByID(carol.ID)
		require.NoError(t, err)
		rank, err := svc.Rank(got)
		require.NoError(t, err)
		assert.Equal(t, 2, rank)
	})
}

func TestServiceAuthenticate(t *testing.T) {
	svc, repo := newTestService(t)
	usr := testutil.CreateUser(t, repo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)

	got, reward, err := svc.Authenticate("student1", "LePass123")
	require.NoError(t, err)
	require.NotNil(t, reward)
	assert.Equal(t, 10, reward.Points)
	assert.Equal(t, 1, got.Stats.Streak)
	assert.False(t, got.LastLogin.IsZero())

	t.Run("same day login is not rewarded again", func(t *testing.T) {
		got, reward, err := svc.Authenticate("student1", "LePass123")
		require.NoError(t, err)
		assert.Nil(t, reward)
		assert.Equal(t, 10, got.Stats.Points)
	})

	t.Run("bad password", func(t *testing.T) {
		_, _, err := svc.Authenticate(usr.Username, "nope")
		assert.Equal(t, user.ErrInvalidPassword, err)
	})
}
