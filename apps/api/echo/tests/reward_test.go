package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

func Test_rewardApi_redeem(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "Student", "student1", "student@test.st", "LePass123", []string{user.RoleStudent}, true)
	token := getToken(t, student)

	t.Run("store listing", func(t *testing.T) {
		var items []reward.StoreItem
		rec := doJSON(t, env.server, http.MethodGet, "/v1/rewards", token, nil, &items)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, items, 2)
	})

	t.Run("insufficient points leaves the balance alone", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/rewards/rw-1/redeem", token, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Zero(t, usr.Stats.Points)
	})

	t.Run("unknown item is a 404", func(t *testing.T) {
		rec := doJSON(t, env.server, http.MethodPost, "/v1/rewards/nope/redeem", token, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("redeeming deducts exactly the cost", func(t *testing.T) {
		_, err := env.usrSvc.AwardPoints(student.ID, 50)
		require.NoError(t, err)

		var rd reward.Redemption
		rec := doJSON(t, env.server, http.MethodPost, "/v1/rewards/rw-1/redeem", token, nil, &rd)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "rw-1", rd.ItemID)
		assert.Equal(t, 30, rd.Cost)

		usr, err := env.usrSvc.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, 20, usr.Stats.Points)
	})

	t.Run("redemption history", func(t *testing.T) {
		var rds []reward.Redemption
		rec := doJSON(t, env.server, http.MethodGet, "/v1/rewards/redemptions", token, nil, &rds)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, rds, 1)
		assert.Equal(t, "rw-1", rds[0].ItemID)
	})
}
