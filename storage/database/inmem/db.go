package inmemdb

import (
	"sync"

	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/game"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

// DB is the in-memory backing store. Each table guards itself with its own
// RWMutex; cross-table invariants are the services' concern.
type (
	DB struct {
		user         *userTable
		challenge    *challengeTable
		game         *gameTable
		learn        *learnTable
		assignment   *assignmentTable
		reward       *rewardTable
		notification *notificationTable
		visit        *visitTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	challengeTable struct {
		sync.RWMutex
		catalog   []challenge.Challenge
		items     []challenge.EcoItem
		completed map[string]map[string]bool        // userID -> challengeID
		unlocked  map[string]map[string]*ecoItemRow // userID -> itemID
	}

	gameTable struct {
		sync.RWMutex
		table map[string]*game.HighScore // userID/gameID/difficulty
	}

	learnTable struct {
		sync.RWMutex
		table map[string][]learn.Completion // userID
	}

	assignmentTable struct {
		sync.RWMutex
		catalog     []assignment.Assignment
		submissions map[string]*assignment.Submission // userID/assignmentID
	}

	rewardTable struct {
		sync.RWMutex
		catalog     []reward.StoreItem
		redemptions map[string][]reward.Redemption // userID
	}

	notificationTable struct {
		sync.RWMutex
		table map[string][]*notification.Notification // userID
		prefs map[string]notification.Prefs           // userID
	}

	visitTable struct {
		sync.RWMutex
		log []analytics.Visit
	}
)

func Open() *DB {
	db := &DB{
		user: &userTable{table: make(map[string]*user.User)},
		challenge: &challengeTable{
			completed: make(map[string]map[string]bool),
			unlocked:  make(map[string]map[string]*ecoItemRow),
		},
		game:       &gameTable{table: make(map[string]*game.HighScore)},
		learn:      &learnTable{table: make(map[string][]learn.Completion)},
		assignment: &assignmentTable{submissions: make(map[string]*assignment.Submission)},
		reward:     &rewardTable{redemptions: make(map[string][]reward.Redemption)},
		notification: &notificationTable{
			table: make(map[string][]*notification.Notification),
			prefs: make(map[string]notification.Prefs),
		},
		visit: &visitTable{},
	}
	return db
}
