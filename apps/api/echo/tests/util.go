package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/VarunPasupunuri/mind-sprouts/apps/api/echo"
	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/game"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	chatsvc "github.com/VarunPasupunuri/mind-sprouts/services/chat"
	emailsvc "github.com/VarunPasupunuri/mind-sprouts/services/email"
	logsvc "github.com/VarunPasupunuri/mind-sprouts/services/logger"
	inmemdb "github.com/VarunPasupunuri/mind-sprouts/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

// deterministic catalogs for API tests
var (
	testChallenges = []challenge.Challenge{
		{ID: "ch-1", Category: challenge.CategoryRecycling, Title: "Sort your recycling", Points: 20},
		{ID: "ch-2", Category: challenge.CategoryEnergy, Title: "Lights-off hour", Points: 15},
	}
	testEcoItems = []challenge.EcoItem{
		{ID: "eco-1", ChallengeID: "ch-1", Name: "Compost Bin"},
	}
	testAssignments = []assignment.Assignment{
		{ID: "as-1", Title: "Home energy audit", Points: 50},
	}
	testStoreItems = []reward.StoreItem{
		{ID: "rw-1", Name: "Leaf Avatar Frame", Cost: 30},
		{ID: "rw-2", Name: "Plant a Real Tree", Cost: 100},
	}
)

type testEnv struct {
	server Server

	usrRepo  user.Repository
	usrSvc   *user.Service
	notifSvc *notification.Service
	sched    *core.ManualScheduler
	tipRec   *chatsvc.Recorder
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db := inmemdb.Open()
	db.SetChallengeCatalog(testChallenges, testEcoItems)
	db.SetAssignmentCatalog(testAssignments)
	db.SetRewardCatalog(testStoreItems)

	logger := logsvc.NewStdLogger(log.New(os.Stderr, "TEST : ", log.LstdFlags))
	mailSvc := emailsvc.NewConsoleServiceMock()
	sched := core.NewManualScheduler()

	usrRepo := inmemdb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, mailSvc, logger)
	chlSvc := challenge.NewService(inmemdb.NewChallengeRepository(db), usrSvc)
	gameSvc := game.NewService(inmemdb.NewGameRepository(db))
	learnSvc := learn.NewService(inmemdb.NewLearnRepository(db), usrSvc)
	asgSvc := assignment.NewService(inmemdb.NewAssignmentRepository(db), usrSvc, sched, logger)
	t.Cleanup(asgSvc.Shutdown)
	rwdSvc := reward.NewService(inmemdb.NewRewardRepository(db), usrSvc)
	notifSvc := notification.NewService(inmemdb.NewNotificationRepository(db), chlSvc)
	anlSvc := analytics.NewService(inmemdb.NewVisitRepository(db))
	tipRec := &chatsvc.Recorder{Output: "Take a five-minute shower today."}
	tipSvc := chatsvc.NewServiceMock(tipRec, logger)

	server := NewServer(&Options{
		DisableReqLogs: true,
		Logger:         logger,
		SignalShutdown: func() {},

		UserSvc:         usrSvc,
		ChallengeSvc:    chlSvc,
		GameSvc:         gameSvc,
		LearnSvc:        learnSvc,
		AssignmentSvc:   asgSvc,
		RewardSvc:       rwdSvc,
		NotificationSvc: notifSvc,
		AnalyticsSvc:    anlSvc,
		TipSvc:          tipSvc,
	})

	return &testEnv{
		server:   server,
		usrRepo:  usrRepo,
		usrSvc:   usrSvc,
		notifSvc: notifSvc,
		sched:    sched,
		tipRec:   tipRec,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func doJSON(t *testing.T, server Server, method, path, token string, body []byte, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	req, rec := newAuthRequest(method, path, token, body)
	server.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("unmarshalling response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}
