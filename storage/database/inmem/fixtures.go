package inmemdb

import (
	"time"

	"github.com/google/uuid"

	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

// Demo account credentials; fixtures only, never for real deployments.
const (
	DemoStudentEmail = "sprout@demo.test"
	DemoTeacherEmail = "mentor@demo.test"
	DemoPassword     = "Gr33n!Sprout"
)

var fixtureChallenges = []challenge.Challenge{
	{ID: "ch-recycle-sort", Category: challenge.CategoryRecycling, Title: "Sort a week of recycling", Points: 20},
	{ID: "ch-bottle-free", Category: challenge.CategoryRecycling, Title: "Go one day without single-use plastic", Points: 30},
	{ID: "ch-lights-off", Category: challenge.CategoryEnergy, Title: "Lights-off hour", Points: 15},
	{ID: "ch-standby-hunt", Category: challenge.CategoryEnergy, Title: "Hunt down standby power", Points: 25},
	{ID: "ch-short-shower", Category: challenge.CategoryWater, Title: "Five-minute shower challenge", Points: 20},
	{ID: "ch-bird-count", Category: challenge.CategoryBiodiversity, Title: "Backyard bird count", Points: 35},
	{ID: "ch-seed-planting", Category: challenge.CategoryBiodiversity, Title: "Plant a native seed", Points: 40},
	{ID: "ch-bike-to-school", Category: challenge.CategoryTransport, Title: "Bike or walk to school", Points: 30},
}

var fixtureEcoItems = []challenge.EcoItem{
	{ID: "eco-compost-bin", ChallengeID: "ch-recycle-sort", Name: "Compost Bin", Icon: "bin"},
	{ID: "eco-solar-panel", ChallengeID: "ch-standby-hunt", Name: "Mini Solar Panel", Icon: "panel"},
	{ID: "eco-bird-house", ChallengeID: "ch-bird-count", Name: "Bird House", Icon: "house"},
	{ID: "eco-oak-sapling", ChallengeID: "ch-seed-planting", Name: "Oak Sapling", Icon: "tree"},
}

var fixtureAssignments = []assignment.Assignment{
	{ID: "as-energy-audit", Title: "Home energy audit", Points: 50},
	{ID: "as-waste-diary", Title: "One-week waste diary", Points: 40},
	{ID: "as-eco-poster", Title: "Design an eco poster", Points: 35},
}

var fixtureStoreItems = []reward.StoreItem{
	{ID: "rw-avatar-leaf", Name: "Leaf Avatar Frame", Category: "cosmetic", Cost: 30},
	{ID: "rw-garden-theme", Name: "Garden Theme", Category: "cosmetic", Cost: 60},
	{ID: "rw-sticker-pack", Name: "Sticker Pack", Category: "cosmetic", Cost: 20},
	{ID: "rw-tree-donation", Name: "Plant a Real Tree", Category: "impact", Cost: 100},
	{ID: "rw-library-pass", Name: "Library Fast Pass", Category: "perk", Cost: 45},
}

// Seed loads the fixed catalogs and the demo accounts. The returned student
// and teacher are ready to log in with DemoPassword.
func Seed(db *DB) (student, teacher user.User, err error) {
	db.SetChallengeCatalog(fixtureChallenges, fixtureEcoItems)
	db.SetAssignmentCatalog(fixtureAssignments)
	db.SetRewardCatalog(fixtureStoreItems)

	usrRepo := NewUserRepository(db)
	now := time.Now().UTC()

	student = user.User{
		Name:      "Demo Sprout",
		Username:  "sprout01",
		Email:     DemoStudentEmail,
		IsActive:  true,
		Roles:     []string{user.RoleStudent},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = student.SetPassword(DemoPassword); err != nil {
		return
	}
	if student, err = usrRepo.CreateUser(student); err != nil {
		return
	}

	teacher = user.User{
		Name:      "Demo Mentor",
		Username:  "mentor01",
		Email:     DemoTeacherEmail,
		IsActive:  true,
		Roles:     []string{user.RoleTeacher},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = teacher.SetPassword(DemoPassword); err != nil {
		return
	}
	if teacher, err = usrRepo.CreateUser(teacher); err != nil {
		return
	}

	// static fixture notifications for the demo student
	notifRepo := NewNotificationRepository(db)
	for _, n := range []notification.Notification{
		{
			Type:       notification.TypeSystem,
			TitleKey:   "notifications.welcome.title",
			MessageKey: "notifications.welcome.message",
		},
		{
			Type:       notification.TypeReward,
			TitleKey:   "notifications.store_opened.title",
			MessageKey: "notifications.store_opened.message",
		},
	} {
		n.ID = uuid.NewString()
		n.UserID = student.ID
		n.Timestamp = now
		if err = notifRepo.SaveNotification(n); err != nil {
			return
		}
	}
	return student, teacher, nil
}
