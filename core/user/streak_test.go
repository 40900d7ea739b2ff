package user

import (
	"testing"
	"time"
)

func TestApplyStreak(t *testing.T) {
	now := time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		prevStreak int
		lastLogin  time.Time
		wantStreak int
		wantReward *LoginReward
	}{
		{
			name:       "first ever login",
			prevStreak: 0,
			wantStreak: 1,
			wantReward: &LoginReward{Points: 10, Streak: 1},
		},
		{
			name:       "same calendar day",
			prevStreak: 4,
			lastLogin:  now.Add(-3 * time.Hour),
			wantStreak: 4,
		},
		{
			name:       "same day late night vs early morning",
			prevStreak: 2,
			lastLogin:  time.Date(2024, time.March, 10, 0, 1, 0, 0, time.UTC),
			wantStreak: 2,
		},
		{
			name:       "exactly one day later",
			prevStreak: 4,
			lastLogin:  now.AddDate(0, 0, -1),
			wantStreak: 5,
			wantReward: &LoginReward{Points: 15, Streak: 5},
		},
		{
			name:       "yesterday across midnight boundary",
			prevStreak: 1,
			lastLogin:  time.Date(2024, time.March, 9, 23, 59, 0, 0, time.UTC),
			wantStreak: 2,
			wantReward: &LoginReward{Points: 12, Streak: 2},
		},
		{
			name:       "two day gap resets",
			prevStreak: 9,
			lastLogin:  now.AddDate(0, 0, -2),
			wantStreak: 1,
			wantReward: &LoginReward{Points: 10, Streak: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, reward := ApplyStreak(tt.prevStreak, tt.lastLogin, now)
			if streak != tt.wantStreak {
				t.Errorf("ApplyStreak() streak = %d, want %d", streak, tt.wantStreak)
			}
			if (reward == nil) != (tt.wantReward == nil) {
				t.Fatalf("ApplyStreak() reward = %v, want %v", reward, tt.wantReward)
			}
			if reward != nil && *reward != *tt.wantReward {
				t.Errorf("ApplyStreak() reward = %+v, want %+v", reward, tt.wantReward)
			}
		})
	}
}

func TestApplyStreakDeterministic(t *testing.T) {
	last := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.June, 2, 22, 0, 0, 0, time.UTC)

	s1, r1 := ApplyStreak(3, last, now)
	s2, r2 := ApplyStreak(3, last, now)
	if s1 != s2 || *r1 != *r2 {
		t.Errorf("ApplyStreak() not deterministic: (%d, %+v) vs (%d, %+v)", s1, r1, s2, r2)
	}
}
