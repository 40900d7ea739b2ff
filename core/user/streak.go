package user

import "time"

// baseLoginBonus is the flat daily-login payout; a continued streak adds
// the new streak length on top. Tuning constants carried over as-is.
const baseLoginBonus = 10

// LoginReward is the transient payout surfaced to the UI after a
// streak-qualifying login.
type LoginReward struct {
	Points int `json:"points"`
	Streak int `json:"streak"`
}

// ApplyStreak decides streak continuation from the previous login date and
// a single "now" snapshot. It is a pure function of its inputs:
//   - same calendar day as the last login: streak unchanged, no reward
//   - exactly one calendar day later: streak+1, award baseLoginBonus+streak
//   - any other gap (or first-ever login): streak reset to 1, flat payout
func ApplyStreak(prevStreak int, lastLogin, now time.Time) (int, *LoginReward) {
	today := calendarDay(now)
	if !lastLogin.IsZero() {
		switch last := calendarDay(lastLogin); today.Sub(last) {
		case 0:
			return prevStreak, nil
		case 24 * time.Hour:
			streak := prevStreak + 1
			return streak, &LoginReward{Points: baseLoginBonus + streak, Streak: streak}
		}
	}
	return 1, &LoginReward{Points: baseLoginBonus, Streak: 1}
}

// calendarDay truncates t to midnight UTC.
func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
