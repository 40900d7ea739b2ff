package user

import (
	"errors"
	"net/mail"
	"sort"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrInsufficientPoints = errors.New("not enough points")
)

const resetMailTmpl = `Hi {{.Data.Name}},

You requested a password reset for your {{.Data.AppName}} account.
Follow the link below within {{.Data.Timeout}} to choose a new password:

{{.FrontendBaseURL}}/password-reset/{{.Data.UID}}/{{.Data.Token}}

If you did not request this, you can safely ignore this email.
`

type (
	Repository interface {
		CheckUsernameUniqueness(username, email string, excludedUsers ...User) error
		CreateUser(user User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsername(username string) (User, error)
		GetUserByEmail(email string) (User, error)
		GetUserByUsernameOrEmail(username string) (User, error)
		UpdateUser(user User) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	Service struct {
		repo Repository
		mail core.EmailService
		log  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, mail: mailSvc, log: logger}
}

func (svc *Service) checkUniqueness(uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, email, exclUsers...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Create registers a new account with zeroed stats.
func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	roles := nu.Roles
	if len(roles) == 0 {
		roles = []string{RoleStudent}
	}
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		IsActive:  true,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

// Authenticate verifies credentials and applies the daily streak reward
// against a single "now" snapshot. The returned LoginReward is nil when the
// user already logged in today.
func (svc *Service) Authenticate(unameOrEmail, pwd string) (User, *LoginReward, error) {
	usr, err := svc.GetByUsernameOrEmail(unameOrEmail)
	if err != nil {
		return User{}, nil, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, nil, ErrInvalidPassword
	}
	if !usr.IsActive {
		return User{}, nil, ErrAccountDeactivated
	}

	now := time.Now().UTC()
	streak, reward := ApplyStreak(usr.Stats.Streak, usr.LastLogin, now)
	usr.Stats.Streak = streak
	if reward != nil {
		usr.Stats.Points += reward.Points
	}
	usr.LastLogin = now
	usr.UpdatedAt = now

	usr, err = svc.repo.UpdateUser(usr)
	if err != nil {
		return User{}, nil, pkgerrors.Wrap(err, "saving login stats")
	}
	return usr, reward, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(core.CleanString(uname, true /* lower */))
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}

// AwardPoints credits pts to the user. pts must not be negative;
// deductions go through SpendPoints.
func (svc *Service) AwardPoints(id string, pts int) (User, error) {
	if pts < 0 {
		return User{}, core.NewShutdownError("negative point award")
	}
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Stats.Points += pts
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// AwardChallengePoints credits a challenge payout and bumps the
// completed-challenges counter in one save.
func (svc *Service) AwardChallengePoints(id string, pts int) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Stats.Points += pts
	usr.Stats.ChallengesCompleted++
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// SpendPoints debits exactly cost, refusing any spend that would drive the
// balance negative.
func (svc *Service) SpendPoints(id string, cost int) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	if cost > usr.Stats.Points {
		return User{}, ErrInsufficientPoints
	}
	usr.Stats.Points -= cost
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// Leaderboard returns all active users ordered by points, ranks filled in.
// Ties share point order but get distinct sequential ranks.
func (svc *Service) Leaderboard() ([]User, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return nil, err
	}
	ranked := users[:0]
	for _, usr := range users {
		if usr.IsActive {
			ranked = append(ranked, usr)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Stats.Points > ranked[j].Stats.Points })
	for i := range ranked {
		ranked[i].Stats.Rank = i + 1
	}
	return ranked, nil
}

// Rank computes the user's standing: 1 + the number of active users with
// strictly more points.
func (svc *Service) Rank(usr User) (int, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return 0, err
	}
	rank := 1
	for _, other := range users {
		if other.IsActive && other.Stats.Points > usr.Stats.Points {
			rank++
		}
	}
	return rank, nil
}

// RequestPasswordReset emails a reset link to the account with the given
// email. Callers must report success regardless of whether the account
// exists; only ErrNotFound may leak to logs, never to clients.
func (svc *Service) RequestPasswordReset(email string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}

	uid, token := MakeResetCredentials(usr)
	svc.mail.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TextTemplate: resetMailTmpl,
		TemplateData: ResetMailData{
			Name:    usr.Name,
			AppName: core.Conf.AppName,
			Timeout: core.Conf.PasswordResetTimeout.String(),
			UID:     uid,
			Token:   token,
		},
	})
	return nil
}

// ResetMailData is the template context of the password reset email.
type ResetMailData struct {
	Name, AppName, Timeout, UID, Token string
}

// ResetPassword verifies the emailed token and replaces the password hash.
// The token is single-use: it is bound to the old hash, so a successful
// reset invalidates it.
func (svc *Service) ResetPassword(rp ResetUserPassword) error {
	uid, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(errInvalidToken)
	}
	usr, err := svc.repo.GetUserByID(uid)
	if err != nil {
		if err == ErrNotFound {
			return core.NewValidationError(errInvalidToken)
		}
		return err
	}
	if err = verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err)
	}
	if err = usr.SetPassword(rp.Password); err != nil {
		return pkgerrors.Wrap(err, "setting new password")
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(usr)
	return err
}
