package main

import (
	"time"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:      uname,
			Username:  uname,
			Email:     email,
			Roles:     user.StudentRoles,
			CreatedAt: now,
		}
	}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(usr)
	}
	return err
}
