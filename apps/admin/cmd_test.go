package main

import (
	"bytes"
	"testing"

	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	inmemdb "github.com/VarunPasupunuri/mind-sprouts/storage/database/inmem"
	testutil "github.com/VarunPasupunuri/mind-sprouts/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	db := inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)

	return &commandLine{usrRepo: usrRepo}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.st", "mdr", nil, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing email", args: []string{"adduser", "-username", "gardener"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "gardener", "-email", "g@test.st"}, wantErr: errHelp},
		{name: "create student", args: []string{"adduser", "-username", "gardener", "-email", "g@test.st"}, extra: extra{pwd: "mdr"}},
		{name: "promote to admin", args: []string{"adduser", "-username", "gardener", "-email", "g@test.st", "-admin"}, extra: extra{pwd: "mdr"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, err := usrRepo.GetUserByUsernameOrEmail("gardener")
	if err != nil {
		t.Fatalf("GetUserByUsernameOrEmail() failed, %v", err)
	}
	if !usr.IsAdmin() {
		t.Error("expected promoted admin user")
	}
}
