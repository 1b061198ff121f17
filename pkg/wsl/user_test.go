package wsl_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util/mock"
	"github.com/oomol-lab/wsl-get/pkg/wsl"
)

const idCmd = "wsl.exe -d ubuntu -u root -- id -u bob"

func TestSetDefaultUser(t *testing.T) {
	testCases := map[string]struct {
		user       string
		version    *mock.Response
		missing    bool
		confExists string
		uidOut     string

		wantManage bool
		wantConf   string
		wantErr    bool
	}{
		"Success with --manage on recent WSL":       {user: "bob", version: &mock.Response{Stdout: "WSL version: 2.4.11.0\nKernel version: 5.15.167.4-1\n"}, wantManage: true},
		"Success with localized version output":     {user: "bob", version: &mock.Response{Stdout: "WSL-Version: 2.5.7.0\n"}, wantManage: true},
		"Success writes wsl.conf on older WSL":      {user: "bob", version: &mock.Response{Stdout: "WSL version: 2.0.9.0\n"}, wantConf: "[user]\ndefault = bob\n"},
		"Success writes wsl.conf without --version": {user: "bob", version: &mock.Response{ExitCode: 1, Stdout: "Invalid command line option: --version"}, wantConf: "[user]\ndefault = bob\n"},
		"Success keeps existing wsl.conf content":   {user: "bob", version: &mock.Response{ExitCode: 1}, confExists: "[boot]\nsystemd=true\n", wantConf: "[boot]\nsystemd=true\n\n[user]\ndefault = bob\n"},

		"Success keeps non UTF-8 bytes of wsl.conf": {
			user:       "bob",
			version:    &mock.Response{ExitCode: 1},
			confExists: "[boot]\nsystemd=true\n# caf\xe9\n",
			wantConf:   "[boot]\nsystemd=true\n# caf\xe9\n\n[user]\ndefault = bob\n",
		},

		"Error when the user does not exist": {user: "bob", missing: true, wantErr: true},
		"Error when the user name is unsafe": {user: "bob;reboot", wantErr: true},
		"Error when the uid is not a number": {user: "bob", uidOut: "bob\n", wantErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, r := newController(t)
			uidOut := "1000\n"
			if tc.uidOut != "" {
				uidOut = tc.uidOut
			}
			r.On(idCmd, mock.Response{Stdout: uidOut})
			if tc.missing {
				r.On(idCmd, mock.Response{ExitCode: 1, Stderr: "id: 'bob': no such user"})
			}
			if tc.version != nil {
				r.On("wsl.exe --version", *tc.version)
			}
			r.On("wsl.exe -d ubuntu -u root -- sh -c cat /etc/wsl.conf", mock.Response{Stdout: tc.confExists})

			err := c.SetDefaultUser(context.Background(), "ubuntu", tc.user)
			if tc.wantErr {
				require.ErrorIs(t, err, types.ErrSetDefaultUserFailed)
				require.Empty(t, r.CallsWithPrefix("wsl.exe --manage"))
				require.Empty(t, r.CallsWithPrefix("wsl.exe --terminate"))
				return
			}
			require.NoError(t, err)

			manage := r.CallsWithPrefix("wsl.exe --manage")
			if tc.wantManage {
				require.Equal(t, []string{"wsl.exe --manage ubuntu --set-default-user bob"}, manage)
				return
			}
			require.Empty(t, manage)

			writes := r.CallsWithPrefix("wsl.exe -d ubuntu -u root -- sh -c echo ")
			require.Len(t, writes, 1, "wsl.conf should be written once")
			encoded := strings.Fields(strings.TrimPrefix(writes[0], "wsl.exe -d ubuntu -u root -- sh -c echo "))[0]
			got, err := base64.StdEncoding.DecodeString(encoded)
			require.NoError(t, err)
			require.Equal(t, tc.wantConf, string(got))
			require.Equal(t, []string{"wsl.exe --terminate ubuntu"}, r.CallsWithPrefix("wsl.exe --terminate"))
		})
	}
}

func TestSetDefaultUserThroughAPI(t *testing.T) {
	testCases := map[string]struct {
		apiErr error

		wantManage bool
	}{
		"Success sets the resolved uid":         {},
		"Success falls back when the API fails": {apiErr: errors.New("WslConfigureDistribution: 0x8007019e"), wantManage: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, r := newController(t)
			r.On(idCmd, mock.Response{Stdout: "1001\n"})
			r.On("wsl.exe --version", mock.Response{Stdout: "WSL version: 2.4.11.0\n"})

			var gotInstance string
			var gotUID uint32
			wsl.SetUIDConfigurer(c, func(_ context.Context, instance string, uid uint32) error {
				gotInstance, gotUID = instance, uid
				return tc.apiErr
			})

			require.NoError(t, c.SetDefaultUser(context.Background(), "ubuntu", "bob"))
			require.Equal(t, "ubuntu", gotInstance)
			require.Equal(t, uint32(1001), gotUID, "the uid from id -u should be applied")

			manage := r.CallsWithPrefix("wsl.exe --manage")
			if tc.wantManage {
				require.Equal(t, []string{"wsl.exe --manage ubuntu --set-default-user bob"}, manage)
				return
			}
			require.Empty(t, manage)
			require.Empty(t, r.CallsWithPrefix("wsl.exe -d ubuntu -u root -- sh -c echo "), "wsl.conf should not be written")
		})
	}
}

func TestCreateUserRollbackIsBounded(t *testing.T) {
	c, r := newController(t)
	r.On("wsl.exe -d ubuntu -u root -- passwd", mock.Response{ExitCode: 10})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Error(t, c.CreateUser(ctx, "ubuntu", "bob"))
	require.Equal(t, []string{"wsl.exe -d ubuntu -u root -- /usr/sbin/userdel --remove bob"}, r.CallsWithDeadline(),
		"only the rollback runs on its own bounded context")
}

func TestValidateUserName(t *testing.T) {
	for _, ok := range []string{"bob", "_svc", "build-agent", "user1", "machine$"} {
		require.NoError(t, wsl.ValidateUserName(ok), "name %q", ok)
	}
	for _, bad := range []string{"", "Bob", "1user", "bob;reboot", "a b", strings.Repeat("a", 33)} {
		require.Error(t, wsl.ValidateUserName(bad), "name %q", bad)
	}
}

func TestCreateUser(t *testing.T) {
	testCases := map[string]struct {
		noBash     bool
		passwdFail bool
		addFail    bool

		wantUseradd string
		wantErr     bool
	}{
		"Success with bash":        {wantUseradd: "wsl.exe -d ubuntu -u root -- /usr/sbin/useradd -m -s /usr/bin/bash bob"},
		"Success falls back to sh": {noBash: true, wantUseradd: "wsl.exe -d ubuntu -u root -- /usr/sbin/useradd -m -s /usr/bin/sh bob"},

		"Error when useradd fails": {addFail: true, wantErr: true},
		"Error when passwd fails":  {passwdFail: true, wantErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, r := newController(t)
			if tc.noBash {
				r.On("wsl.exe -d ubuntu -u root -- test -e /usr/bin/bash", mock.Response{ExitCode: 1})
				r.On("wsl.exe -d ubuntu -u root -- test -e /bin/bash", mock.Response{ExitCode: 1})
			}
			if tc.addFail {
				r.On("wsl.exe -d ubuntu -u root -- /usr/sbin/useradd", mock.Response{ExitCode: 9, Stderr: "useradd: user 'bob' already exists"})
			}
			if tc.passwdFail {
				r.On("wsl.exe -d ubuntu -u root -- passwd", mock.Response{ExitCode: 10})
			}

			err := c.CreateUser(context.Background(), "ubuntu", "bob")
			userdel := r.CallsWithPrefix("wsl.exe -d ubuntu -u root -- /usr/sbin/userdel")

			if tc.wantErr {
				require.Error(t, err)
				if tc.passwdFail {
					require.Equal(t, []string{"wsl.exe -d ubuntu -u root -- /usr/sbin/userdel --remove bob"}, userdel, "a half created user must be removed")
				} else {
					require.Empty(t, userdel, "nothing to roll back when useradd fails")
				}
				return
			}
			require.NoError(t, err)
			require.Empty(t, userdel)
			require.Equal(t, []string{tc.wantUseradd}, r.CallsWithPrefix("wsl.exe -d ubuntu -u root -- /usr/sbin/useradd"))
			require.Len(t, r.CallsWithPrefix("wsl.exe -d ubuntu -u root -- sh -c getent group"), 2)
			require.Equal(t, []string{"wsl.exe -d ubuntu -u root -- passwd bob"}, r.CallsWithPrefix("wsl.exe -d ubuntu -u root -- passwd"))
		})
	}
}
