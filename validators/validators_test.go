package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailValidator(t *testing.T) {
	require.NoError(t, EmailValidator("user@example.com"))
	require.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	require.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	require.ErrorIs(t, EmailValidator("user@"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	require.NoError(t, PasswordValidator("SecureP@ss123"))
	require.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	require.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	require.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestUsernameValidator(t *testing.T) {
	require.NoError(t, UsernameValidator("alice"))
	require.NoError(t, UsernameValidator("al.ice-42_x"))
	require.ErrorIs(t, UsernameValidator(""), ErrUsernameEmpty)
	require.ErrorIs(t, UsernameValidator("al"), ErrUsernameTooShort)
	require.ErrorIs(t, UsernameValidator(strings.Repeat("a", 33)), ErrUsernameTooLong)
	require.ErrorIs(t, UsernameValidator("alice!"), ErrUsernameInvalid)
	require.ErrorIs(t, UsernameValidator("al ice"), ErrUsernameInvalid)
}
