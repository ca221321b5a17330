package service

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFields(t *testing.T) {
	type testCase struct {
		Name           string
		Input          any
		ExpectedFields []string
	}

	longPassword := "Abcdefgh1!" + strings.Repeat("a", MaxPasswordLength-9)

	testCases := []testCase{
		{
			Name:  "valid registration",
			Input: registrationInput{Username: "alice", Email: "alice@example.com", Password: "Secret12!"},
		},
		{
			Name:           "blank username and malformed email",
			Input:          registrationInput{Username: "   ", Email: "not-an-email", Password: "Secret12!"},
			ExpectedFields: []string{"username", "email"},
		},
		{
			Name:           "password too long",
			Input:          registrationInput{Username: "alice", Email: "alice@example.com", Password: longPassword},
			ExpectedFields: []string{"password"},
		},
		{
			Name:           "password with forbidden character",
			Input:          registrationInput{Username: "alice", Email: "alice@example.com", Password: "Secret12#"},
			ExpectedFields: []string{"password"},
		},
		{
			Name:  "profile without new password",
			Input: profileInput{Username: "alice", Email: "alice@example.com", CurrentPassword: "x"},
		},
		{
			Name:           "profile with weak new password",
			Input:          profileInput{Username: "alice", Email: "alice@example.com", CurrentPassword: "x", NewPassword: ptr("password")},
			ExpectedFields: []string{"newPassword"},
		},
		{
			Name:           "title too long and blank content",
			Input:          scheduleInput{Title: strings.Repeat("t", MaxTitleLength+1), Content: "\t"},
			ExpectedFields: []string{"title", "content"},
		},
		{
			Name:  "title at the limit",
			Input: scheduleInput{Title: strings.Repeat("t", MaxTitleLength), Content: "c"},
		},
		{
			Name:           "page out of range",
			Input:          pageInput{Page: 0, Size: 0},
			ExpectedFields: []string{"page", "size"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := validateInput(tc.Input)

			if len(tc.ExpectedFields) == 0 {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidationFailed)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))

			assert.Len(t, validationErr.Fields, len(tc.ExpectedFields))
			for _, field := range tc.ExpectedFields {
				assert.NotEmpty(t, validationErr.Fields[field], "missing message for field %q", field)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
