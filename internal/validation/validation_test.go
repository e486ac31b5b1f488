package validation

import (
	"strings"
	"testing"

	"github.com/dailypush/dailypush/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	v := New(DefaultLimits)

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "john", false},
		{"valid with dash and underscore", "j_o-hn9", false},
		{"minimum length", "abc", false},
		{"maximum length", "a" + strings.Repeat("b", 49), false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", "a" + strings.Repeat("b", 50), true},
		{"starts with digit", "1john", true},
		{"starts with underscore", "_john", true},
		{"contains space", "jo hn", true},
		{"contains dot", "jo.hn", true},
		{"non ascii", "jöhn", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Username(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPassword(t *testing.T) {
	v := New(DefaultLimits)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "validUser#1", false},
		{"every special char accepted", "aA1#$@!%&*?", false},
		{"minimum length", "aA1#aA1#", false},
		{"empty", "", true},
		{"too short", "aA1#aA1", true},
		{"too long", "aA1#" + strings.Repeat("a", 61), true},
		{"no lowercase", "VALIDUSER#1", true},
		{"no uppercase", "validuser#1", true},
		{"no digit", "validUser#!", true},
		{"no special", "validUser11", true},
		{"char outside set", "validUser#1^", true},
		{"space", "valid User#1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Password(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfirmation(t *testing.T) {
	v := New(DefaultLimits)
	assert.NoError(t, v.Confirmation("validUser#1", "validUser#1"))
	err := v.Confirmation("validUser#1", "validUser#2")
	require.Error(t, err)
	assert.Equal(t, "Passwords must match.", err.Error())
}

func TestTopicName(t *testing.T) {
	v := New(DefaultLimits)
	assert.NoError(t, v.TopicName("demo"))
	assert.NoError(t, v.TopicName(strings.Repeat("я", 100)), "length counts runes")
	assert.Error(t, v.TopicName(""))
	assert.Error(t, v.TopicName("   "))
	assert.Error(t, v.TopicName(strings.Repeat("x", 101)))
}

func TestPostFields(t *testing.T) {
	v := New(DefaultLimits)
	assert.NoError(t, v.PostTitle(""), "title is optional")
	assert.NoError(t, v.PostTitle(strings.Repeat("t", 100)))
	assert.Error(t, v.PostTitle(strings.Repeat("t", 101)))

	assert.NoError(t, v.PostBody("hello"))
	err := v.PostBody(" \n")
	require.Error(t, err)
	assert.Equal(t, "Post text is required.", err.Error())
}

func TestStruct(t *testing.T) {
	type form struct {
		Username string `validate:"required"`
		TopicId  int64  `validate:"required,gt=0"`
	}

	assert.NoError(t, Struct(form{Username: "john", TopicId: 1}))
	// content rules are left to Validator
	assert.NoError(t, Struct(form{Username: "1john", TopicId: 1}))
	assert.Error(t, Struct(form{Username: "john", TopicId: -1}))
	assert.Error(t, Struct(form{}))
}
