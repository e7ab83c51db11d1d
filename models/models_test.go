package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_CanModify(t *testing.T) {
	owner := &User{ID: 1, Role: RoleMember}
	stranger := &User{ID: 2, Role: RoleMember}
	leader := &User{ID: 3, Role: RoleTeamLeader}
	project := &Project{ID: 10, CreatedBy: 1}

	assert.True(t, owner.CanModify(project))
	assert.False(t, stranger.CanModify(project))
	assert.True(t, leader.CanModify(project), "any team leader may modify")

	var nobody *User
	assert.False(t, nobody.CanModify(project))
	assert.False(t, nobody.IsTeamLeader())
}

func TestUser_Leads(t *testing.T) {
	team := &Team{ID: 5, CreatedBy: 3}

	assert.True(t, (&User{ID: 3, Role: RoleTeamLeader}).Leads(team))
	assert.False(t, (&User{ID: 4, Role: RoleTeamLeader}).Leads(team), "leading is about ownership, not role")
}

func TestUser_ApplyDefaults(t *testing.T) {
	u := &User{Name: "Ada"}
	u.ApplyDefaults()

	assert.Equal(t, RoleMember, u.Role)
	assert.Equal(t, DefaultProfilePhoto, u.ProfilePhoto)
	assert.Equal(t, DefaultPosition, u.Position)
	assert.NotNil(t, u.Skills)
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Email: "a@b.c", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")
	assert.NotContains(t, string(b), "password")
}

func TestParseStringList(t *testing.T) {
	tests := []struct {
		in   string
		want StringList
	}{
		{"", StringList{}},
		{`["go", "sql"]`, StringList{"go", "sql"}},
		{"go, sql ,", StringList{"go", "sql"}},
		{"solo", StringList{"solo"}},
		{"[broken", StringList{"[broken"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStringList(tt.in))
		})
	}
}

func TestStringList_DatabaseRoundTrip(t *testing.T) {
	v, err := StringList{"alice", "bob"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["alice","bob"]`, v)

	var got StringList
	require.NoError(t, got.Scan([]byte(v.(string))))
	assert.Equal(t, StringList{"alice", "bob"}, got)

	var empty StringList
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, got.Scan(42))
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	var body struct {
		Developers StringList `json:"developers"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"developers":["a","b"]}`), &body))
	assert.Equal(t, StringList{"a", "b"}, body.Developers)

	require.NoError(t, json.Unmarshal([]byte(`{"developers":"[\"c\"]"}`), &body))
	assert.Equal(t, StringList{"c"}, body.Developers)

	assert.Error(t, json.Unmarshal([]byte(`{"developers":12}`), &body))
}

func TestAppError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("Team"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "wrapped: Team not found", err.Error())

	cause := errors.New("boom")
	internal := NewInternalError("load team", cause)
	assert.ErrorIs(t, internal, cause)
}
