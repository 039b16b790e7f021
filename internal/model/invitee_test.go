package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRSVP(t *testing.T) {
	tt := []struct {
		stored string
		want   RSVP
	}{
		{"Coming", RSVPComing},
		{"NotComing", RSVPNotComing},
		{"Unknown", RSVPUnknown},
		{"UNKNOWN", RSVPUnknown},
		{"", RSVPUnknown},
		{"coming", RSVPUnknown},
	}

	for _, tc := range tt {
		t.Run(tc.stored, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRSVP(tc.stored))
		})
	}
}

func TestInvitee_JSON(t *testing.T) {
	raw := `{"id":"myid","fname":"Test1","lname":"1","rsvp":true,"dietaryRequirements":"vegan"}`

	var invitee Invitee
	require.NoError(t, json.Unmarshal([]byte(raw), &invitee))

	assert.Equal(t, Invitee{
		ID:                  "myid",
		FirstName:           "Test1",
		LastName:            "1",
		RSVP:                RSVPComing,
		DietaryRequirements: "vegan",
	}, invitee)

	out, err := json.Marshal(invitee)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestRSVP_JSON(t *testing.T) {
	tt := []struct {
		name string
		wire string
		want RSVP
	}{
		{name: "coming", wire: `true`, want: RSVPComing},
		{name: "not coming", wire: `false`, want: RSVPNotComing},
		{name: "unknown", wire: `null`, want: RSVPUnknown},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var r RSVP
			require.NoError(t, json.Unmarshal([]byte(tc.wire), &r))
			assert.Equal(t, tc.want, r)

			out, err := json.Marshal(r)
			require.NoError(t, err)
			assert.Equal(t, tc.wire, string(out))
		})
	}
}

func TestRSVP_UnmarshalRejectsStrings(t *testing.T) {
	var r RSVP
	assert.Error(t, json.Unmarshal([]byte(`"Coming"`), &r))
}

func TestRSVP_UnmarshalErrorNamesField(t *testing.T) {
	var invitee Invitee
	err := json.Unmarshal([]byte(`{"id":"a","rsvp":"Coming"}`), &invitee)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "rsvp", typeErr.Field)
	assert.Equal(t, "string", typeErr.Value)
}

func TestRSVP_MissingFieldIsUnknown(t *testing.T) {
	var invitee Invitee
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a"}`), &invitee))

	assert.Nil(t, invitee.RSVP.Bool())
	assert.Equal(t, RSVPUnknown, invitee.UpdateParams().RSVP)
}

func TestInvitee_UpdateParams(t *testing.T) {
	invitee := Invitee{
		ID:                  "id-1",
		FirstName:           "Ignored",
		LastName:            "Ignored",
		RSVP:                RSVPNotComing,
		DietaryRequirements: "none",
	}

	assert.Equal(t, UpdateInviteeParams{
		ID:                  "id-1",
		RSVP:                RSVPNotComing,
		DietaryRequirements: "none",
	}, invitee.UpdateParams())
}

func TestInvitee_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Invitee{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Invitee{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", Invitee{LastName: "Lovelace"}.FullName())
}

func TestInvitation_JSON(t *testing.T) {
	out, err := json.Marshal(Invitation{PrimaryInvitee: Invitee{ID: "p"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"primaryInvitee": {"id":"p","fname":"","lname":"","rsvp":null,"dietaryRequirements":""},
		"dependents": []
	}`, string(out))
}

func TestInvitation_Invitees(t *testing.T) {
	inv := NewInvitation(Invitee{ID: "p"}, []Invitee{{ID: "c1"}, {ID: "c2"}})

	ids := []string{}
	for _, i := range inv.Invitees() {
		ids = append(ids, i.ID)
	}
	assert.Equal(t, []string{"p", "c1", "c2"}, ids)
	assert.NotNil(t, NewInvitation(Invitee{}, nil).Dependents)
}
