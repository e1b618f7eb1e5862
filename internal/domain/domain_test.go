package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualEmailFoldsCase(t *testing.T) {
	assert.True(t, EqualEmail("A@X.com", "a@x.COM"))
	assert.True(t, EqualEmail(" bob@y.com", "BOB@Y.COM "))
	assert.False(t, EqualEmail("a@x.com", "b@x.com"))
}

func TestMessageBetweenIsCaseInsensitive(t *testing.T) {
	m := Message{Sender: "A@X.com", Recipient: "b@y.com"}
	assert.True(t, m.Between("a@x.com", "B@Y.com"))
	assert.True(t, m.Between("B@Y.com", "a@x.com"))
	assert.False(t, m.Between("a@x.com", "c@z.com"))
}

func TestFlexTimeParsesBothWireForms(t *testing.T) {
	var fromArray, fromString FlexTime

	require.NoError(t, json.Unmarshal([]byte(`[2025, 3, 14, 9, 26, 53]`), &fromArray))
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14T09:26:53"`), &fromString))

	assert.Equal(t, fromString.Time, fromArray.Time)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local), fromArray.Time)
	assert.Equal(t, "09:26", fromArray.Clock())
}

func TestFlexTimeParsesShortArray(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`[2025, 3, 14, 9, 26]`), &ft))
	assert.Equal(t, time.Date(2025, 3, 14, 9, 26, 0, 0, time.Local), ft.Time)
}

func TestFlexTimeParsesRFC3339(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14T09:26:53.120Z"`), &ft))
	assert.Equal(t, 2025, ft.Year())
	assert.False(t, ft.IsZero())
}

func TestFlexTimeRejectsGarbage(t *testing.T) {
	var ft FlexTime
	assert.Error(t, json.Unmarshal([]byte(`"not a time"`), &ft))
	assert.Error(t, json.Unmarshal([]byte(`[2025, 3]`), &ft))
}

func TestFlexTimeMarshalRoundTrip(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`[2025, 3, 14, 9, 26, 53]`), &ft))

	data, err := json.Marshal(ft)
	require.NoError(t, err)

	var back FlexTime
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, ft.Equal(back.Time))
}

func TestActionTransitionTable(t *testing.T) {
	assert.True(t, ActionOffer.AllowedFrom(StatusOpen))
	assert.True(t, ActionAccept.AllowedFrom(StatusPendingApproval))
	assert.True(t, ActionReject.AllowedFrom(StatusPendingApproval))
	assert.True(t, ActionComplete.AllowedFrom(StatusInProgress))
	assert.True(t, ActionReopen.AllowedFrom(StatusInProgress))

	// Completed requests accept no further transitions.
	for _, a := range []Action{ActionOffer, ActionAccept, ActionReject, ActionComplete, ActionReopen} {
		assert.False(t, a.AllowedFrom(StatusCompleted), string(a))
	}

	assert.False(t, ActionOffer.AllowedFrom(StatusInProgress))
	assert.False(t, Action("burninate").Valid())
	assert.True(t, ActionComplete.Valid())
}

func TestRequestOwnedBy(t *testing.T) {
	r := Request{Requester: &Identity{Email: "Owner@X.com", Name: "Owner"}}
	assert.True(t, r.OwnedBy("owner@x.com"))
	assert.False(t, r.OwnedBy("other@x.com"))

	orphan := Request{}
	assert.False(t, orphan.OwnedBy("owner@x.com"))
}

func TestResourceOwnerGuard(t *testing.T) {
	withOwner := Resource{OwnerEmail: "seller@x.com", OwnerName: "Seller"}
	id, ok := withOwner.Owner()
	require.True(t, ok)
	assert.Equal(t, "seller@x.com", id.Email)

	_, ok = (&Resource{}).Owner()
	assert.False(t, ok)
}
