package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubIDListRoundTrip(t *testing.T) {
	list := ClubIDList{"club-1", "club-2"}

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["club-1","club-2"]`, v)

	var scanned ClubIDList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, list, scanned)

	require.NoError(t, scanned.Scan([]byte(`["club-3"]`)))
	assert.Equal(t, ClubIDList{"club-3"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestClubIDListNilValue(t *testing.T) {
	var list ClubIDList
	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestClubIDListContains(t *testing.T) {
	list := ClubIDList{"club-1", "club-2"}
	assert.True(t, list.Contains("club-1"))
	assert.False(t, list.Contains("club-9"))
	assert.False(t, ClubIDList(nil).Contains("club-1"))
}
