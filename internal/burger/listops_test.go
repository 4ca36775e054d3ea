package burger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Burger {
	return []Burger{
		{Restaurant: "A", Location: "L1", BurgerType: "normal", Rating: 3, Date: "2024-01-10"},
		{Restaurant: "B", Location: "L2", BurgerType: "Smash", Rating: 5, Date: "2024-03-02"},
		{Restaurant: "C", Location: "L2", BurgerType: "normal", Rating: 4, Date: "2023-12-24"},
		{Restaurant: "D", Location: "L3", BurgerType: "smash", Rating: 1, Date: "what even is this"},
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("location exact match", func(t *testing.T) {
		t.Parallel()

		got := Filter(sample(), "L2", "")
		require.Len(t, got, 2)
		assert.Equal(t, "B", got[0].Restaurant)
		assert.Equal(t, "C", got[1].Restaurant)
	})

	t.Run("type case insensitive", func(t *testing.T) {
		t.Parallel()

		got := Filter(sample(), "", "SMASH")
		require.Len(t, got, 2)
		assert.Equal(t, "B", got[0].Restaurant)
		assert.Equal(t, "D", got[1].Restaurant)
	})

	t.Run("intersection independent of order", func(t *testing.T) {
		t.Parallel()

		both := Filter(sample(), "L2", "smash")
		locFirst := Filter(Filter(sample(), "L2", ""), "", "smash")
		typeFirst := Filter(Filter(sample(), "", "smash"), "L2", "")
		assert.Equal(t, both, locFirst)
		assert.Equal(t, both, typeFirst)
		require.Len(t, both, 1)
		assert.Equal(t, "B", both[0].Restaurant)
	})

	t.Run("empty filters keep everything", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, Filter(sample(), "", ""), 4)
	})

	t.Run("single record example", func(t *testing.T) {
		t.Parallel()

		in := []Burger{
			{Restaurant: "A", Rating: 3, Location: "L1"},
			{Restaurant: "B", Rating: 5, Location: "L2"},
		}
		got := Filter(in, "L2", "")
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].Restaurant)
	})
}

func TestSort(t *testing.T) {
	t.Parallel()

	t.Run("rating desc then asc is reversed", func(t *testing.T) {
		t.Parallel()

		desc := sample()
		Sort(desc, FieldRating, Desc)
		asc := sample()
		Sort(asc, FieldRating, Asc)

		require.Len(t, desc, len(asc))
		for i := range desc {
			assert.Equal(t, desc[i].Restaurant, asc[len(asc)-1-i].Restaurant)
		}
		assert.Equal(t, "B", desc[0].Restaurant)
		assert.Equal(t, "D", desc[3].Restaurant)
	})

	t.Run("location asc", func(t *testing.T) {
		t.Parallel()

		got := sample()
		Sort(got, FieldLocation, Asc)
		assert.Equal(t, "L1", got[0].Location)
		assert.Equal(t, "L3", got[3].Location)
	})

	t.Run("unparsable dates sort as epoch zero", func(t *testing.T) {
		t.Parallel()

		got := sample()
		Sort(got, FieldDate, Asc)
		assert.Equal(t, "D", got[0].Restaurant)
		Sort(got, FieldDate, Desc)
		assert.Equal(t, "B", got[0].Restaurant)
		assert.Equal(t, "D", got[3].Restaurant)
	})
}

func TestToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cur      Field
		curDir   Direction
		clicked  Field
		wantF    Field
		wantDir  Direction
	}{
		{name: "same field flips desc to asc", cur: FieldRating, curDir: Desc, clicked: FieldRating, wantF: FieldRating, wantDir: Asc},
		{name: "same field flips asc to desc", cur: FieldLocation, curDir: Asc, clicked: FieldLocation, wantF: FieldLocation, wantDir: Desc},
		{name: "new numeric field defaults desc", cur: FieldLocation, curDir: Asc, clicked: FieldRating, wantF: FieldRating, wantDir: Desc},
		{name: "new date field defaults desc", cur: FieldRating, curDir: Asc, clicked: FieldDate, wantF: FieldDate, wantDir: Desc},
		{name: "new string field defaults asc", cur: FieldRating, curDir: Desc, clicked: FieldRestaurant, wantF: FieldRestaurant, wantDir: Asc},
		{name: "no active sort", cur: "", curDir: "", clicked: FieldLocation, wantF: FieldLocation, wantDir: Asc},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, d := Toggle(tt.cur, tt.curDir, tt.clicked)
			assert.Equal(t, tt.wantF, f)
			assert.Equal(t, tt.wantDir, d)
		})
	}
}

func TestParseField(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"rating", "location", "restaurant", "date"} {
		f, ok := ParseField(valid)
		assert.True(t, ok)
		assert.Equal(t, Field(valid), f)
	}
	_, ok := ParseField("price")
	assert.False(t, ok)
	_, ok = ParseField("")
	assert.False(t, ok)
}

func TestLocations(t *testing.T) {
	t.Parallel()

	in := append(sample(), Burger{Restaurant: "E", Location: "L1"}, Burger{Restaurant: "F"})
	assert.Equal(t, []string{"L1", "L2", "L3"}, Locations(in))
}
