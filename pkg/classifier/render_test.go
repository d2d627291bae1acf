package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_KnownThenDefault(t *testing.T) {
	reg := testRegistry(t)
	Classify(reg, []string{"IconTag.ba2", "RandomMod.ba2"}, AcceptAll)

	out := Render(reg)

	assert.Equal(t,
		"[Archive]\r\n"+
			"bucket1 = IconTag.ba2\r\n"+
			"bucket4 = RandomMod.ba2\r\n",
		out)
}

func TestRender_UnknownSortedPlaceLastAtTail(t *testing.T) {
	reg := testRegistry(t)
	Classify(reg, []string{"HUDModLoader.ba2", "Zeta.ba2", "Alpha.ba2"}, AcceptAll)

	lines := Lines(reg)

	require.Len(t, lines, 1)
	assert.Equal(t, "bucket4", lines[0].Key)
	assert.Equal(t, "Alpha.ba2, Zeta.ba2, HUDModLoader.ba2", lines[0].Value)
}

func TestRender_HeaderOnlyWhenNothingEligible(t *testing.T) {
	reg := testRegistry(t)
	Classify(reg, []string{"SeventySixMain.ba2"}, DefaultFilter().Eligible)

	assert.Equal(t, "[Archive]\r\n", Render(reg))
}

func TestRender_EmptyNameIsDropped(t *testing.T) {
	reg := testRegistry(t)
	Classify(reg, []string{"", "A"}, AcceptAll)

	lines := Lines(reg)

	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].Value)
}

func TestRender_KnownOrderAndNoFabricatedEntries(t *testing.T) {
	reg := MustDefaultRegistry()
	Classify(reg, []string{"ShowHealth.ba2", "Alpha.ba2", "ChatMod.ba2"}, AcceptAll)

	lines := Lines(reg)

	require.Len(t, lines, 1)
	assert.Equal(t, DefaultBucket, lines[0].Key)
	// ChatMod идёт раньше ShowHealth в объявленном списке
	assert.Equal(t, "ChatMod.ba2, ShowHealth.ba2, Alpha.ba2", lines[0].Value)
	assert.NotContains(t, lines[0].Value, "PerkLoadoutManager.ba2")
}

func TestRender_DefaultsPrefix(t *testing.T) {
	tests := []struct {
		name       string
		defaults   []string
		candidates []string
		expected   string
	}{
		{
			name:       "empty defaults leave no separator",
			defaults:   nil,
			candidates: []string{"New.ba2"},
			expected:   "New.ba2",
		},
		{
			name:       "blank default is dropped",
			defaults:   []string{""},
			candidates: []string{"New.ba2"},
			expected:   "New.ba2",
		},
		{
			name:       "defaults come first",
			defaults:   []string{"Base.ba2", "Base2.ba2"},
			candidates: []string{"B.ba2", "Known.ba2", "A.ba2"},
			expected:   "Base.ba2, Base2.ba2, Known.ba2, A.ba2, B.ba2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry([]Definition{
				{Name: "list", Known: []string{"Known.ba2"}, Defaults: tt.defaults},
			}, "list", "")
			require.NoError(t, err)
			Classify(reg, tt.candidates, AcceptAll)

			lines := Lines(reg)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.expected, lines[0].Value)
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	candidates := []string{"d.ba2", "IconTag.ba2", "HUDModLoader.ba2", "c.ba2", "UHDmap.ba2", "a.ba2"}

	first := MustDefaultRegistry()
	Classify(first, candidates, AcceptAll)
	second := MustDefaultRegistry()
	Classify(second, []string{"a.ba2", "UHDmap.ba2", "c.ba2", "HUDModLoader.ba2", "IconTag.ba2", "d.ba2"}, AcceptAll)

	assert.Equal(t, Render(first), Render(second))
	for i := 0; i < 10; i++ {
		assert.Equal(t, Render(first), Render(first))
	}
}

func TestAppendTrailing_Verbatim(t *testing.T) {
	reg := testRegistry(t)
	Classify(reg, []string{"IconTag.ba2"}, AcceptAll)
	extra := "[Display]\nfDefaultFOV=90\r\n\ttrailing  "

	out := AppendTrailing(Render(reg), extra)

	assert.Equal(t, "[Archive]\r\nbucket1 = IconTag.ba2\r\n"+extra, out)
}
