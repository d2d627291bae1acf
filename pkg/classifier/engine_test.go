package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry([]Definition{
		{Name: "bucket1", Known: []string{"IconTag.ba2", "Shared.ba2"}},
		{Name: "bucket2", Known: []string{"Shared.ba2", "UHDmap.ba2"}},
		{Name: "bucket4", Known: []string{"PerkLoadoutManager.ba2"}},
	}, "bucket4", DefaultPlaceLast)
	require.NoError(t, err)
	return reg
}

func TestEngine_Process_KnownAndUnknown(t *testing.T) {
	reg := testRegistry(t)

	stats := New(AcceptAll).Process(reg, []string{"IconTag.ba2", "RandomMod.ba2"})

	assert.Equal(t, Stats{Seen: 2, Eligible: 2}, stats)
	b1, _ := reg.Bucket("bucket1")
	assert.Equal(t, []string{"IconTag.ba2"}, b1.Matched())
	assert.Equal(t, []string{"RandomMod.ba2"}, reg.Default().Matched())
}

func TestEngine_Process_FirstDeclaredBucketWins(t *testing.T) {
	reg := testRegistry(t)

	Classify(reg, []string{"Shared.ba2"}, nil)

	b1, _ := reg.Bucket("bucket1")
	b2, _ := reg.Bucket("bucket2")
	assert.True(t, b1.Has("Shared.ba2"))
	assert.False(t, b2.Has("Shared.ba2"))
	assert.Equal(t, 0, reg.Default().Count())
}

func TestEngine_Process_DefaultBucketKnownMember(t *testing.T) {
	reg := testRegistry(t)

	Classify(reg, []string{"PerkLoadoutManager.ba2"}, AcceptAll)

	assert.Equal(t, []string{"PerkLoadoutManager.ba2"}, reg.Default().Matched())
}

func TestEngine_Process_Predicate(t *testing.T) {
	reg := testRegistry(t)
	filter := DefaultFilter()

	stats := New(filter.Eligible).Process(reg, []string{
		"SeventySixMain.ba2",
		"readme.txt",
		"Loud.BA2",
	})

	assert.Equal(t, Stats{Seen: 3, Eligible: 1, Skipped: 2}, stats)
	assert.Equal(t, 1, reg.Total())
	assert.True(t, reg.Default().Has("Loud.BA2"))
}

func TestEngine_Process_EmptyInput(t *testing.T) {
	reg := testRegistry(t)

	stats := New(nil).Process(reg, nil)

	assert.Equal(t, Stats{}, stats)
	assert.Equal(t, 0, reg.Total())
}

func TestEngine_Process_CoverageAndExclusivity(t *testing.T) {
	reg := MustDefaultRegistry()
	candidates := []string{
		"IconTag.ba2", "PerkLoadoutManager.ba2", "UHDmap.ba2", "ChatMod.ba2",
		"Zeta.ba2", "HUDModLoader.ba2", "Alpha.ba2", "SeventySix - Textures01.ba2",
	}
	filter := DefaultFilter()

	Classify(reg, candidates, filter.Eligible)

	for _, name := range candidates {
		holders := 0
		for _, b := range reg.Buckets() {
			if b.Has(name) {
				holders++
			}
		}
		if filter.Eligible(name) {
			assert.Equal(t, 1, holders, name)
		} else {
			assert.Equal(t, 0, holders, name)
		}
	}
}

func TestEngine_Process_Idempotent(t *testing.T) {
	candidates := []string{"IconTag.ba2", "Shared.ba2", "Other.ba2"}

	once := testRegistry(t)
	Classify(once, candidates, AcceptAll)

	twice := testRegistry(t)
	Classify(twice, candidates, AcceptAll)
	Classify(twice, candidates, AcceptAll)

	assert.Equal(t, once.Counts(), twice.Counts())
	for i, b := range once.Buckets() {
		assert.Equal(t, b.Matched(), twice.Buckets()[i].Matched())
	}
}

func TestRegistry_ResetAndClone(t *testing.T) {
	reg := testRegistry(t)
	Classify(reg, []string{"IconTag.ba2", "X.ba2"}, AcceptAll)
	require.Equal(t, 2, reg.Total())

	clone := reg.Clone()
	assert.Equal(t, 0, clone.Total())
	assert.Equal(t, 2, reg.Total(), "clone must not touch the source")

	Classify(clone, []string{"Y.ba2"}, AcceptAll)
	assert.False(t, reg.Default().Has("Y.ba2"))

	reg.Reset()
	assert.Equal(t, 0, reg.Total())
	assert.Equal(t, 1, clone.Total())
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name        string
		defs        []Definition
		defaultName string
	}{
		{name: "empty", defs: nil, defaultName: "a"},
		{name: "missing default", defs: []Definition{{Name: "a"}}, defaultName: "b"},
		{name: "blank name", defs: []Definition{{Name: " "}}, defaultName: " "},
		{name: "duplicate bucket", defs: []Definition{{Name: "a"}, {Name: "a"}}, defaultName: "a"},
		{name: "duplicate member", defs: []Definition{{Name: "a", Known: []string{"x", "x"}}}, defaultName: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs, tt.defaultName, "")
			assert.Error(t, err)
		})
	}
}

func TestDefaultDefinitions_Shape(t *testing.T) {
	reg := MustDefaultRegistry()

	assert.Len(t, reg.Buckets(), 4)
	assert.Equal(t, DefaultBucket, reg.Default().Name)
	assert.Equal(t, DefaultPlaceLast, reg.PlaceLast())

	Classify(reg, []string{"PerkLoadoutManager.ba2"}, AcceptAll)
	b, ok := reg.Bucket("sResourceArchiveList2")
	require.True(t, ok)
	assert.True(t, b.Has("PerkLoadoutManager.ba2"))
	assert.False(t, reg.Default().Has("PerkLoadoutManager.ba2"))
}

func TestArchiveFilter_Eligible(t *testing.T) {
	tests := []struct {
		name     string
		filter   ArchiveFilter
		input    string
		expected bool
	}{
		{name: "mod archive", filter: DefaultFilter(), input: "IconTag.ba2", expected: true},
		{name: "upper case extension", filter: DefaultFilter(), input: "ICONTAG.BA2", expected: true},
		{name: "official archive", filter: DefaultFilter(), input: "SeventySix - Meshes.ba2", expected: false},
		{name: "prefix is case sensitive", filter: DefaultFilter(), input: "seventysixfan.ba2", expected: true},
		{name: "wrong extension", filter: DefaultFilter(), input: "IconTag.esp", expected: false},
		{name: "extension only in the middle", filter: DefaultFilter(), input: "a.ba2.bak", expected: false},
		{name: "no extension filter", filter: ArchiveFilter{}, input: "anything", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Eligible(tt.input))
		})
	}
}
