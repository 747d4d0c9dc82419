package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	cat := catalog.New([]model.Record{
		{University: "FAST", Campus: "Islamabad", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 80},
		{University: "FAST", Campus: "Lahore", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 78},
		{University: "COMSATS", Campus: "Islamabad", Department: "Computer Science", Program: "BS", Year: 2023, MinMerit: 81},
		{University: "COMSATS", Campus: "Lahore", Department: "Electrical", Program: "MS", Year: 2023, MinMerit: 70},
	})
	n, err := New(cat)
	require.NoError(t, err)
	return n
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("FAST", "fast"))
}

func TestFuzzyPick_BelowCutoff(t *testing.T) {
	_, ok := FuzzyPick("zzzzz", []string{"Computing"}, 0.83)
	assert.False(t, ok)
}

func TestFuzzyPick_TieKeepsFirst(t *testing.T) {
	// Both entries are one edit away; the first stays selected.
	v, ok := FuzzyPick("computind", []string{"Computing", "Computink"}, 0.80)
	require.True(t, ok)
	assert.Equal(t, "Computing", v)
}

func TestAliasKey_SeparatorsBecomeSpaces(t *testing.T) {
	assert.Equal(t, "comp science", AliasKey("comp-science"))
	assert.Equal(t, "comp science", AliasKey("Comp_Science"))
	assert.Equal(t, "comp science", AliasKey("  comp -  science "))
	// Single-token keys with periods stay intact.
	assert.Equal(t, "c.s", AliasKey("C.S"))
}

func TestFuzzyPick_CutoffMonotonic(t *testing.T) {
	// Raising the cutoff can only withdraw matches, never admit new ones.
	vocabulary := []string{"Computing"}
	accepted := true
	for _, cutoff := range []float64{0.70, 0.78, 0.83, 0.90, 0.95} {
		_, ok := FuzzyPick("computng", vocabulary, cutoff)
		if ok {
			assert.True(t, accepted, "match reappeared at cutoff %v", cutoff)
		}
		accepted = ok
	}
	// The typo sits at similarity 8/9, inside the sweep's range.
	_, ok := FuzzyPick("computng", vocabulary, 0.83)
	assert.True(t, ok)
	_, ok = FuzzyPick("computng", vocabulary, 0.90)
	assert.False(t, ok)
}

func TestDepartment_AliasBeatsFuzzy(t *testing.T) {
	n := testNormalizer(t)
	r := n.Department("cs")
	assert.True(t, r.Canonical)
	assert.Equal(t, "Computer Science", r.Value)
}

func TestDepartment_AliasKeyInsensitiveToPunctuation(t *testing.T) {
	n := testNormalizer(t)
	assert.Equal(t, "Computer Science", n.Department("C.S").Value)
	assert.Equal(t, "Computer Science", n.Department("comp-science").Value)
}

func TestDepartment_ExactCaseInsensitive(t *testing.T) {
	n := testNormalizer(t)
	r := n.Department("COMPUTING")
	assert.True(t, r.Canonical)
	assert.Equal(t, "Computing", r.Value)
}

func TestDepartment_FuzzyTypo(t *testing.T) {
	n := testNormalizer(t)
	r := n.Department("computng")
	assert.True(t, r.Canonical)
	assert.Equal(t, "Computing", r.Value)
}

func TestDepartment_PassthroughBelowCutoff(t *testing.T) {
	n := testNormalizer(t)
	r := n.Department("astrology")
	assert.False(t, r.Canonical)
	assert.Equal(t, "astrology", r.Value)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := testNormalizer(t)
	for _, raw := range []string{"cs", "computng", "COMPUTING", "astrology"} {
		once := n.Department(raw)
		twice := n.Department(once.Value)
		assert.Equal(t, once.Value, twice.Value, "normalizing %q twice must be stable", raw)
	}
}

func TestProgram_Aliases(t *testing.T) {
	n := testNormalizer(t)
	assert.Equal(t, "BS", n.Program("bachelors").Value)
	assert.Equal(t, "MS", n.Program("msc").Value)
	assert.Equal(t, "PhD", n.Program("doctorate").Value)
}

func TestProgram_StrictCutoff(t *testing.T) {
	n := testNormalizer(t)
	// "BA" is close to "BS" but must not fuzzy-match at the program cutoff.
	r := n.Program("BA")
	assert.False(t, r.Canonical)
	assert.Equal(t, "BA", r.Value)
}

func TestUniversity_Fuzzy(t *testing.T) {
	n := testNormalizer(t)
	r := n.University("COMSATs")
	assert.True(t, r.Canonical)
	assert.Equal(t, "COMSATS", r.Value)
}

func TestCampus_SingleAlias(t *testing.T) {
	n := testNormalizer(t)
	r := n.Campus("isb")
	assert.True(t, r.Canonical)
	assert.Equal(t, "Islamabad", r.Value)
}

func TestCampus_MultiSeparators(t *testing.T) {
	n := testNormalizer(t)
	for _, raw := range []string{
		"Islamabad, Lahore",
		"Islamabad and Lahore",
		"Islamabad & Lahore",
		"isb, lhr",
	} {
		r := n.Campus(raw)
		assert.Equal(t, "Islamabad, Lahore", r.Value, "input %q", raw)
		assert.True(t, r.Canonical, "input %q", raw)
	}
}

func TestCampus_DedupeFirstSeenOrder(t *testing.T) {
	n := testNormalizer(t)
	r := n.Campus("Lahore, isb, LAHORE")
	assert.Equal(t, "Lahore, Islamabad", r.Value)
}

func TestCampus_MultiIdempotent(t *testing.T) {
	n := testNormalizer(t)
	once := n.Campus("isb and lhr")
	twice := n.Campus(once.Value)
	assert.Equal(t, once.Value, twice.Value)
}

func TestCampus_PartialPassthrough(t *testing.T) {
	n := testNormalizer(t)
	r := n.Campus("Islamabad and Atlantis")
	assert.Equal(t, "Islamabad, Atlantis", r.Value)
	assert.False(t, r.Canonical)
}

func TestSlot_Dispatch(t *testing.T) {
	n := testNormalizer(t)
	assert.Equal(t, "FAST", n.Slot(model.SlotUniversity, "fast").Value)
	assert.Equal(t, "Computing", n.Slot(model.SlotDepartment, "computing").Value)
	assert.Equal(t, "BS", n.Slot(model.SlotProgram, "bs").Value)
	assert.Equal(t, "Lahore", n.Slot(model.SlotCampus, "lhr").Value)
}

func TestAdjustDepartment_UmbrellaRemap(t *testing.T) {
	n := testNormalizer(t)
	// FAST has no "Computer Science" department, only "Computing".
	assert.Equal(t, "Computing", n.AdjustDepartment("FAST", "Computer Science"))
	assert.Equal(t, "Computing", n.AdjustDepartment("FAST", "Software Engineering"))
}

func TestAdjustDepartment_LiteralKept(t *testing.T) {
	n := testNormalizer(t)
	// COMSATS reports "Computer Science" itself, so no remap.
	assert.Equal(t, "Computer Science", n.AdjustDepartment("COMSATS", "Computer Science"))
}

func TestAdjustDepartment_NonUmbrellaUntouched(t *testing.T) {
	n := testNormalizer(t)
	assert.Equal(t, "Electrical", n.AdjustDepartment("FAST", "Electrical"))
	assert.Equal(t, "", n.AdjustDepartment("FAST", ""))
}

func TestLoadAliases(t *testing.T) {
	a, err := LoadAliases()
	require.NoError(t, err)
	v, ok := a.Department.Lookup("CS")
	require.True(t, ok)
	assert.Equal(t, "Computer Science", v)
}
