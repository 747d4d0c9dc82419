package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/normalize"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
}

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	cat := catalog.New([]model.Record{
		{University: "FAST", Campus: "Islamabad", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 80},
		{University: "FAST", Campus: "Lahore", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 78},
		{University: "COMSATS", Campus: "Islamabad", Department: "Computer Science", Program: "MS", Year: 2023, MinMerit: 81},
	})
	aliases, err := normalize.LoadAliases()
	require.NoError(t, err)
	return New(cat, aliases, WithClock(fixedClock()))
}

func TestIsPolicyQuestion(t *testing.T) {
	assert.True(t, IsPolicyQuestion("What is the vacant seats policy at FAST?"))
	assert.True(t, IsPolicyQuestion("How many merit lists does COMSATS issue?"))
	assert.False(t, IsPolicyQuestion("What was the merit for CS at FAST in 2023?"))
}

func TestYear_Explicit(t *testing.T) {
	e := testExtractor(t)
	y, explicit := e.Year("merit for 2022 please")
	assert.Equal(t, 2022, y)
	assert.True(t, explicit)
}

func TestYear_LastYear(t *testing.T) {
	e := testExtractor(t)
	y, explicit := e.Year("what was the merit last year")
	assert.Equal(t, 2023, y)
	assert.True(t, explicit)
}

func TestYear_DefaultCurrent(t *testing.T) {
	e := testExtractor(t)
	y, explicit := e.Year("merit for cs at fast")
	assert.Equal(t, 2024, y)
	assert.False(t, explicit)
}

func TestExtract_FullQuestion(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("What was the BS merit for CS at FAST Islamabad in 2023?")

	assert.Equal(t, Candidate{Value: "FAST", Found: true}, s.University)
	assert.Equal(t, Candidate{Value: "Computer Science", Found: true}, s.Department)
	assert.Equal(t, Candidate{Value: "BS", Found: true}, s.Program)
	assert.Equal(t, Candidate{Value: "Islamabad", Found: true}, s.Campus)
	assert.Equal(t, 2023, s.Year)
	assert.True(t, s.YearExplicit)
}

func TestExtract_UniversityFuzzyToken(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("merit at comsat for computing")
	assert.Equal(t, "COMSATS", s.University.Value)
	assert.True(t, s.University.Found)
}

func TestExtract_DepartmentVocabSubstring(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("merit for computing at fast")
	assert.Equal(t, "Computing", s.Department.Value)
}

func TestExtract_ProgramDefaultsToBS(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("merit for computing at fast")
	assert.Equal(t, Candidate{Value: "BS", Found: true}, s.Program)
}

func TestExtract_ProgramAlias(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("mphil merit for computing at fast")
	assert.Equal(t, "MPhil", s.Program.Value)
}

func TestExtract_MultiCampus(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("computing merit at fast islamabad and lahore")
	require.True(t, s.Campus.Found)
	assert.Equal(t, "Islamabad, Lahore", s.Campus.Value)
}

func TestExtract_CampusAliasWholeWordOnly(t *testing.T) {
	e := testExtractor(t)
	// "isb" inside another word must not trigger the alias.
	s := e.Extract("merit at fast for frisbee club")
	assert.False(t, s.Campus.Found)
}

func TestExtract_NothingFound(t *testing.T) {
	e := testExtractor(t)
	s := e.Extract("hello there")
	assert.False(t, s.University.Found)
	assert.False(t, s.Department.Found)
	assert.False(t, s.Campus.Found)
	assert.Equal(t, 2024, s.Year)
}

func TestSlots_Get(t *testing.T) {
	s := Slots{University: Candidate{Value: "FAST", Found: true}}
	assert.Equal(t, Candidate{Value: "FAST", Found: true}, s.Get(model.SlotUniversity))
	assert.Equal(t, Candidate{}, s.Get(model.SlotDepartment))
}
