package hint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/extract"
)

func TestMerge_NilHint(t *testing.T) {
	slots := extract.Slots{University: extract.Candidate{Value: "FAST", Found: true}}
	assert.Equal(t, slots, Merge(slots, nil))
}

func TestMerge_HintWinsOverExtraction(t *testing.T) {
	slots := extract.Slots{
		University: extract.Candidate{Value: "FAST", Found: true},
		Year:       2024,
	}
	got := Merge(slots, &Hint{University: "COMSATS", Department: "Computer Science"})
	assert.Equal(t, "COMSATS", got.University.Value)
	assert.Equal(t, "Computer Science", got.Department.Value)
	assert.True(t, got.Department.Found)
}

func TestMerge_EmptyHintFieldKeepsExtraction(t *testing.T) {
	slots := extract.Slots{University: extract.Candidate{Value: "FAST", Found: true}}
	got := Merge(slots, &Hint{University: "  "})
	assert.Equal(t, "FAST", got.University.Value)
}

func TestMerge_YearParsedAndMarkedExplicit(t *testing.T) {
	got := Merge(extract.Slots{Year: 2024}, &Hint{Year: "2019"})
	assert.Equal(t, 2019, got.Year)
	assert.True(t, got.YearExplicit)
}

func TestMerge_BadYearDiscarded(t *testing.T) {
	for _, bad := range []string{"next year", "19", "0"} {
		got := Merge(extract.Slots{Year: 2024}, &Hint{Year: flexString(bad)})
		assert.Equal(t, 2024, got.Year, "year %q must be discarded", bad)
		assert.False(t, got.YearExplicit)
	}
}

func TestHint_UnmarshalTolerant(t *testing.T) {
	var h Hint
	err := json.Unmarshal([]byte(`{
		"university": "FAST",
		"campus": null,
		"department": 42,
		"program": ["BS"],
		"year": 2023
	}`), &h)
	require.NoError(t, err)
	assert.Equal(t, "FAST", h.University.trimmed())
	assert.Equal(t, "", h.Campus.trimmed())
	assert.Equal(t, "42", h.Department.trimmed())
	assert.Equal(t, "", h.Program.trimmed(), "arrays are unusable and drop to empty")
	assert.Equal(t, "2023", h.Year.trimmed())
}
