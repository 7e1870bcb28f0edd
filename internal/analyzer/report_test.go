package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReview = `ATS Score: 78
Tone & Style: 85
Content: 70
Structure: 65
Skills: 90
Overall Score: 80

Then the detailed review.
1. ATS Score - Missing summary section
The resume lacks a professional summary.
- Add a three line summary
- Mention target role
2. Tone & Style - Mostly professional
Language is clear.
3. Content - Relevant experience
4. Structure - Formatting is dense
- Use more whitespace
5. Skills - Strong technical list
6. Suggest concrete improvements for keyword optimization
7. Closing remarks`

func TestParseReport_Scores(t *testing.T) {
	r := ParseReport(sampleReview)

	assert.Equal(t, 78, r.Scores.ATS)
	assert.Equal(t, 85, r.Scores.ToneStyle)
	assert.Equal(t, 70, r.Scores.Content)
	assert.Equal(t, 65, r.Scores.Structure)
	assert.Equal(t, 90, r.Scores.Skills)
	assert.Equal(t, 80, r.Scores.Overall)
	assert.Equal(t, sampleReview, r.Analysis)
}

func TestParseReport_Categories(t *testing.T) {
	r := ParseReport(sampleReview)

	require.Len(t, r.Categories, 5)
	assert.Equal(t, "ATS Score", r.Categories[0].Category)
	assert.Equal(t, 78, r.Categories[0].Score)
	assert.Equal(t, "The resume lacks a professional summary. - Add a three line summary - Mention target role", r.Categories[0].Feedback)
	assert.Equal(t, []string{"Add a three line summary", "Mention target role"}, r.Categories[0].Suggestions)
	assert.Equal(t, "Tone & Style", r.Categories[1].Category)
	assert.Equal(t, "Structure", r.Categories[3].Category)
	assert.Equal(t, []string{"Use more whitespace"}, r.Categories[3].Suggestions)
	assert.Equal(t, "Skills", r.Categories[4].Category)
}

func TestParseReport_OverallFallsBackToMean(t *testing.T) {
	r := ParseReport("ATS Compatibility: 70\nTone and Style: 81\nSkills: 0")

	assert.Equal(t, 70, r.Scores.ATS)
	assert.Equal(t, 81, r.Scores.ToneStyle)
	assert.Equal(t, 76, r.Scores.Overall)
}

func TestParseReport_DefaultCategories(t *testing.T) {
	r := ParseReport("No structured output here.")

	require.Len(t, r.Categories, 5)
	for _, c := range r.Categories {
		assert.Zero(t, c.Score)
		assert.NotEmpty(t, c.Feedback)
		assert.NotNil(t, c.Suggestions)
	}
	assert.Equal(t, 0, r.Scores.Overall)
}

func TestParseReport_LimitsFeedbackAndSuggestions(t *testing.T) {
	var b strings.Builder
	b.WriteString("Intro\n1. Skills - many\n")
	b.WriteString(strings.Repeat("é", 300))
	for i := 0; i < 8; i++ {
		b.WriteString("\n- tip")
	}

	r := ParseReport(b.String())

	require.Len(t, r.Categories, 1)
	assert.Len(t, []rune(r.Categories[0].Feedback), maxFeedbackRunes)
	assert.Len(t, r.Categories[0].Suggestions, maxSuggestions)
}
