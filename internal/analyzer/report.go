package analyzer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"careerai/internal/models"
)

const (
	maxFeedbackRunes = 200
	maxSuggestions   = 5
)

var (
	atsPattern       = regexp.MustCompile(`(?i)ATS\s+(?:Score|Compatibility)[:\s]+(\d+)`)
	tonePattern      = regexp.MustCompile(`(?i)Tone\s+(?:&|and)?\s*Style[:\s]+(\d+)`)
	contentPattern   = regexp.MustCompile(`(?i)Content[:\s]+(\d+)`)
	structurePattern = regexp.MustCompile(`(?i)Structure[:\s]+(\d+)`)
	skillsPattern    = regexp.MustCompile(`(?i)Skills[:\s]+(\d+)`)
	overallPattern   = regexp.MustCompile(`(?i)Overall\s+Score[:\s]+(\d+)`)

	sectionSplit  = regexp.MustCompile(`\n\d+\.\s+`)
	bulletPattern = regexp.MustCompile(`(?m)^\s*[-•]\s*(.+)`)
)

// ParseReport reads the score header and numbered sections of an ATS review.
func ParseReport(analysis string) *models.Report {
	scores := parseScores(analysis)
	return &models.Report{
		Scores:     scores,
		Categories: parseCategories(analysis, scores),
		Analysis:   analysis,
	}
}

func parseScores(text string) models.ScoreCard {
	s := models.ScoreCard{
		ATS:       firstInt(atsPattern, text),
		ToneStyle: firstInt(tonePattern, text),
		Content:   firstInt(contentPattern, text),
		Structure: firstInt(structurePattern, text),
		Skills:    firstInt(skillsPattern, text),
		Overall:   firstInt(overallPattern, text),
	}

	if s.Overall == 0 {
		sum, n := 0, 0
		for _, v := range []int{s.ATS, s.ToneStyle, s.Content, s.Structure, s.Skills} {
			if v > 0 {
				sum += v
				n++
			}
		}
		if n > 0 {
			s.Overall = int(math.Round(float64(sum) / float64(n)))
		}
	}
	return s
}

func firstInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return v
}

func parseCategories(text string, scores models.ScoreCard) []models.CategoryFeedback {
	var categories []models.CategoryFeedback

	sections := sectionSplit.Split(text, -1)
	for i, section := range sections {
		if i == 0 {
			continue
		}

		lines := strings.Split(strings.TrimSpace(section), "\n")
		name, score := categorize(strings.ToLower(strings.TrimSpace(lines[0])), scores)
		if name == "" {
			continue
		}

		body := strings.Join(lines[1:], "\n")

		suggestions := []string{}
		for _, m := range bulletPattern.FindAllStringSubmatch(body, -1) {
			if cleaned := strings.TrimSpace(m[1]); cleaned != "" {
				suggestions = append(suggestions, cleaned)
			}
			if len(suggestions) == maxSuggestions {
				break
			}
		}

		categories = append(categories, models.CategoryFeedback{
			Category:    name,
			Score:       score,
			Feedback:    truncate(strings.TrimSpace(strings.Join(lines[1:], " ")), maxFeedbackRunes),
			Suggestions: suggestions,
		})
	}

	if len(categories) > 0 {
		return categories
	}

	defaults := []struct {
		name  string
		score int
	}{
		{"ATS Score", scores.ATS},
		{"Tone & Style", scores.ToneStyle},
		{"Content", scores.Content},
		{"Structure", scores.Structure},
		{"Skills", scores.Skills},
	}
	for _, d := range defaults {
		categories = append(categories, models.CategoryFeedback{
			Category:    d.name,
			Score:       d.score,
			Feedback:    "Analysis in progress. Full details available in the complete report.",
			Suggestions: []string{},
		})
	}
	return categories
}

func categorize(title string, scores models.ScoreCard) (string, int) {
	switch {
	case strings.Contains(title, "ats"):
		return "ATS Score", scores.ATS
	case strings.Contains(title, "tone"), strings.Contains(title, "style"):
		return "Tone & Style", scores.ToneStyle
	case strings.Contains(title, "content"):
		return "Content", scores.Content
	case strings.Contains(title, "structure"), strings.Contains(title, "format"):
		return "Structure", scores.Structure
	case strings.Contains(title, "skill"):
		return "Skills", scores.Skills
	default:
		return "", 0
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
