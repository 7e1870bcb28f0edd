package prompt

import (
	"strings"

	"careerai/internal/models"
)

type Language string

const (
	English Language = "english"
	French  Language = "french"
)

// ParseLanguage maps free-form input to a supported language, defaulting to English.
func ParseLanguage(s string) Language {
	if Language(strings.ToLower(strings.TrimSpace(s))) == French {
		return French
	}
	return English
}

const atsEnglish = `You are an expert resume reviewer and ATS optimization specialist.
Analyze the following resume text and evaluate it as if it were being screened by an Applicant Tracking System (ATS).

IMPORTANT: Start your response with these exact scores on separate lines:
ATS Score: [0-100]
Tone & Style: [0-100]
Content: [0-100]
Structure: [0-100]
Skills: [0-100]
Overall Score: [0-100]

Then provide detailed analysis:
1. ATS Score - Identify missing or weak sections (summary, experience, skills, education, etc.).
2. Tone & Style - Evaluate professional language, readability, and tone.
3. Content - Assess relevance and quality of information provided.
4. Structure - Analyze formatting, organization, and visual hierarchy.
5. Skills - Review technical and soft skills presentation.
6. Suggest concrete improvements for structure, content, and keyword optimization.
7. Rewrite weak parts of the resume in a professional tone when necessary.

Resume text:
`

const atsFrench = `Vous êtes un expert en révision de CV et spécialiste de l'optimisation ATS (Applicant Tracking System).
Analysez le texte du CV suivant et évaluez-le comme s'il était examiné par un système de suivi des candidatures (ATS).

IMPORTANT : Commencez votre réponse avec ces scores exacts sur des lignes séparées :
ATS Score: [0-100]
Tone & Style: [0-100]
Content: [0-100]
Structure: [0-100]
Skills: [0-100]
Overall Score: [0-100]

Ensuite, fournissez une analyse détaillée :
1. ATS Score - Identifier les sections manquantes ou faibles (résumé, expérience, compétences, formation, etc.).
2. Tone & Style - Évaluer le langage professionnel, la lisibilité et le ton.
3. Content - Évaluer la pertinence et la qualité des informations fournies.
4. Structure - Analyser le formatage, l'organisation et la hiérarchie visuelle.
5. Skills - Examiner la présentation des compétences techniques et relationnelles.
6. Suggérer des améliorations concrètes pour la structure, le contenu et l'optimisation des mots-clés.
7. Réécrire les parties faibles du CV dans un ton professionnel si nécessaire.

Texte du CV :
`

// ATSReview asks for the score header followed by a seven point review.
func ATSReview(text string, lang Language) []models.Message {
	template := atsEnglish
	if lang == French {
		template = atsFrench
	}
	return Single(template + text)
}
