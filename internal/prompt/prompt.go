// Package prompt builds the message lists sent to the completion endpoint.
// Every function is pure and returns a freshly allocated slice.
package prompt

import (
	"fmt"

	"careerai/internal/models"
)

const (
	DefaultSystemPrompt  = "You are a helpful assistant."
	DocumentSystemPrompt = "You are an expert document analyst. Analyze the provided document and answer questions accurately."
	ResumeSystemPrompt   = "You are an expert HR recruiter and resume analyst. Provide detailed, constructive feedback."
)

const documentTemplate = "Here is the content from a PDF document:\n\n%s\n\nBased on this content, please answer the following question:\n%s"

const resumeTemplate = `Analyze this resume and provide:
1. Key skills identified
2. Years of experience
3. Education background
4. Strengths
5. Areas for improvement
6. Overall assessment

Resume content:
`

// Ask pairs question with system, or with DefaultSystemPrompt when system is empty.
func Ask(question, system string) []models.Message {
	if system == "" {
		system = DefaultSystemPrompt
	}
	return pair(system, question)
}

func DocumentQA(text, question string) []models.Message {
	return pair(DocumentSystemPrompt, fmt.Sprintf(documentTemplate, text, question))
}

func ResumeAnalysis(text string) []models.Message {
	return pair(ResumeSystemPrompt, resumeTemplate+text)
}

// Single wraps a raw prompt as the only user message.
func Single(content string) []models.Message {
	return []models.Message{{Role: models.RoleUser, Content: content}}
}

func pair(system, user string) []models.Message {
	return []models.Message{
		{Role: models.RoleSystem, Content: system},
		{Role: models.RoleUser, Content: user},
	}
}
