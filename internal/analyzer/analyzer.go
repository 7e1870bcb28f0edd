package analyzer

import (
	"context"

	"careerai/internal/completion"
	"careerai/internal/models"
	"careerai/internal/prompt"
)

// analysis endpoints run slightly warm
var reviewTemperature = completion.Temperature(0.7)

type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

type TextExtractor interface {
	ExtractFile(path string) (string, error)
	ExtractBytes(data []byte) (string, error)
}

type Analyzer struct {
	completer Completer
	extractor TextExtractor
	model     string
	atsModel  string
}

func New(completer Completer, extractor TextExtractor, model, atsModel string) *Analyzer {
	if atsModel == "" {
		atsModel = model
	}
	return &Analyzer{
		completer: completer,
		extractor: extractor,
		model:     model,
		atsModel:  atsModel,
	}
}

// Ask answers a free-form question. An empty system prompt selects the default one.
func (a *Analyzer) Ask(ctx context.Context, question, systemPrompt string) (string, error) {
	return a.complete(ctx, a.model, prompt.Ask(question, systemPrompt), nil)
}

// AnalyzePDF answers question about the document at path. Extraction
// failures are returned as-is and nothing is sent upstream.
func (a *Analyzer) AnalyzePDF(ctx context.Context, path, question string) (string, error) {
	text, err := a.extractor.ExtractFile(path)
	if err != nil {
		return "", err
	}
	return a.complete(ctx, a.model, prompt.DocumentQA(text, question), nil)
}

func (a *Analyzer) AnalyzeResume(ctx context.Context, path string) (string, error) {
	text, err := a.extractor.ExtractFile(path)
	if err != nil {
		return "", err
	}
	return a.complete(ctx, a.model, prompt.ResumeAnalysis(text), nil)
}

// Chat sends the caller's conversation exactly as given.
func (a *Analyzer) Chat(ctx context.Context, conversation []models.Message) (string, error) {
	return a.complete(ctx, a.model, conversation, nil)
}

// Prompt sends a single raw user prompt. An empty model selects the default.
func (a *Analyzer) Prompt(ctx context.Context, content, model string) (string, error) {
	if model == "" {
		model = a.model
	}
	return a.complete(ctx, model, prompt.Single(content), reviewTemperature)
}

// Scan returns the extracted text of the PDF at path.
func (a *Analyzer) Scan(path string) (string, error) {
	return a.extractor.ExtractFile(path)
}

func (a *Analyzer) ReviewResume(ctx context.Context, path, model, language string) (*models.Report, error) {
	text, err := a.extractor.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return a.ReviewText(ctx, text, model, language)
}

func (a *Analyzer) ReviewDocument(ctx context.Context, data []byte, model, language string) (*models.Report, error) {
	text, err := a.extractor.ExtractBytes(data)
	if err != nil {
		return nil, err
	}
	return a.ReviewText(ctx, text, model, language)
}

// ReviewText runs the ATS review over already extracted resume text and
// parses the scores out of the reply.
func (a *Analyzer) ReviewText(ctx context.Context, text, model, language string) (*models.Report, error) {
	if model == "" {
		model = a.atsModel
	}
	lang := prompt.ParseLanguage(language)

	analysis, err := a.complete(ctx, model, prompt.ATSReview(text, lang), reviewTemperature)
	if err != nil {
		return nil, err
	}

	report := ParseReport(analysis)
	report.ScannedText = text
	report.Model = model
	report.Language = string(lang)
	return report, nil
}

func (a *Analyzer) complete(ctx context.Context, model string, msgs []models.Message, temperature *float32) (string, error) {
	return a.completer.Complete(ctx, completion.Request{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
	})
}
