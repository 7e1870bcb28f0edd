package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"careerai/internal/analyzer"
	"careerai/internal/config"
	"careerai/internal/models"
	"careerai/internal/pdftext"
	"careerai/internal/provider"
)

func main() {
	pdfPath := flag.String("pdf", "", "path to a PDF to analyze")
	question := flag.String("question", "", "question to ask about the PDF; without it the PDF is analyzed as a resume")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	completer, err := provider.New(ctx, cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := analyzer.New(completer, pdftext.NewExtractor(), cfg.Model, cfg.ATSModel)
	run(ctx, a, os.Stdout, *pdfPath, *question)
}

func run(ctx context.Context, a *analyzer.Analyzer, w io.Writer, pdfPath, question string) {
	fmt.Fprintln(w, "=== Example 1: Simple question ===")
	q := "What is artificial intelligence?"
	answer, err := a.Ask(ctx, q, "")
	printAnswer(w, q, answer, err)

	fmt.Fprintln(w, "\n=== Example 2: Custom system prompt ===")
	q = "Explain Python in one sentence"
	answer, err = a.Ask(ctx, q, "You are a programming expert who explains things concisely.")
	printAnswer(w, q, answer, err)

	fmt.Fprintln(w, "\n=== Example 3: Multi-turn conversation ===")
	var conversation models.Conversation
	conversation = conversation.Append(models.RoleUser, "I'm learning to code. What language should I start with?")

	reply, err := a.Chat(ctx, conversation)
	printAnswer(w, conversation[0].Content, reply, err)
	if err == nil {
		conversation = conversation.Append(models.RoleAssistant, reply)
		conversation = conversation.Append(models.RoleUser, "Why is that better than JavaScript?")
		reply, err = a.Chat(ctx, conversation)
		printAnswer(w, conversation[len(conversation)-1].Content, reply, err)
	}

	fmt.Fprintln(w, "\n=== Example 4: PDF analysis ===")
	if pdfPath == "" {
		fmt.Fprintln(w, "To analyze a PDF, pass its path:")
		fmt.Fprintln(w, "  demo -pdf resume.pdf")
		fmt.Fprintln(w, "  demo -pdf document.pdf -question \"What are the main points?\"")
		return
	}

	if question != "" {
		answer, err = a.AnalyzePDF(ctx, pdfPath, question)
		printAnswer(w, question, answer, err)
		return
	}
	answer, err = a.AnalyzeResume(ctx, pdfPath)
	printAnswer(w, "Analyze resume "+pdfPath, answer, err)
}

func printAnswer(w io.Writer, question, answer string, err error) {
	fmt.Fprintf(w, "Q: %s\n", question)
	if err != nil {
		fmt.Fprintf(w, "A: Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "A: %s\n", answer)
}
