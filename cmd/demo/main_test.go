package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"careerai/internal/analyzer"
	apperrors "careerai/internal/errors"
	"careerai/internal/pdftext"
	"careerai/mocks"
)

func noDeadline(ctx context.Context) bool {
	_, ok := ctx.Deadline()
	return !ok
}

func TestRun_CallsWithoutDeadline(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.MatchedBy(noDeadline), mock.Anything).Return("Python.", nil)

	var out bytes.Buffer
	run(context.Background(), analyzer.New(completer, pdftext.NewExtractor(), "minimax/minimax-m2:free", ""), &out, "", "")

	completer.AssertNumberOfCalls(t, "Complete", 4)
	assert.Contains(t, out.String(), "Q: What is artificial intelligence?\nA: Python.\n")
	assert.Contains(t, out.String(), "Q: Why is that better than JavaScript?\nA: Python.\n")
	assert.Contains(t, out.String(), "demo -pdf resume.pdf")
}

func TestRun_PrintsFailures(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", apperrors.NewCompletion("completion endpoint returned status 429", 429, nil))

	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	run(context.Background(), analyzer.New(completer, pdftext.NewExtractor(), "minimax/minimax-m2:free", ""), &out, missing, "")

	assert.Contains(t, out.String(), "A: Error: completion endpoint returned status 429\n")
	assert.Contains(t, out.String(), "Q: Analyze resume "+missing+"\nA: Error: failed to open pdf")
	// the follow-up chat turn is skipped when the first one fails
	assert.Equal(t, 1, strings.Count(out.String(), "I'm learning to code"))
	completer.AssertNumberOfCalls(t, "Complete", 3)
}
