// Package cli runs an interactive quiz session in the terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"lecture-quiz/internal/app"
	"lecture-quiz/internal/config"
	"lecture-quiz/internal/document"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/service"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var newComponents = app.New

// Run parses args, generates a quiz from the given documents and asks each
// question on stdin.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	numQuestions := fs.Int("n", 5, "Number of questions to generate")
	typeFlag := fs.String("type", "", "Question type: multiple_choice (mcq), true_false or short_answer")
	noColor := fs.Bool("no-color", os.Getenv("NO_COLOR") != "", "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: quiz [-n 5] [-type multiple_choice] [-no-color] FILE [FILE...]")
		fmt.Fprintf(stderr, "Question types: %s\n", joinTypes(domain.QuestionTypes()))
		fmt.Fprintf(stderr, "Document formats: %s\n", joinFormats(document.SupportedFormats()))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}

	var qType domain.QuestionType
	if *typeFlag != "" {
		t, err := domain.ParseQuestionType(*typeFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid -type: %v\n", err)
			return ExitUsage
		}
		qType = t
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return ExitError
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	components, err := newComponents(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize: %v\n", err)
		return ExitError
	}
	defer components.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := &session{
		quizzes: components.Quizzes,
		in:      bufio.NewScanner(stdin),
		out:     stdout,
		styles:  newStyles(*noColor),
	}
	if err := s.run(ctx, fs.Args(), *numQuestions, qType); err != nil {
		fmt.Fprintln(stderr, s.styles.errorText.Render(domain.UserMessage(err)))
		return ExitError
	}
	return ExitOK
}

type session struct {
	quizzes service.QuizService
	in      *bufio.Scanner
	out     io.Writer
	styles  styles
}

type tally struct {
	correct, incorrect, ungraded int
}

func (s *session) run(ctx context.Context, paths []string, numQuestions int, qType domain.QuestionType) error {
	fmt.Fprintln(s.out, s.styles.muted.Render(fmt.Sprintf("Generating %d questions from %s ...", numQuestions, strings.Join(paths, ", "))))

	quiz, err := s.quizzes.CreateQuizFromDocuments(ctx, paths, numQuestions, qType)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.styles.title.Render(quiz.Title))

	var t tally
	for i, q := range quiz.Questions {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printQuestion(i, len(quiz.Questions), q)

		answer, ok := s.readAnswer()
		if !ok {
			break
		}
		answer = resolveOptionLabel(q, answer)

		res, err := s.quizzes.CheckAnswer(ctx, quiz.ID, i, answer)
		if err != nil {
			return err
		}
		s.printResult(res)
		switch res.Verdict {
		case domain.VerdictCorrect:
			t.correct++
		case domain.VerdictIncorrect:
			t.incorrect++
		default:
			t.ungraded++
		}
	}

	s.printSummary(t)
	return nil
}

func (s *session) printQuestion(i, total int, q *domain.Question) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.question.Render(fmt.Sprintf("Question %d/%d: %s", i+1, total, q.Text)))
	for j, opt := range displayOptions(q) {
		fmt.Fprintf(s.out, "  %s %s\n", s.styles.label.Render(optionLabel(j)+")"), opt)
	}
	fmt.Fprint(s.out, s.styles.muted.Render("> "))
}

func (s *session) readAnswer() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *session) printResult(res *service.AnswerResult) {
	switch res.Verdict {
	case domain.VerdictCorrect:
		fmt.Fprintln(s.out, s.styles.correct.Render(res.Message))
	case domain.VerdictIncorrect:
		fmt.Fprintln(s.out, s.styles.incorrect.Render(res.Message)+" "+
			s.styles.muted.Render("Answer: "+res.CorrectAnswer))
	default:
		fmt.Fprintln(s.out, s.styles.ungraded.Render(res.Message)+" "+
			s.styles.muted.Render("Expected: "+res.CorrectAnswer))
	}
	if res.Explanation != "" {
		fmt.Fprintln(s.out, s.styles.muted.Render(res.Explanation))
	}
}

func (s *session) printSummary(t tally) {
	graded := t.correct + t.incorrect
	line := fmt.Sprintf("Score: %d/%d", t.correct, graded)
	if t.ungraded > 0 {
		line += fmt.Sprintf(" (%d not auto-graded)", t.ungraded)
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.title.Render(line))
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

// displayOptions returns the choices to show for q. True/false questions
// generated without options still get True and False.
func displayOptions(q *domain.Question) []string {
	if len(q.Options) == 0 && q.Type == domain.TrueFalse {
		return domain.TrueFalseOptions()
	}
	return q.Options
}

// resolveOptionLabel maps an option label such as "b" to the option text,
// unless the answer already matches an option.
func resolveOptionLabel(q *domain.Question, answer string) string {
	options := displayOptions(q)
	trimmed := strings.ToLower(strings.TrimSpace(answer))
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), trimmed) {
			return answer
		}
	}
	for j, opt := range options {
		if optionLabel(j) == trimmed {
			return opt
		}
	}
	return answer
}

func joinTypes(types []domain.QuestionType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func joinFormats(formats []document.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
