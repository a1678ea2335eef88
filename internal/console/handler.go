package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/interviewer"
	"excel-interviewer/internal/storage"
)

const helpText = `Commands:
/help    - show this message
/status  - show progress of the current interview
/skip    - move to the next unanswered question
/reset   - discard all answers and start over
/finish  - show the final report (can be used at any time)
/quit    - exit

Text questions: type your answer on one line.
Excel questions: enter the path to an .xlsx file (max %d MiB).`

// Options настраивает консольный интерфейс
type Options struct {
	NoColor    bool
	ResultsDir string
}

// Handler проводит интервью в терминале: показывает вопросы, принимает
// ответы и команды, выводит итоговый отчет
type Handler struct {
	in      *bufio.Scanner
	out     io.Writer
	svc     *interviewer.Service
	catalog *config.Catalog
	session *interviewer.Session
	opts    Options
	logger  *slog.Logger

	// cursor указывает на текущий вопрос, -1 когда все вопросы отвечены
	cursor int
}

func NewHandler(in io.Reader, out io.Writer, svc *interviewer.Service, catalog *config.Catalog, opts Options, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Handler{
		in:      scanner,
		out:     out,
		svc:     svc,
		catalog: catalog,
		opts:    opts,
		logger:  logger,
	}
}

// Session возвращает текущую сессию
func (h *Handler) Session() *interviewer.Session {
	return h.session
}

// Run запускает цикл интервью до команды /quit, конца ввода или отмены контекста
func (h *Handler) Run(ctx context.Context) error {
	h.session = h.svc.NewSession(h.catalog)
	h.cursor = 0
	h.printWelcome()

	if len(h.session.Tasks) == 0 {
		h.println("The task catalog has no questions with a supported type.")
		return nil
	}

	h.advance(0)
	h.promptCurrent()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := h.readLines(ctx)
	for {
		var text string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := *readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			text = strings.TrimSpace(line)
		}

		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if quit := h.handleCommand(text); quit {
				return nil
			}
		} else {
			h.handleUserInput(ctx, text)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		h.promptCurrent()
	}
}

// readLines читает ввод в отдельной горутине, чтобы Run не блокировался
// на чтении при отмене контекста. Ошибка чтения доступна после закрытия канала.
func (h *Handler) readLines(ctx context.Context) (<-chan string, *error) {
	lines := make(chan string)
	var readErr error
	go func() {
		defer close(lines)
		for h.in.Scan() {
			select {
			case lines <- h.in.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr = h.in.Err()
	}()
	return lines, &readErr
}

// handleCommand обрабатывает команды; возвращает true для выхода
func (h *Handler) handleCommand(command string) bool {
	switch strings.ToLower(strings.Fields(command)[0]) {
	case "/help":
		h.println(fmt.Sprintf(helpText, h.svc.MaxUploadBytes()>>20))
	case "/status":
		h.println(RenderStatus(h.session, h.svc.Metrics(), h.opts.NoColor))
	case "/skip":
		if h.cursor < 0 {
			h.println("All questions are answered.")
			return false
		}
		h.advance(h.cursor + 1)
	case "/reset", "/restart":
		h.svc.Reset(h.session)
		h.println("🔄 Interview reset. All answers were discarded.")
		h.advance(0)
	case "/finish":
		h.handleFinish()
	case "/quit", "/stop", "/exit":
		h.println("Bye!")
		return true
	default:
		h.println("Unknown command. Use /help to see the list of commands.")
	}
	return false
}

func (h *Handler) handleFinish() {
	report := h.svc.Finish(h.session)
	h.println(RenderReport(report, h.opts.NoColor))

	if h.opts.ResultsDir == "" {
		return
	}
	path, err := storage.SaveReport(h.opts.ResultsDir, report)
	if err != nil {
		h.logger.Error("failed to export report", "error", err)
		h.println("⚠️ Could not save the report: " + err.Error())
		return
	}
	h.println("💾 Report saved to " + path)
}

// handleUserInput обрабатывает ответ на текущий вопрос
func (h *Handler) handleUserInput(ctx context.Context, text string) {
	if h.cursor < 0 {
		h.println("All questions are answered. Use /finish for the report or /reset to start over.")
		return
	}

	index := h.cursor
	task := h.session.Tasks[index]

	var (
		outcome interviewer.Outcome
		err     error
	)
	switch task.Type {
	case config.TaskTypeExcel:
		outcome, err = h.submitFile(index, text)
	default:
		h.println("⏳ Evaluating...")
		outcome, err = h.svc.SubmitText(ctx, h.session, index, text)
	}

	if err != nil {
		h.println(describeError(err))
		return
	}

	h.println(RenderOutcome(outcome, h.opts.NoColor))
	h.advance(index + 1)
}

func (h *Handler) submitFile(index int, path string) (interviewer.Outcome, error) {
	path = strings.Trim(path, `"'`)
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return interviewer.Outcome{}, errNotXLSX
	}

	f, err := os.Open(path)
	if err != nil {
		return interviewer.Outcome{}, fmt.Errorf("%w: %v", errCannotOpen, err)
	}
	defer f.Close()

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	return h.svc.SubmitExcel(h.session, index, f, size)
}

var (
	errNotXLSX    = errors.New("only .xlsx files are accepted")
	errCannotOpen = errors.New("cannot open file")
)

func describeError(err error) string {
	switch {
	case errors.Is(err, interviewer.ErrEmptyAnswer):
		return "Please provide an answer."
	case errors.Is(err, interviewer.ErrFileTooLarge):
		return "❌ " + err.Error() + ". Please upload a smaller file."
	case errors.Is(err, interviewer.ErrScoringFailed):
		return "❌ Something went wrong while scoring your answer. Please try again."
	default:
		return "❌ " + err.Error()
	}
}

// advance переводит курсор на первый вопрос без ответа начиная с from,
// при необходимости с переходом в начало списка
func (h *Handler) advance(from int) {
	total := len(h.session.Tasks)
	for k := 0; k < total; k++ {
		i := (from + k) % total
		if h.session.State(i) == interviewer.StateUnanswered {
			h.cursor = i
			return
		}
	}
	h.cursor = -1
}

func (h *Handler) promptCurrent() {
	if h.cursor < 0 {
		h.println("✅ All questions answered. Use /finish for the final report, /reset to start over or /quit to exit.")
		return
	}
	h.println("")
	h.println(RenderQuestion(h.cursor, len(h.session.Tasks), h.session.Tasks[h.cursor], h.opts.NoColor))
}

func (h *Handler) printWelcome() {
	h.println(stylize("AI-Powered Excel Mock Interviewer", h.opts.NoColor, titleColor))
	h.println(fmt.Sprintf(`Welcome! I will act as your Excel interviewer. You'll be asked %d questions
about Excel concepts and practical tasks. At the end, you'll get a performance summary.
Type /help for the list of commands.`, len(h.session.Tasks)))
}

func (h *Handler) println(text string) {
	fmt.Fprintln(h.out, text)
}
