package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/engine"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Decision is the user's answer to a category prompt.
type Decision struct {
	CategoryID    int64
	WasCorrection bool
	Skipped       bool
}

// Prompter asks the user to confirm or pick a category for one scored
// transaction.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompter creates a prompter reading from r and writing to w. Nil
// arguments default to stdin and stdout.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Prompter{reader: bufio.NewReader(r), writer: w}
}

// Decide shows the transaction and its ranked suggestions, then reads the
// user's choice. The returned decision marks a correction whenever the
// chosen category differs from the engine's recommendation.
func (p *Prompter) Decide(ctx context.Context, txn *model.ParsedTransaction, scoring *engine.Result, categories []model.Category) (Decision, error) {
	fmt.Fprintln(p.writer, RenderBox("Transaction", p.formatTransaction(txn)))

	if len(scoring.Suggestions) > 0 {
		fmt.Fprintln(p.writer, InfoStyle.Render("Suggested categories:"))
		for i, s := range scoring.Suggestions {
			marker := " "
			if scoring.CategoryID != nil && s.CategoryID == *scoring.CategoryID {
				marker = SuccessStyle.Render("*")
			}
			fmt.Fprintf(p.writer, " %s[%d] %s (%.0f%%) %s\n",
				marker, i+1, s.CategoryName, s.Confidence*100,
				SubtleStyle.Render(s.Reason))
		}
	} else {
		fmt.Fprintln(p.writer, SubtleStyle.Render(scoring.Reason))
	}
	fmt.Fprintln(p.writer, "  [o] other category  [s] skip")

	for {
		fmt.Fprint(p.writer, "> ")
		line, err := p.readLine(ctx)
		if err != nil {
			return Decision{}, err
		}

		switch strings.ToLower(line) {
		case "s":
			return Decision{Skipped: true}, nil
		case "o":
			return p.pickFromList(ctx, scoring, categories)
		default:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(scoring.Suggestions) {
				fmt.Fprintln(p.writer, WarningStyle.Render("Enter a suggestion number, 'o', or 's'."))
				continue
			}
			chosen := scoring.Suggestions[n-1]
			return Decision{
				CategoryID:    chosen.CategoryID,
				WasCorrection: isCorrection(scoring, chosen.CategoryID),
			}, nil
		}
	}
}

// pickFromList shows the user's full category list filtered to the
// transaction direction and reads an index.
func (p *Prompter) pickFromList(ctx context.Context, scoring *engine.Result, categories []model.Category) (Decision, error) {
	if len(categories) == 0 {
		return Decision{}, fmt.Errorf("no categories defined")
	}

	fmt.Fprintln(p.writer, InfoStyle.Render("All categories:"))
	for i, c := range categories {
		fmt.Fprintf(p.writer, "  [%d] %s %s\n", i+1, c.Name,
			SubtleStyle.Render(string(c.Type)))
	}

	for {
		fmt.Fprint(p.writer, "> ")
		line, err := p.readLine(ctx)
		if err != nil {
			return Decision{}, err
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(categories) {
			fmt.Fprintln(p.writer, WarningStyle.Render("Enter a category number."))
			continue
		}
		chosen := categories[n-1]
		return Decision{
			CategoryID:    chosen.ID,
			WasCorrection: isCorrection(scoring, chosen.ID),
		}, nil
	}
}

func (p *Prompter) formatTransaction(txn *model.ParsedTransaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Amount:   %.2f JOD\n", txn.Amount)
	merchant := txn.Merchant
	if merchant == "" {
		merchant = SubtleStyle.Render("(unknown)")
	}
	fmt.Fprintf(&b, "Merchant: %s\n", merchant)
	fmt.Fprintf(&b, "Type:     %s via %s\n", txn.Type, txn.Source)
	fmt.Fprintf(&b, "Date:     %s", txn.Timestamp.Format("2006-01-02 15:04"))
	return b.String()
}

// readLine reads one trimmed line, respecting context cancellation. The
// blocked read goroutine drains on the next prompt.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	ch := make(chan result, 1)

	go func() {
		value, err := p.reader.ReadString('\n')
		ch <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

func isCorrection(scoring *engine.Result, chosenID int64) bool {
	return scoring.CategoryID != nil && *scoring.CategoryID != chosenID
}
