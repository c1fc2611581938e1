// Package parser turns raw bilingual bank and CliQ SMS text into structured
// transaction records. Extraction is regex-driven and pure: an unparseable
// message is a nil result, never an error.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// Parser extracts transactions from SMS text.
type Parser struct {
	loc *time.Location
}

// New creates a parser that resolves timestamps in the given timezone.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc}
}

// ParseMessage extracts a transaction from raw SMS text. A message that is
// promotional or carries no amount yields (nil, nil). An explicit timestamp
// may be supplied as RFC3339 or a plain date/datetime; a malformed timestamp
// is the only error case, since it is caller-supplied structured input
// rather than heuristically recovered text.
func (p *Parser) ParseMessage(text, timestamp string) (*model.ParsedTransaction, error) {
	ts, err := p.resolveTimestamp(timestamp)
	if err != nil {
		return nil, err
	}

	if containsAny(text, skipMarkers) {
		return nil, nil
	}

	source, txType := classifyDirection(text)

	amount, ok := extractAmount(text)
	if !ok {
		// Amount is mandatory; direction is not.
		return nil, nil
	}

	merchant := extractMerchant(text)

	return &model.ParsedTransaction{
		OriginalMessage: text,
		Timestamp:       ts,
		Amount:          amount,
		Merchant:        merchant,
		Type:            txType,
		Source:          source,
		Category:        categoryFor(text, merchant, source, txType),
	}, nil
}

func (p *Parser) resolveTimestamp(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return time.Now().In(p.loc), nil
	}
	if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
		return ts.In(p.loc), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.ParseInLocation(layout, timestamp, p.loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", common.ErrInvalidTimestamp, timestamp)
}

// classifyDirection tests the CliQ-specific pattern sets first, then the
// generic banking keyword sets. An unknown direction does not reject the
// message.
func classifyDirection(text string) (model.MessageSource, model.TransactionType) {
	for _, re := range cliqIncomingPatterns {
		if re.MatchString(text) {
			return model.SourceCliq, model.TypeIncome
		}
	}
	for _, re := range cliqOutgoingPatterns {
		if re.MatchString(text) {
			return model.SourceCliq, model.TypeExpense
		}
	}

	source := model.SourceSMS
	if cliqMarker.MatchString(text) {
		source = model.SourceCliq
	}

	if containsAny(text, incomeKeywords) {
		return source, model.TypeIncome
	}
	if containsAny(text, expenseKeywords) {
		return source, model.TypeExpense
	}
	return source, model.TypeUnknown
}

// extractAmount runs the ordered amount grammar; the first match wins.
func extractAmount(text string) (float64, bool) {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount <= 0 {
			continue
		}
		return amount, true
	}
	return 0, false
}

// extractMerchant runs the ordered merchant grammar and the cleanup
// pipeline. Returns the normalized name, or empty when nothing survives.
func extractMerchant(text string) string {
	for _, re := range merchantPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if cleaned := cleanMerchant(m[1]); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// categoryFor resolves the static category hint, in priority order: CliQ
// business/salary heuristics, merchant first-token lookup, full-message
// substring scan, then the type-based default label.
func categoryFor(text, merchant string, source model.MessageSource, txType model.TransactionType) string {
	if source == model.SourceCliq && merchant != "" {
		if IsBusinessLike(merchant) {
			if label, ok := hintByKeyword(merchant); ok {
				return label
			}
			return "Business"
		}
		if containsAny(text, salaryKeywords) {
			return "Salary"
		}
	}

	if merchant != "" {
		if first := strings.Fields(merchant); len(first) > 0 {
			if label, ok := hintByKeyword(first[0]); ok {
				return label
			}
		}
	}

	if label, ok := hintByKeyword(text); ok {
		return label
	}

	return defaultLabel(source, txType)
}

func hintByKeyword(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, hint := range categoryHints {
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				return hint.label, true
			}
		}
	}
	return "", false
}

func defaultLabel(source model.MessageSource, txType model.TransactionType) string {
	if source == model.SourceCliq {
		switch txType {
		case model.TypeIncome:
			return defaultCliqIncome
		case model.TypeExpense:
			return defaultCliqExpense
		}
	}
	switch txType {
	case model.TypeIncome:
		return defaultIncome
	case model.TypeExpense:
		return defaultExpense
	}
	return defaultUnknown
}

// IsBusinessLike reports whether a normalized sender name looks like a
// company or institution rather than a person.
func IsBusinessLike(name string) bool {
	for _, token := range strings.Fields(strings.ToLower(name)) {
		if containsFold(businessKeywords, token) {
			return true
		}
	}
	return false
}
