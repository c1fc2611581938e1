package parser

import "regexp"

// The extraction grammar is immutable package-level configuration, assembled
// once at init. Pattern lists are ordered: the first match wins, so more
// specific forms must precede generic ones.

// skipMarkers identify promotional and seasonal-greeting messages that carry
// no transaction at all.
var skipMarkers = []string{
	"تهنئ",
	"عيد مبارك",
	"عيد سعيد",
	"كل عام وانتم بخير",
	"رمضان كريم",
	"نتمنى لكم",
	"عرض خاص",
	"اشترك الان",
	"eid mubarak",
	"happy eid",
	"ramadan kareem",
	"best wishes",
	"congratulations",
	"special offer",
	"promo code",
}

// CliQ-specific direction patterns. Tested before the generic bank keyword
// sets; a match also marks the message source as CliQ. Both common spellings
// (كليك / كليق) appear in the wild.
var (
	cliqIncomingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`حوالة\s+كلي[كق]\s+واردة`),
		regexp.MustCompile(`استلام\s+حوالة\s+كلي[كق]`),
		regexp.MustCompile(`وردت\s+حوالة\s+كلي[كق]`),
		regexp.MustCompile(`(?i)cliq\b.*\b(?:received|incoming)`),
		regexp.MustCompile(`(?i)\b(?:received|incoming)\b.*cliq`),
	}
	cliqOutgoingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`حوالة\s+كلي[كق]\s+صادرة`),
		regexp.MustCompile(`تحويل\s+كلي[كق]`),
		regexp.MustCompile(`ارسال\s+حوالة\s+كلي[كق]`),
		regexp.MustCompile(`(?i)cliq\b.*\b(?:sent|outgoing)`),
		regexp.MustCompile(`(?i)\b(?:sent|outgoing)\b.*cliq`),
	}
	// cliqMarker catches CliQ messages whose direction wording is unusual;
	// it only affects the source, never the direction.
	cliqMarker = regexp.MustCompile(`(?i)\bcliq\b|كلي[كق]`)
)

// Generic banking direction keywords, checked after the CliQ sets.
var (
	incomeKeywords = []string{
		"ايداع",
		"إيداع",
		"راتب",
		"حوالة واردة",
		"اضافة مبلغ",
		"deposit",
		"salary",
		"credited",
		"incoming transfer",
	}
	expenseKeywords = []string{
		"تفويض",
		"خصم",
		"اقتطاع",
		"شراء",
		"سحب",
		"دفع",
		"حوالة صادرة",
		"authorization",
		"debit",
		"deducted",
		"purchase",
		"withdrawal",
		"outgoing transfer",
	}
)

// amountPatterns extract the transaction amount. Group 1 is the numeral;
// thousands commas are stripped before parsing. Arabic marker forms first,
// then English, then bare numeral-with-currency.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:بقيمة|بمبلغ|مبلغ)\s*([\d,]+(?:\.\d+)?)\s*(?:دينار(?:\s*اردني)?|د\.?\s*ا|(?i:JOD|JD))`),
	regexp.MustCompile(`(?:بقيمة|بمبلغ|مبلغ)\s*(?:دينار|د\.?\s*ا|(?i:JOD|JD))?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)amount\s+(?:of\s+)?(?:JOD|JD)?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)for\s+(?:JOD|JD)\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(?:دينار|(?i:JOD|JD))`),
	regexp.MustCompile(`(?i)(?:JOD|JD)\s*([\d,]+(?:\.\d+)?)`),
}

// merchantPatterns extract the counterparty name. Group 1 is the raw
// capture, bounded by the next amount marker, label separator, or line end.
// Preposition-anchored forms first, explicit labels after, open-ended
// fallbacks last.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`من\s+(.+?)\s+(?:بقيمة|بمبلغ|مبلغ)`),
	regexp.MustCompile(`(?:الى|إلى)\s+(.+?)\s+(?:بقيمة|بمبلغ|مبلغ)`),
	regexp.MustCompile(`لدى\s+(.+?)(?:\s+(?:بقيمة|بمبلغ|مبلغ|بتاريخ|رصيدك)|$)`),
	regexp.MustCompile(`(?i)from\s+(.+?)\s+(?:with|for|amount|in\s+the\s+amount)`),
	regexp.MustCompile(`(?i)to\s+(.+?)\s+(?:with|for|amount|in\s+the\s+amount)`),
	regexp.MustCompile(`(?i)(?:sender|receiver|beneficiary)\s*:\s*([^,.\n]+)`),
	regexp.MustCompile(`من\s+([^,.\n]+)`),
	regexp.MustCompile(`(?:الى|إلى)\s+([^,.\n]+)`),
}

// Cleanup token sets applied to the raw merchant capture, in pipeline order.
var (
	// Trailing city/country suffixes stripped token-by-token.
	locationSuffixes = []string{
		"عمان", "الاردن", "الأردن", "اربد", "الزرقاء", "العقبة",
		"amman", "jordan", "irbid", "zarqa", "aqaba", "jo",
	}
	// Currency and amount-marker tokens removed wherever they appear.
	amountMarkerTokens = []string{
		"بقيمة", "بمبلغ", "مبلغ", "دينار", "jod", "jd",
	}
	// Leading articles, prepositions and honorifics.
	leadingArticles = []string{
		"السيد", "السيدة", "من", "الى", "إلى", "لدى", "في",
		"the", "mr", "mrs", "ms",
	}
	// Captures that refer to the user's own account, not a counterparty.
	merchantStopWords = []string{
		"حسابك", "حساب", "بطاقتك", "بطاقة", "رصيدك",
		"your account", "account", "your card", "card",
	}
)

// categoryHint maps merchant keywords to a static category label. Ordered so
// locale sets can be swapped without touching the matching logic.
type categoryHint struct {
	label    string
	keywords []string
}

var categoryHints = []categoryHint{
	{"Groceries", []string{"carrefour", "كارفور", "safeway", "سيفوي", "سامح", "sameh", "miles", "مايلز"}},
	{"Dining", []string{"مطعم", "restaurant", "كافيه", "cafe", "قهوة", "coffee", "ماكدونالدز", "mcdonalds", "kfc", "طلبات", "talabat"}},
	{"Transport", []string{"اوبر", "uber", "كريم", "careem", "تكسي", "taxi"}},
	{"Fuel", []string{"محطة", "station", "المناصير", "manaseer", "توتال", "total"}},
	{"Utilities", []string{"كهرباء", "electricity", "مياه", "water", "اورانج", "orange", "زين", "zain", "امنية", "umniah"}},
	{"Health", []string{"صيدلية", "pharmacy", "مستشفى", "hospital", "عيادة", "clinic"}},
	{"Shopping", []string{"امازون", "amazon", "نون", "noon", "شي ان", "shein"}},
	{"Salary", []string{"راتب", "رواتب", "salary", "payroll"}},
}

// businessKeywords mark a CliQ sender name as an organization rather than a
// person.
var businessKeywords = []string{
	"شركة", "شركه", "مؤسسة", "مؤسسه", "متجر", "مكتب", "صيدلية",
	"company", "trading", "store", "shop", "market", "telecom",
	"services", "est", "co",
}

// salaryKeywords mark a CliQ transfer as salary-like.
var salaryKeywords = []string{
	"راتب", "رواتب", "salary", "payroll", "wage",
}

// Default category labels when no hint matches.
const (
	defaultCliqIncome  = "Received Transfers"
	defaultCliqExpense = "Sent Transfers"
	defaultIncome      = "Other Income"
	defaultExpense     = "Other Expenses"
	defaultUnknown     = "Miscellaneous"
)
