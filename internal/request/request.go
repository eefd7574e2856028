// Package request turns a free-form planner query into structured run
// parameters. Parsing is deliberately constrained: a small deterministic
// pass handles SKU aliases, dates, and scope keywords, and an optional
// narrator-assisted pass may refine the result but can never invent
// required fields the user did not mention.
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/planflow/demand-planner/internal/narrator"
)

// #region parameters

// Defaults applied when the query does not override them.
const (
	DefaultCustomer  = "BLINKIT"
	DefaultLocation  = "BANGALORE"
	DefaultAsOfDate  = "2026-01-01"
	DefaultABCClass  = "A"
	DefaultYear      = 2026
	DefaultUpper     = 0.30
	DefaultLower     = -0.20
	ScopeSingle      = "single"
	ScopeAllRelevant = "all_relevant"
	AutoSKU          = "AUTO"
)

// Params is the structured form of a planner request.
type Params struct {
	CustomerID         string   `json:"customer_id"`
	LocationID         string   `json:"location_id"`
	AsOfDate           string   `json:"as_of_date"`
	Scope              string   `json:"scope"`
	SKUID              string   `json:"sku_id"`
	ABCClass           string   `json:"abc_class"`
	XYZClasses         []string `json:"xyz_classes"`
	UpperThreshold     float64  `json:"upper_threshold"`
	LowerThreshold     float64  `json:"lower_threshold"`
	NeedsClarification bool     `json:"needs_clarification"`
	Questions          []string `json:"clarification_questions"`
}

func defaultParams() Params {
	return Params{
		CustomerID:     DefaultCustomer,
		LocationID:     DefaultLocation,
		AsOfDate:       DefaultAsOfDate,
		Scope:          ScopeSingle,
		SKUID:          AutoSKU,
		ABCClass:       DefaultABCClass,
		XYZClasses:     []string{"Y", "Z"},
		UpperThreshold: DefaultUpper,
		LowerThreshold: DefaultLower,
	}
}

// #endregion parameters

// #region deterministic

var skuAliases = []struct {
	alias string
	sku   string
}{
	// Longest aliases first so "PONDS SUPER LIGHT GEL" wins over "PONDS".
	{"PONDS SUPER LIGHT GEL", "PONDS_SUPER_LIGHT_GEL_100G"},
	{"DOVE HAIR FALL", "DOVE_HAIR_FALL_RESCUE_650ML"},
	{"PONDS", "PONDS_SUPER_LIGHT_GEL_100G"},
	{"POND", "PONDS_SUPER_LIGHT_GEL_100G"},
	{"DOVE", "DOVE_HAIR_FALL_RESCUE_650ML"},
}

var knownSKUs = []string{
	"PONDS_SUPER_LIGHT_GEL_100G",
	"DOVE_HAIR_FALL_RESCUE_650ML",
}

var (
	isoDateRe  = regexp.MustCompile(`(20\d{2}-\d{2}-\d{2})`)
	strictISO  = regexp.MustCompile(`^20\d{2}-\d{2}-\d{2}$`)
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	monthDayRe = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	yearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func mentionsCustomer(text string) bool {
	t := strings.ToUpper(text)
	return strings.Contains(t, "BLINKIT") || strings.Contains(t, "ZEPTO")
}

func mentionsLocation(text string) bool {
	return strings.Contains(strings.ToUpper(text), "BANGALORE")
}

func mentionsScopeAll(text string) bool {
	t := strings.ToUpper(text)
	return strings.Contains(t, "ALL") ||
		strings.Contains(t, "A/Y") ||
		strings.Contains(t, "A-Y") ||
		strings.Contains(t, "A Y")
}

// InferSKU resolves a SKU id or known alias mentioned in the text,
// returning AUTO when nothing matches.
func InferSKU(text string) string {
	t := strings.ToUpper(text)
	for _, sku := range knownSKUs {
		if strings.Contains(t, sku) {
			return sku
		}
	}
	for _, a := range skuAliases {
		if strings.Contains(t, a.alias) {
			return a.sku
		}
	}
	return AutoSKU
}

// InferDate extracts an as-of date from the text. ISO dates are taken
// verbatim; otherwise a day plus month name is required ("2nd jan",
// "jan 2"), with the year defaulting to 2026 unless one is written out.
// Returns "" when no date can be inferred.
func InferDate(text string) string {
	if text == "" {
		return ""
	}
	if m := isoDateRe.FindString(text); m != "" {
		return m
	}
	lower := strings.ToLower(text)

	var day int
	var month time.Month
	if m := dayMonthRe.FindStringSubmatch(lower); m != nil {
		fmt.Sscanf(m[1], "%d", &day)
		month = monthIndex[m[2]]
	} else if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		fmt.Sscanf(m[2], "%d", &day)
		month = monthIndex[m[1]]
	} else {
		return ""
	}
	if day < 1 || day > 31 {
		return ""
	}
	year := DefaultYear
	if m := yearRe.FindStringSubmatch(text); m != nil {
		fmt.Sscanf(m[1], "%d", &year)
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		// Day overflowed the month (e.g. "31 feb").
		return ""
	}
	return d.Format("2006-01-02")
}

func clarificationQuestions(missing []string) []string {
	var qs []string
	for _, field := range missing {
		switch field {
		case "sku_id":
			qs = append(qs, "Which product/SKU should I run this for? (e.g., PONDS_SUPER_LIGHT_GEL_100G)")
		case "customer_id":
			qs = append(qs, "Which customer? (BLINKIT or ZEPTO)")
		case "location_id":
			qs = append(qs, "Which location/DC? (e.g., BANGALORE)")
		case "as_of_date":
			qs = append(qs, "Which date should I use? (e.g., 2026-01-02 or '2nd Jan 2026')")
		}
	}
	return qs
}

// Parse converts the query into run parameters without any external
// help. Customer, location, and date count as known only when the user
// actually wrote them; anything missing raises a clarification.
func Parse(query string) Params {
	p := defaultParams()
	q := strings.ToUpper(query)

	skuID := InferSKU(query)
	inferredDate := InferDate(query)
	scopeAll := mentionsScopeAll(query)

	if scopeAll {
		p.Scope = ScopeAllRelevant
		p.SKUID = AutoSKU
	} else {
		p.SKUID = skuID
	}
	if strings.Contains(q, "ZEPTO") {
		p.CustomerID = "ZEPTO"
	}
	if inferredDate != "" {
		p.AsOfDate = inferredDate
	}

	var missing []string
	if !scopeAll && (skuID == "" || skuID == AutoSKU) {
		missing = append(missing, "sku_id")
	}
	if !mentionsCustomer(query) {
		missing = append(missing, "customer_id")
	}
	if !mentionsLocation(query) {
		missing = append(missing, "location_id")
	}
	if inferredDate == "" {
		missing = append(missing, "as_of_date")
	}

	if len(missing) > 0 {
		p.NeedsClarification = true
		p.Questions = clarificationQuestions(missing)
	}
	return p
}

// #endregion deterministic

// #region assisted

const parserInstructions = "You are a demand planning request parser. " +
	"Return ONLY valid JSON with the specified schema; no extra text."

type parserPayload struct {
	UserQuery string            `json:"user_query"`
	SKUHint   string            `json:"sku_hint"`
	DateHint  string            `json:"date_hint,omitempty"`
	Schema    map[string]string `json:"schema"`
	Rules     []string          `json:"rules"`
}

// Parser optionally uses a narrator backend to interpret queries the
// deterministic pass cannot. A nil backend makes ParseQuery equivalent
// to Parse.
type Parser struct {
	llm narrator.Narrator
}

func NewParser(llm narrator.Narrator) *Parser {
	return &Parser{llm: llm}
}

// ParseQuery asks the narrator to fill the schema, then re-validates the
// reply against the user's actual words: fields the user never mentioned
// stay missing no matter what the model claims. Any backend or decode
// failure falls back to the deterministic parse.
func (p *Parser) ParseQuery(ctx context.Context, query string) Params {
	if p == nil || p.llm == nil {
		return Parse(query)
	}

	inferredSKU := InferSKU(query)
	inferredDate := InferDate(query)

	payload := parserPayload{
		UserQuery: query,
		SKUHint:   inferredSKU,
		DateHint:  inferredDate,
		Schema: map[string]string{
			"customer_id":             "BLINKIT|ZEPTO",
			"location_id":             "BANGALORE",
			"as_of_date":              "YYYY-MM-DD",
			"scope":                   "single|all_relevant",
			"sku_id":                  "SKU_ID or AUTO",
			"abc_class":               "A|B|C",
			"xyz_classes":             "list of Y|Z",
			"upper_threshold":         "fraction, default 0.30",
			"lower_threshold":         "fraction, default -0.20",
			"needs_clarification":     "true|false",
			"clarification_questions": "list of strings",
		},
		Rules: []string{
			"If the user asks for all relevant SKUs (e.g., 'all A/Y'), set scope=all_relevant and sku_id=AUTO.",
			"If a SKU is explicitly mentioned, set scope=single and sku_id to that.",
			"Do NOT silently assume missing customer/location/date; set needs_clarification=true and ask follow-up questions.",
			"If the date is written like '2nd jan', convert to YYYY-MM-DD with default year 2026.",
			"Keep defaults only for thresholds/abc/xyz.",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Parse(query)
	}
	raw, err := p.llm.Generate(ctx, parserInstructions, string(body))
	if err != nil {
		return Parse(query)
	}

	var reply struct {
		CustomerID         string   `json:"customer_id"`
		LocationID         string   `json:"location_id"`
		AsOfDate           string   `json:"as_of_date"`
		Scope              string   `json:"scope"`
		SKUID              string   `json:"sku_id"`
		ABCClass           string   `json:"abc_class"`
		XYZClasses         []string `json:"xyz_classes"`
		UpperThreshold     *float64 `json:"upper_threshold"`
		LowerThreshold     *float64 `json:"lower_threshold"`
		NeedsClarification bool     `json:"needs_clarification"`
		Questions          []string `json:"clarification_questions"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reply); err != nil {
		return Parse(query)
	}

	out := defaultParams()

	skuID := strings.ToUpper(strings.TrimSpace(reply.SKUID))
	if skuID == "" {
		skuID = inferredSKU
	}
	asOfDate := strings.TrimSpace(reply.AsOfDate)
	if asOfDate == "" {
		asOfDate = inferredDate
	}

	scopeAll := mentionsScopeAll(query) || reply.Scope == ScopeAllRelevant
	if scopeAll {
		out.Scope = ScopeAllRelevant
		out.SKUID = AutoSKU
	} else {
		if reply.Scope != "" {
			out.Scope = strings.TrimSpace(reply.Scope)
		}
		if skuID != "" {
			out.SKUID = skuID
		}
	}

	if c := strings.ToUpper(strings.TrimSpace(reply.CustomerID)); c != "" {
		out.CustomerID = c
	}
	if l := strings.ToUpper(strings.TrimSpace(reply.LocationID)); l != "" {
		out.LocationID = l
	}
	switch {
	case inferredDate != "":
		out.AsOfDate = inferredDate
	case strictISO.MatchString(asOfDate):
		out.AsOfDate = asOfDate
	}
	if abc := strings.ToUpper(strings.TrimSpace(reply.ABCClass)); abc != "" {
		out.ABCClass = abc
	}
	if len(reply.XYZClasses) > 0 {
		xyz := make([]string, 0, len(reply.XYZClasses))
		for _, x := range reply.XYZClasses {
			xyz = append(xyz, strings.ToUpper(strings.TrimSpace(x)))
		}
		out.XYZClasses = xyz
	}
	if reply.UpperThreshold != nil {
		out.UpperThreshold = *reply.UpperThreshold
	}
	if reply.LowerThreshold != nil {
		out.LowerThreshold = *reply.LowerThreshold
	}

	var missing []string
	if !scopeAll && (out.SKUID == "" || out.SKUID == AutoSKU) {
		missing = append(missing, "sku_id")
	}
	if !mentionsCustomer(query) {
		missing = append(missing, "customer_id")
	}
	if !mentionsLocation(query) {
		missing = append(missing, "location_id")
	}
	if inferredDate == "" && !strictISO.MatchString(asOfDate) {
		missing = append(missing, "as_of_date")
	}

	out.NeedsClarification = reply.NeedsClarification || len(missing) > 0
	if out.NeedsClarification {
		out.Questions = reply.Questions
		if len(out.Questions) == 0 {
			out.Questions = clarificationQuestions(missing)
		}
	}
	return out
}

// #endregion assisted
