// File: services/parser/parser.go
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Result holds what could be read from a message. Any field may be nil.
type Result struct {
	Date *string // "YYYY-MM-DD"
	Time *string // "HH:00"
	Size *int
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool { return s.start < o.end && o.start < s.end }

type scan struct {
	text     string
	now      time.Time
	consumed []span
	sizeSpan *span
}

func (s *scan) free(sp span) bool {
	for _, c := range s.consumed {
		if c.overlaps(sp) {
			return false
		}
	}
	return true
}

// dateRule reports whether its pattern matched and the span it consumed.
// A match on an impossible calendar date returns an empty date.
type dateRule func(s *scan) (date string, at span, matched bool)

type timeRule func(s *scan) (hour string, at span, ok bool)

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	dayMonthRe  = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})\b`)
	dayOfRe     = regexp.MustCompile(`\b(?:le|au)\s+(\d{1,2})\b`)
	bareRe      = regexp.MustCompile(`^(\d{1,2})$`)
	clockRe     = regexp.MustCompile(`\b(\d{1,2})[:h](\d{2})?`)
	prepTimeRe  = regexp.MustCompile(`(?:^|\s)(?:à|a|vers|at|around)\s+(\d{1,2})\b`)
	sizeUnitRe  = regexp.MustCompile(`\b(\d{1,3})\s*(?:personnes|personne|pers|people|persons|person|guests|couverts|p)\b`)
	numeralRe   = regexp.MustCompile(`\b(\d{1,2})\b`)
	firstNumRe  = regexp.MustCompile(`\d+`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	dateOrder   = []dateRule{isoDate, dayMonth, dayOf, bareDay, relativeDay}
	timeOrder   = []timeRule{clockTime, prepositionTime}
	dayKeywords = []struct {
		words  []string
		offset int
	}{
		{[]string{"après-demain", "apres-demain", "après demain", "apres demain"}, 2},
		{[]string{"demain", "tomorrow"}, 1},
		{[]string{"aujourd'hui", "aujourd’hui", "aujourdhui", "today", "ce soir", "tonight"}, 0},
	}
)

// Extract reads a date, an hour and a party size from free text.
// Rules for each field are tried in order and the first match wins.
// A numeral taken by the date is not reread as a time, and one taken by
// either is not reread as a size.
func Extract(text string, now time.Time) Result {
	s := &scan{text: strings.ToLower(strings.TrimSpace(text)), now: now}
	var res Result

	if m := sizeUnitRe.FindStringSubmatchIndex(s.text); m != nil {
		s.sizeSpan = &span{m[0], m[1]}
	}

	// Time is resolved before the bare-day rule, which only applies when no
	// time was found; spans from the explicit date rules are reserved first.
	dateMatched := applyDateRules(s, dateOrder[:3], &res)

	for _, rule := range timeOrder {
		if h, at, ok := rule(s); ok {
			res.Time = &h
			s.consumed = append(s.consumed, at)
			break
		}
	}

	if !dateMatched {
		applyDateRules(s, dateOrder[3:], &res)
	}

	res.Size = extractSize(s)
	return res
}

func applyDateRules(s *scan, rules []dateRule, res *Result) bool {
	for _, rule := range rules {
		d, at, matched := rule(s)
		if !matched {
			continue
		}
		s.consumed = append(s.consumed, at)
		if d != "" {
			res.Date = &d
		}
		return true
	}
	return false
}

func isoDate(s *scan) (string, span, bool) {
	m := isoDateRe.FindStringSubmatchIndex(s.text)
	if m == nil {
		return "", span{}, false
	}
	year, _ := strconv.Atoi(s.text[m[2]:m[3]])
	month, _ := strconv.Atoi(s.text[m[4]:m[5]])
	day, _ := strconv.Atoi(s.text[m[6]:m[7]])
	d, _ := calendarDate(year, month, day, s.now.Location())
	return d, span{m[0], m[1]}, true
}

func dayMonth(s *scan) (string, span, bool) {
	m := dayMonthRe.FindStringSubmatchIndex(s.text)
	if m == nil {
		return "", span{}, false
	}
	day, _ := strconv.Atoi(s.text[m[2]:m[3]])
	month, _ := strconv.Atoi(s.text[m[4]:m[5]])
	year := s.now.Year()
	if month < int(s.now.Month()) {
		year++
	}
	d, _ := calendarDate(year, month, day, s.now.Location())
	return d, span{m[0], m[1]}, true
}

func dayOf(s *scan) (string, span, bool) {
	m := dayOfRe.FindStringSubmatchIndex(s.text)
	if m == nil {
		return "", span{}, false
	}
	day, _ := strconv.Atoi(s.text[m[2]:m[3]])
	d, _ := dayOfMonth(day, s.now)
	return d, span{m[2], m[3]}, true
}

// bareDay reads a whole-message numeral below 10 as a day of the month.
func bareDay(s *scan) (string, span, bool) {
	m := bareRe.FindStringSubmatchIndex(s.text)
	if m == nil || s.sizeSpan != nil || !s.free(span{m[2], m[3]}) {
		return "", span{}, false
	}
	day, _ := strconv.Atoi(s.text[m[2]:m[3]])
	if day >= 10 {
		return "", span{}, false
	}
	d, _ := dayOfMonth(day, s.now)
	return d, span{m[2], m[3]}, true
}

func relativeDay(s *scan) (string, span, bool) {
	for _, k := range dayKeywords {
		for _, w := range k.words {
			if i := strings.Index(s.text, w); i >= 0 {
				return s.now.AddDate(0, 0, k.offset).Format(dateLayout), span{i, i + len(w)}, true
			}
		}
	}
	return "", span{}, false
}

func clockTime(s *scan) (string, span, bool) {
	for _, m := range clockRe.FindAllStringSubmatchIndex(s.text, -1) {
		at := span{m[0], m[1]}
		if !s.free(at) {
			continue
		}
		h, _ := strconv.Atoi(s.text[m[2]:m[3]])
		if h < 0 || h > 23 {
			continue
		}
		return FormatHour(h), at, true
	}
	return "", span{}, false
}

func prepositionTime(s *scan) (string, span, bool) {
	for _, m := range prepTimeRe.FindAllStringSubmatchIndex(s.text, -1) {
		at := span{m[2], m[3]}
		if !s.free(at) || (s.sizeSpan != nil && s.sizeSpan.overlaps(at)) {
			continue
		}
		if h, ok := plausibleHour(s.text[m[2]:m[3]]); ok {
			return FormatHour(h), at, true
		}
	}
	if m := bareRe.FindStringSubmatchIndex(s.text); m != nil {
		if h, ok := plausibleHour(s.text[m[2]:m[3]]); ok {
			return FormatHour(h), span{m[2], m[3]}, true
		}
	}
	return "", span{}, false
}

func extractSize(s *scan) *int {
	if s.sizeSpan != nil {
		m := sizeUnitRe.FindStringSubmatch(s.text)
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			return &n
		}
		return nil
	}
	for _, m := range numeralRe.FindAllStringSubmatchIndex(s.text, -1) {
		if !s.free(span{m[2], m[3]}) {
			continue
		}
		if n, _ := strconv.Atoi(s.text[m[2]:m[3]]); n >= 1 && n <= 9 {
			return &n
		}
	}
	return nil
}

func plausibleHour(raw string) (int, bool) {
	h, err := strconv.Atoi(raw)
	if err != nil || h < 10 || h > 23 {
		return 0, false
	}
	return h, true
}

func dayOfMonth(day int, now time.Time) (string, bool) {
	year, month := now.Year(), int(now.Month())
	if day < now.Day() {
		month++
		if month > 12 {
			month, year = 1, year+1
		}
	}
	return calendarDate(year, month, day, now.Location())
}

// calendarDate rejects dates time.Date would silently normalize, like 31/06.
func calendarDate(year, month, day int, loc *time.Location) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(dateLayout), true
}

// FormatHour renders an hour as "HH:00".
func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// FirstNumber returns the first run of digits in text.
func FirstNumber(text string) (int, bool) {
	raw := firstNumRe.FindString(text)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BareHour reads a message made of a single numeral in [10, 23] as an hour.
func BareHour(text string) (string, bool) {
	m := bareRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	h, ok := plausibleHour(m[1])
	if !ok {
		return "", false
	}
	return FormatHour(h), true
}

// IsEmail reports whether text has the shape local@domain.tld.
func IsEmail(text string) bool {
	return emailRe.MatchString(strings.TrimSpace(text))
}

// ParseHour reads "HH:MM" and returns the hour.
func ParseHour(t string) (int, bool) {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return 0, false
	}
	return parsed.Hour(), true
}

// ValidDate reports whether d is a real "YYYY-MM-DD" calendar date.
func ValidDate(d string) bool {
	_, err := time.Parse(dateLayout, d)
	return err == nil
}
