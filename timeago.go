package docpage

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultRefreshInterval is how often tracked timestamps are re-rendered
// unless the Config says otherwise.
const DefaultRefreshInterval = time.Minute

// DefaultTitleLayout formats the tooltip when Config.LocaleTitle is set.
const DefaultTitleLayout = "1/2/2006, 3:04:05 PM"

// Template produces the wording of one bucket. n is the bucket's rounded
// count and distanceMillis the signed distance being humanized. The returned
// string may contain a %d placeholder that is replaced by n.
type Template func(n int, distanceMillis int64) string

// Literal returns a Template that always yields s.
func Literal(s string) Template {
	return func(int, int64) string { return s }
}

// Bucket is one of the discrete humanized-duration categories.
type Bucket string

// Bucket constants in cutoff order.
const (
	BucketSeconds Bucket = "seconds"
	BucketMinute  Bucket = "minute"
	BucketMinutes Bucket = "minutes"
	BucketHour    Bucket = "hour"
	BucketHours   Bucket = "hours"
	BucketDay     Bucket = "day"
	BucketDays    Bucket = "days"
	BucketMonth   Bucket = "month"
	BucketMonths  Bucket = "months"
	BucketYear    Bucket = "year"
	BucketYears   Bucket = "years"
)

// Strings holds the locale-substitutable wording used by Humanize.
type Strings struct {
	PrefixAgo     string
	PrefixFromNow string
	SuffixAgo     string
	SuffixFromNow string

	Seconds Template
	Minute  Template
	Minutes Template
	Hour    Template
	Hours   Template
	Day     Template
	Days    Template
	Month   Template
	Months  Template
	Year    Template
	Years   Template

	// Numbers overrides small integers with custom numerals. An empty entry
	// leaves the number as digits.
	Numbers []string

	// WordSeparator joins prefix, phrase and suffix. Nil means a single
	// space; a pointer to "" joins without a separator.
	WordSeparator *string
}

// DefaultStrings returns the English wording.
func DefaultStrings() Strings {
	return Strings{
		SuffixAgo:     "ago",
		SuffixFromNow: "from now",
		Seconds:       Literal("less than a minute"),
		Minute:        Literal("about a minute"),
		Minutes:       Literal("%d minutes"),
		Hour:          Literal("about an hour"),
		Hours:         Literal("about %d hours"),
		Day:           Literal("a day"),
		Days:          Literal("%d days"),
		Month:         Literal("about a month"),
		Months:        Literal("%d months"),
		Year:          Literal("about a year"),
		Years:         Literal("%d years"),
	}
}

// Template returns the template configured for b.
func (s Strings) Template(b Bucket) Template {
	switch b {
	case BucketSeconds:
		return s.Seconds
	case BucketMinute:
		return s.Minute
	case BucketMinutes:
		return s.Minutes
	case BucketHour:
		return s.Hour
	case BucketHours:
		return s.Hours
	case BucketDay:
		return s.Day
	case BucketDays:
		return s.Days
	case BucketMonth:
		return s.Month
	case BucketMonths:
		return s.Months
	case BucketYear:
		return s.Year
	case BucketYears:
		return s.Years
	}
	return nil
}

func (s Strings) separator() string {
	if s.WordSeparator == nil {
		return " "
	}
	return *s.WordSeparator
}

// Config configures a Humanizer. It is a value: each Humanizer keeps its
// own copy.
type Config struct {
	// RefreshInterval is the re-render period. Zero or negative disables
	// periodic refresh.
	RefreshInterval time.Duration

	// AllowFuture switches to the from-now wording for instants in the future.
	AllowFuture bool

	// LocaleTitle replaces the tooltip with the instant formatted in local
	// time using TitleLayout.
	LocaleTitle bool
	TitleLayout string

	Strings Strings
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: DefaultRefreshInterval,
		TitleLayout:     DefaultTitleLayout,
		Strings:         DefaultStrings(),
	}
}

// BucketFor returns the bucket that applies to distanceMillis and the count
// substituted into its template. Cutoffs are checked in order and the first
// match wins.
func BucketFor(distanceMillis int64) (Bucket, int) {
	seconds := math.Abs(float64(distanceMillis)) / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	years := days / 365

	switch {
	case seconds < 45:
		return BucketSeconds, round(seconds)
	case seconds < 90:
		return BucketMinute, 1
	case minutes < 45:
		return BucketMinutes, round(minutes)
	case minutes < 90:
		return BucketHour, 1
	case hours < 24:
		return BucketHours, round(hours)
	case hours < 42:
		return BucketDay, 1
	case days < 30:
		return BucketDays, round(days)
	case days < 45:
		return BucketMonth, 1
	case days < 365:
		return BucketMonths, round(days / 30)
	case years < 1.5:
		return BucketYear, 1
	default:
		return BucketYears, round(years)
	}
}

// Humanize renders a signed distance (now minus instant, in milliseconds)
// as a phrase such as "about an hour ago". Negative distances are instants
// in the future.
func Humanize(distanceMillis int64, cfg Config) string {
	l := cfg.Strings
	prefix, suffix := l.PrefixAgo, l.SuffixAgo
	if cfg.AllowFuture && distanceMillis < 0 {
		prefix, suffix = l.PrefixFromNow, l.SuffixFromNow
	}

	bucket, n := BucketFor(distanceMillis)
	words := l.substitute(l.Template(bucket), n, distanceMillis)

	return strings.TrimSpace(strings.Join([]string{prefix, words, suffix}, l.separator()))
}

// InWords humanizes the distance from t to now.
func InWords(t, now time.Time, cfg Config) string {
	return Humanize(now.Sub(t).Milliseconds(), cfg)
}

var placeholderRe = regexp.MustCompile(`(?i)%d`)

func (s Strings) substitute(tpl Template, n int, distanceMillis int64) string {
	if tpl == nil {
		return ""
	}
	text := tpl(n, distanceMillis)

	value := strconv.Itoa(n)
	if n >= 0 && n < len(s.Numbers) && s.Numbers[n] != "" {
		value = s.Numbers[n]
	}

	loc := placeholderRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + value + text[loc[1]:]
}

func round(f float64) int {
	return int(math.Round(f))
}

var (
	fractionRe  = regexp.MustCompile(`\.\d+`)
	separatorRe = regexp.MustCompile(`(\d)T(\d)`)
	offsetRe    = regexp.MustCompile(`([+\-]\d\d):?(\d\d)`)
)

var timestampLayouts = []string{
	"2006/1/2 15:04:05 -0700",
	"2006/1/2 15:04 -0700",
	"2006/1/2 15:04:05 MST",
	"2006/1/2 15:04 MST",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
}

// Parse parses an ISO-8601-like timestamp such as "2008-07-17T09:24:17Z" or
// "2008-07-17 09:24:17.512-04:00". Timestamps without a zone are read in
// local time. Malformed input returns an EINVALID error.
func Parse(raw string) (time.Time, error) {
	return ParseInLocation(raw, time.Local)
}

// ParseInLocation is like Parse but reads zoneless timestamps in loc.
func ParseInLocation(raw string, loc *time.Location) (time.Time, error) {
	s := normalizeTimestamp(raw)
	if s == "" {
		return time.Time{}, Errorf(EINVALID, "empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Errorf(EINVALID, "unrecognized timestamp %q", raw)
}

// normalizeTimestamp rewrites raw into the slash-separated form accepted by
// timestampLayouts. Each rewrite applies to the first occurrence only.
func normalizeTimestamp(raw string) string {
	s := strings.TrimSpace(raw)
	s = replaceFirst(fractionRe, s, "")
	s = strings.Replace(s, "-", "/", 2)
	s = replaceFirst(separatorRe, s, "$1 $2")
	s = strings.Replace(s, "Z", " UTC", 1)
	s = replaceFirst(offsetRe, s, " $1$2")
	return strings.Join(strings.Fields(s), " ")
}

func replaceFirst(re *regexp.Regexp, s, template string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	expanded := re.ExpandString(nil, template, s, m)
	return s[:m[0]] + string(expanded) + s[m[1]:]
}
