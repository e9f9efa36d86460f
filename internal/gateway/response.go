package gateway

import (
	"fmt"
	"regexp"
	"strconv"
)

// Result is the interpreted outcome of one import request. The gateway
// never returns transport errors to callers; every failure mode lands
// here as Success=false with a human-readable message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Created int    `json:"created"`
	Altered int    `json:"altered"`
	Errors  int    `json:"errors"`
}

func failure(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Tally responds with loosely structured XML; tag scanning is deliberate.
// Responses are not reliably well formed, so a strict parser would reject
// answers the desktop client itself accepts.
var (
	lineErrorRe = regexp.MustCompile(`(?s)<LINEERROR>(.*?)</LINEERROR>`)
	createdRe   = regexp.MustCompile(`<CREATED>(\d+)</CREATED>`)
	alteredRe   = regexp.MustCompile(`<ALTERED>(\d+)</ALTERED>`)
	errorsRe    = regexp.MustCompile(`<ERRORS>(\d+)</ERRORS>`)
)

// Interpret classifies a raw Tally response body. Priority order: a line
// error fails immediately with Tally's own message; a nonzero error count
// fails; a nonzero created or altered count succeeds; anything else means
// Tally silently ignored the request, which is a failure, not a success.
func Interpret(body string) Result {
	if m := lineErrorRe.FindStringSubmatch(body); m != nil {
		msg := m[1]
		if msg == "" {
			msg = "Unknown Tally Error"
		}
		return failure("Tally Error: %s", msg)
	}

	created := scanCount(createdRe, body)
	altered := scanCount(alteredRe, body)
	errors := scanCount(errorsRe, body)

	if errors > 0 {
		r := failure("Tally reported %d errors", errors)
		r.Created, r.Altered, r.Errors = created, altered, errors
		return r
	}
	if created > 0 || altered > 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf("Success: Created %d, Altered %d", created, altered),
			Created: created,
			Altered: altered,
		}
	}
	return failure("Tally ignored the request")
}

func scanCount(re *regexp.Regexp, body string) int {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
