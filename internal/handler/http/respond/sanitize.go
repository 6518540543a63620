package respond

import "regexp"

// Applied in order; the more specific key prefixes come first.
var secretPatterns = []struct {
	re   *regexp.Regexp
	mask string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-_]+`), "sk-ant-****"},
	{regexp.MustCompile(`sk-or-v1-[a-zA-Z0-9]+`), "sk-or-****"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`), "sk-****"},
	{regexp.MustCompile(`(?i)(apikey|api_key|token)=[^&\s"]+`), "$1=****"},
	{regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-_.]+`), "Bearer ****"},
}

// SanitizeError returns err's message with API keys and tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, p := range secretPatterns {
		msg = p.re.ReplaceAllString(msg, p.mask)
	}
	return msg
}
