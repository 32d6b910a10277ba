// Package redact keeps personal data out of logs and alert payloads.
// Phone numbers and message bodies flow through the monitoring pipeline;
// anything that leaves the process (logs, sinks) is masked or truncated here.
package redact

import "strings"

var cleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Number masks the middle digits of a phone number, keeping any leading
// "+<country code>" hint and the last two digits. Short or malformed input
// is masked entirely.
func Number(s string) string {
	n := cleaner.Replace(s)
	if n == "" {
		return ""
	}

	keepHead := 0
	if strings.HasPrefix(n, "+") && len(n) > 3 {
		keepHead = 3
	}
	if len(n) <= keepHead+4 {
		return strings.Repeat("*", len(n))
	}
	return n[:keepHead] + strings.Repeat("*", len(n)-keepHead-2) + n[len(n)-2:]
}

// Preview truncates a message body to max runes, appending "..." when it
// was cut. Used for alert summaries and log fields.
func Preview(msg string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max]) + "..."
}
