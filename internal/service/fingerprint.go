package service

import (
	"strings"

	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/validation"
)

// Fingerprint identifies a requester by the first X-Forwarded-For hop and
// the User-Agent. Absent headers contribute empty strings.
func Fingerprint(forwardedFor, userAgent string) string {
	ip := forwardedFor
	if i := strings.IndexByte(ip, ','); i >= 0 {
		ip = ip[:i]
	}
	return validation.Truncate(strings.TrimSpace(ip)+":"+userAgent, models.MaxFingerprintLength)
}
