// Local pattern detection for off-platform contact solicitation.
//
// Matching is pure and synchronous: no network, no store access. The target
// content is primarily Chinese, so the patterns cover CN mobile numbers and
// QQ/WeChat handle solicitation alongside generic email addresses.
package detector

import (
	"regexp"
	"strings"

	"github.com/payday-community/riskengine/risk"
)

// ContactReason is the reason attached to any contact-info hit.
const ContactReason = "含联系方式或诱导外联"

var contactPatterns = []*regexp.Regexp{
	// CN mobile number
	regexp.MustCompile(`1[3-9]\d{9}`),
	// email address
	regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`),
	// "QQ 123456789" / "qq号: 12345678"
	regexp.MustCompile(`(?i)qq[号]?[：:\s]*\d{5,12}`),
	// "微信 abc_123" / "微信: wxid-abc"
	regexp.MustCompile(`微信[：:\s]*[a-zA-Z0-9_-]{6,20}`),
}

// DetectContact scans text for contact info or solicitation to move
// off-platform. Any match scores a fixed risk.ScoreContact; degree is not
// graded because contact solicitation is treated as categorically
// high-risk. No match (including blank input) scores zero with an empty
// reason.
func DetectContact(text string) (int, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ""
	}
	for _, pat := range contactPatterns {
		if pat.MatchString(text) {
			return risk.ScoreContact, ContactReason
		}
	}
	return 0, ""
}
