package detector

import (
	"testing"

	"github.com/payday-community/riskengine/risk"

	"github.com/stretchr/testify/assert"
)

func TestDetectContact(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		hit  bool
	}{
		{hit: false, text: ""},
		{hit: false, text: "   "},
		{hit: false, text: "今天心情不错"},
		{hit: false, text: "工资到账了，吃顿好的"},
		{hit: true, text: "有意者联系 13812345678"},
		{hit: true, text: "加我 15900001111 详聊"},
		{hit: true, text: "发简历到 hr@example.com"},
		{hit: true, text: "contact me at someone.else@mail.co"},
		{hit: true, text: "QQ 123456789"},
		{hit: true, text: "qq号：12345678"},
		{hit: true, text: "加qq:98765432聊"},
		{hit: true, text: "微信 abc_123"},
		{hit: true, text: "微信：wxid-abcdef"},
		// too-short handles are not solicitation
		{hit: false, text: "QQ 1234"},
		{hit: false, text: "微信 abc"},
		// fixed-line style numbers are not CN mobile numbers
		{hit: false, text: "电话 010-1234"},
	}

	for _, fix := range fixtures {
		score, reason := DetectContact(fix.text)
		if fix.hit {
			assert.Equal(risk.ScoreContact, score, "text=%q", fix.text)
			assert.Equal(ContactReason, reason)
		} else {
			assert.Equal(0, score, "text=%q", fix.text)
			assert.Equal("", reason)
		}
	}
}
