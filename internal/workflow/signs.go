package workflow

// Signs is the fixed batch order for full-zodiac workflows. Batch reports
// preserve this order.
var Signs = []string{
	"aries", "taurus", "gemini", "cancer",
	"leo", "virgo", "libra", "scorpio",
	"sagittarius", "capricorn", "aquarius", "pisces",
}

// IsSign reports whether name is a known zodiac sign.
func IsSign(name string) bool {
	for _, s := range Signs {
		if s == name {
			return true
		}
	}
	return false
}
