package encode

type EncodeOption func(*EncState)

// DefaultBanner is the comment written at the top of encoded files.
var DefaultBanner = []string{"Generated by dts-format; edits may be overwritten."}

// Indent indents with n spaces per level instead of the default tab.
func Indent(n int) EncodeOption {
	return func(es *EncState) {
		es.indent = n
		es.tabs = false
	}
}
func Tabs(v bool) EncodeOption {
	return func(es *EncState) { es.tabs = v }
}
func Banner(lines ...string) EncodeOption {
	return func(es *EncState) { es.banner = lines }
}
func NoBanner() EncodeOption {
	return func(es *EncState) { es.banner = nil }
}

// Compact renders every list property as a single statement line.
func Compact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
