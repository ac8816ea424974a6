package hpack

// Configuration, as a functional-option surface for NewDecoder. NewEncoder
// takes no options.

type options struct {
	maxStringLength     int
	internCommonHeaders bool
}

func defaultOptions() options {
	return options{
		maxStringLength:     16 * 1024 * 1024,
		internCommonHeaders: true,
	}
}

// Option configures a Decoder at construction time.
type Option func(*options)

// WithMaxStringLength overrides the guard against a Huffman- or
// raw-length-prefixed string claiming to be larger than the caller is
// willing to allocate for a single literal.
func WithMaxStringLength(n int) Option {
	return func(o *options) { o.maxStringLength = n }
}

// WithHeaderInterning controls whether decoded literal names are
// deduplicated against a small built-in set of common header names.
func WithHeaderInterning(enabled bool) Option {
	return func(o *options) { o.internCommonHeaders = enabled }
}

// commonHeaderNames seeds the intern table with the header names most
// likely to repeat across header blocks on the same connection.
var commonHeaderNames = []string{
	":authority", ":method", ":path", ":scheme", ":status",
	"accept", "accept-encoding", "accept-language", "accept-ranges",
	"access-control-allow-credentials", "access-control-allow-headers",
	"access-control-allow-methods", "access-control-allow-origin",
	"access-control-expose-headers", "access-control-max-age",
	"age", "cache-control", "content-disposition", "content-encoding",
	"content-language", "content-length", "content-location", "content-range",
	"content-type", "cookie", "date", "etag", "expect", "expires", "from",
	"host", "if-match", "if-modified-since", "if-none-match", "if-range",
	"if-unmodified-since", "last-modified", "link", "location", "max-forwards",
	"proxy-authenticate", "proxy-authorization", "range", "referer", "refresh",
	"retry-after", "server", "set-cookie", "strict-transport-security",
	"transfer-encoding", "user-agent", "vary", "via", "www-authenticate",
}

func newCommonHeaderIntern() map[string]string {
	m := make(map[string]string, len(commonHeaderNames))
	for _, h := range commonHeaderNames {
		m[h] = h
	}
	return m
}
