package hpack

import "github.com/cespare/xxhash/v2"

// Static table, RFC 7541 Appendix A: an immutable, process-wide ordered
// list of 61 (name, value) pairs. Index 0 is unused; valid indices run
// 1..=61.

// HeaderField is an ordered (name, value) pair. Both are opaque byte
// sequences; this package never case-folds or validates them against
// HTTP grammar.
type HeaderField struct {
	Name  string
	Value string
}

// entrySize is len(name) + len(value) + 32, the RFC 7541 Section 4.1
// overhead accounting used by both the dynamic table's budget and the
// oversize check in push.
func entrySize(name, value string) uint32 {
	return uint32(len(name) + len(value) + 32)
}

// StaticEntry is a closed enumeration over the 61 static-table rows.
// Where the RFC lists more than one row for the same name (":method",
// ":path", ":scheme", ":status"), an unqualified alias resolves to the
// RFC's first, most commonly used row.
type StaticEntry int

const (
	_ StaticEntry = iota
	EntryAuthority
	EntryMethodGet
	EntryMethodPost
	EntryPathRoot
	EntryPathIndexHTML
	EntrySchemeHTTP
	EntrySchemeHTTPS
	EntryStatus200
	EntryStatus204
	EntryStatus206
	EntryStatus304
	EntryStatus400
	EntryStatus404
	EntryStatus500
	EntryAcceptCharset
	EntryAcceptEncoding
	EntryAcceptLanguage
	EntryAcceptRanges
	EntryAccept
	EntryAccessControlAllowOrigin
	EntryAge
	EntryAllow
	EntryAuthorization
	EntryCacheControl
	EntryContentDisposition
	EntryContentEncoding
	EntryContentLanguage
	EntryContentLength
	EntryContentLocation
	EntryContentRange
	EntryContentType
	EntryCookie
	EntryDate
	EntryETag
	EntryExpect
	EntryExpires
	EntryFrom
	EntryHost
	EntryIfMatch
	EntryIfModifiedSince
	EntryIfNoneMatch
	EntryIfRange
	EntryIfUnmodifiedSince
	EntryLastModified
	EntryLink
	EntryLocation
	EntryMaxForwards
	EntryProxyAuthenticate
	EntryProxyAuthorization
	EntryRange
	EntryReferer
	EntryRefresh
	EntryRetryAfter
	EntryServer
	EntrySetCookie
	EntryStrictTransportSecurity
	EntryTransferEncoding
	EntryUserAgent
	EntryVary
	EntryVia
	EntryWWWAuthenticate
)

// Aliases for the most common default of each multi-row name:
// Method -> ":method GET", Scheme -> ":scheme http", Status -> ":status 200".
const (
	Method = EntryMethodGet
	Path   = EntryPathRoot
	Scheme = EntrySchemeHTTP
	Status = EntryStatus200
)

// StaticTableSize is the number of entries in the static table.
const StaticTableSize = 61

var staticTable = [StaticTableSize + 1]HeaderField{
	{},
	{":authority", ""},
	{":method", "GET"},
	{":method", "POST"},
	{":path", "/"},
	{":path", "/index.html"},
	{":scheme", "http"},
	{":scheme", "https"},
	{":status", "200"},
	{":status", "204"},
	{":status", "206"},
	{":status", "304"},
	{":status", "400"},
	{":status", "404"},
	{":status", "500"},
	{"accept-charset", ""},
	{"accept-encoding", "gzip, deflate"},
	{"accept-language", ""},
	{"accept-ranges", ""},
	{"accept", ""},
	{"access-control-allow-origin", ""},
	{"age", ""},
	{"allow", ""},
	{"authorization", ""},
	{"cache-control", ""},
	{"content-disposition", ""},
	{"content-encoding", ""},
	{"content-language", ""},
	{"content-length", ""},
	{"content-location", ""},
	{"content-range", ""},
	{"content-type", ""},
	{"cookie", ""},
	{"date", ""},
	{"etag", ""},
	{"expect", ""},
	{"expires", ""},
	{"from", ""},
	{"host", ""},
	{"if-match", ""},
	{"if-modified-since", ""},
	{"if-none-match", ""},
	{"if-range", ""},
	{"if-unmodified-since", ""},
	{"last-modified", ""},
	{"link", ""},
	{"location", ""},
	{"max-forwards", ""},
	{"proxy-authenticate", ""},
	{"proxy-authorization", ""},
	{"range", ""},
	{"referer", ""},
	{"refresh", ""},
	{"retry-after", ""},
	{"server", ""},
	{"set-cookie", ""},
	{"strict-transport-security", ""},
	{"transfer-encoding", ""},
	{"user-agent", ""},
	{"vary", ""},
	{"via", ""},
	{"www-authenticate", ""},
}

// GetStaticEntry returns the entry for a symbolic StaticEntry value.
func GetStaticEntry(e StaticEntry) HeaderField {
	return staticTable[e]
}

// getStaticByIndex returns the static table row at the given 1-61 index.
func getStaticByIndex(index int) (HeaderField, bool) {
	if index < 1 || index > StaticTableSize {
		return HeaderField{}, false
	}
	return staticTable[index], true
}

type staticLookupEntry struct {
	hf  HeaderField
	idx int
}

// staticNameIndex and staticExactIndex are keyed by an xxhash digest of
// the name (resp. name+NUL+value) rather than the raw Go string, so a
// long cookie or set-cookie value isn't rehashed through the generic map
// hash on every encoder Find call. Each bucket keeps the source entries
// alongside the hash so a collision can't produce a wrong match.
var (
	staticNameIndex  = map[uint64][]staticLookupEntry{}
	staticExactIndex = map[uint64][]staticLookupEntry{}
)

func hashKey(parts ...string) uint64 {
	d := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			d.Write([]byte{0})
		}
		d.WriteString(p)
	}
	return d.Sum64()
}

func init() {
	for i := 1; i <= StaticTableSize; i++ {
		entry := staticTable[i]

		nameKey := hashKey(entry.Name)
		staticNameIndex[nameKey] = append(staticNameIndex[nameKey], staticLookupEntry{entry, i})

		if entry.Value != "" {
			exactKey := hashKey(entry.Name, entry.Value)
			staticExactIndex[exactKey] = append(staticExactIndex[exactKey], staticLookupEntry{entry, i})
		}
	}
}

// FindStaticIndex searches the static table for (name, value). exactMatch
// is true only when both name and value matched the same row; otherwise,
// if index is nonzero, only the name matched (the first such row by
// table order).
func FindStaticIndex(name, value string) (index int, exactMatch bool) {
	if value != "" {
		for _, e := range staticExactIndex[hashKey(name, value)] {
			if e.hf.Name == name && e.hf.Value == value {
				return e.idx, true
			}
		}
	}

	best := 0
	for _, e := range staticNameIndex[hashKey(name)] {
		if e.hf.Name != name {
			continue
		}
		if e.hf.Value == value {
			// Empty-value rows are not in staticExactIndex.
			return e.idx, true
		}
		if best == 0 || e.idx < best {
			best = e.idx
		}
	}
	return best, false
}
