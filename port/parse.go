package port

import (
	"sort"
	"strconv"
	"strings"
)

// ParseSpec parses a port specification string and returns a sorted,
// deduplicated slice of ports. Supported forms:
//   - single: "22"
//   - list: "22,80,443"
//   - range: "1-1024"
//   - mixed: "22,80,8000-8100"
//
// ParseSpec is pure: the same input always yields the same result, and the
// order of comma-separated tokens does not affect the output.
func ParseSpec(spec string) ([]uint16, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, &ParseError{Reason: ReasonEmptyResult}
	}
	seen := make(map[int]struct{})
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, &ParseError{Reason: ReasonMalformed, Token: tok}
		}
		lo, hi, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		for p := lo; p <= hi; p++ {
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, &ParseError{Reason: ReasonEmptyResult}
	}
	out := make([]uint16, 0, len(seen))
	for p := range seen {
		out = append(out, uint16(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// parseToken parses a single "N" or "N-M" token into an inclusive bound pair.
func parseToken(tok string) (lo, hi int, err error) {
	if i := strings.IndexByte(tok, '-'); i >= 0 {
		lo, err = parsePort(tok, tok[:i])
		if err != nil {
			return 0, 0, err
		}
		hi, err = parsePort(tok, tok[i+1:])
		if err != nil {
			return 0, 0, err
		}
		if lo > hi {
			return 0, 0, &ParseError{Reason: ReasonMalformed, Token: tok}
		}
		return lo, hi, nil
	}
	lo, err = parsePort(tok, tok)
	if err != nil {
		return 0, 0, err
	}
	return lo, lo, nil
}

func parsePort(tok, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Reason: ReasonMalformed, Token: tok}
	}
	if v < 1 || v > 65535 {
		return 0, &ParseError{Reason: ReasonOutOfRange, Token: tok}
	}
	return v, nil
}

// DefaultPorts returns the common ports scanned when the caller supplies no
// spec. Engine callers that require an explicit spec should use ParseSpec.
func DefaultPorts() []uint16 {
	return []uint16{21, 22, 23, 25, 53, 80, 110, 139, 143, 443, 445, 3306, 3389, 8080}
}
