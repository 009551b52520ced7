package caelum

import (
	"fmt"
	"strconv"
	"strings"
)

// route is one registered (verb, pattern, handler) entry.
type route struct {
	verb     string
	pattern  string
	segments []segment
	handler  HandlerFunc
}

type segKind int

const (
	segLiteral segKind = iota
	segString
	segInt
)

// segment is one slash-delimited piece of a pattern: a literal, a {name}
// string parameter, or a {name:int} integer parameter.
type segment struct {
	kind segKind
	text string // literal text, or the parameter name
}

func newRoute(verb, pattern string, h HandlerFunc) *route {
	segs, err := parsePattern(pattern)
	if err != nil {
		panic(fmt.Sprintf("caelum: %v", err))
	}
	return &route{verb: verb, pattern: pattern, segments: segs, handler: h}
}

// parsePattern splits a pattern into segments. Patterns must begin with
// "/"; "/" alone has zero segments. A parameter spans a whole segment and
// is written {name} or {name:int}.
func parsePattern(pattern string) ([]segment, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, fmt.Errorf("pattern %q must begin with /", pattern)
	}
	if pattern == "/" {
		return nil, nil
	}

	parts := strings.Split(pattern[1:], "/")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		switch {
		case part == "":
			return nil, fmt.Errorf("pattern %q has an empty segment", pattern)
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name, typ, typed := strings.Cut(part[1:len(part)-1], ":")
			if name == "" {
				return nil, fmt.Errorf("pattern %q has an unnamed parameter", pattern)
			}
			if strings.ContainsAny(name, "{}:") {
				return nil, fmt.Errorf("pattern %q has a malformed parameter name %q", pattern, name)
			}
			if !typed {
				segs = append(segs, segment{kind: segString, text: name})
				continue
			}
			if typ != "int" {
				return nil, fmt.Errorf("pattern %q has unknown parameter type %q", pattern, typ)
			}
			segs = append(segs, segment{kind: segInt, text: name})
		case strings.ContainsAny(part, "{}"):
			return nil, fmt.Errorf("pattern %q mixes literal and parameter text in segment %q", pattern, part)
		default:
			segs = append(segs, segment{kind: segLiteral, text: part})
		}
	}
	return segs, nil
}

// match reports whether path matches the route's pattern and returns the
// bound parameters. A typed parameter segment only matches text that
// parses as its type.
func (r *route) match(path string) (map[string]string, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}
	if path == "/" {
		return nil, len(r.segments) == 0
	}

	parts := strings.Split(path[1:], "/")
	if len(parts) != len(r.segments) {
		return nil, false
	}

	var params map[string]string
	bind := func(name, value string) {
		if params == nil {
			params = make(map[string]string, len(parts))
		}
		params[name] = value
	}

	for i, part := range parts {
		seg := r.segments[i]
		switch seg.kind {
		case segLiteral:
			if part != seg.text {
				return nil, false
			}
		case segString:
			if part == "" {
				return nil, false
			}
			bind(seg.text, part)
		case segInt:
			if _, err := strconv.ParseInt(part, 10, 64); err != nil {
				return nil, false
			}
			bind(seg.text, part)
		}
	}
	return params, true
}

// moreSpecific reports whether a beats b for a path both match: a literal
// segment outranks a parameter segment at the first position where the
// two differ. Parameter kinds rank equally regardless of type, so a false
// result keeps the earlier registration.
func moreSpecific(a, b []segment) bool {
	for i := range a {
		aLit := a[i].kind == segLiteral
		bLit := b[i].kind == segLiteral
		if aLit != bLit {
			return aLit
		}
	}
	return false
}

// sameShape reports whether two patterns are structurally identical: the
// same literals and the same parameter kinds position by position.
// Parameter names do not disambiguate; {a} collides with {b}, while
// {a:int} and {a} coexist.
func sameShape(a, b []segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].kind != b[i].kind {
			return false
		}
		if a[i].kind == segLiteral && a[i].text != b[i].text {
			return false
		}
	}
	return true
}
