package model

import (
	"regexp"
	"strconv"
	"strings"
)

// versionRE accepts PEP 440 style version strings with an optional "v" prefix:
// release segments, optional pre-release (a/b/rc), optional .post, optional
// .dev, optional +local build metadata.
var versionRE = regexp.MustCompile(`^v?(\d+(?:\.\d+)*)(?:(a|b|rc)(\d*))?(?:\.post(\d+))?(?:\.dev(\d+))?(?:\+([0-9a-z.\-_]+))?$`)

// unstableTagRE catches release tags that advertise instability in free-form
// ways version parsing cannot (nightly builds, enterprise variants, etc.)
var unstableTagRE = regexp.MustCompile(`rc\d*|alpha|beta|dev|nightly|preview|canary|pre|ent`)

// Version is a parsed version identifier. Only the fields needed for
// precedence ordering and stability checks are retained.
type Version struct {
	Original string
	Release  []int
	Pre      string // "a", "b" or "rc"; empty when not a pre-release
	PreNum   int
	Post     int // -1 when absent
	Dev      int // -1 when absent
	Local    string
}

// ParseVersion parses a version string. The second return value is false
// when the string is not a recognizable version identifier.
func ParseVersion(s string) (*Version, bool) {
	m := versionRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return nil, false
	}

	v := &Version{
		Original: s,
		Pre:      m[2],
		Post:     -1,
		Dev:      -1,
		Local:    m[6],
	}
	for _, seg := range strings.Split(m[1], ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, false
		}
		v.Release = append(v.Release, n)
	}
	if m[2] != "" && m[3] != "" {
		v.PreNum, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		v.Post, _ = strconv.Atoi(m[4])
	}
	if m[5] != "" {
		v.Dev, _ = strconv.Atoi(m[5])
	}
	return v, true
}

// IsStable reports whether the version carries no pre-release, dev, post or
// local build marker.
func (v *Version) IsStable() bool {
	return v.Pre == "" && v.Post < 0 && v.Dev < 0 && v.Local == ""
}

// Compare orders versions by numeric component-wise precedence of the
// release segments, then by phase (dev < pre-release < final < post).
// String ordering is never used, so "2.10.0" sorts above "2.9.0".
func Compare(a, b *Version) int {
	n := len(a.Release)
	if len(b.Release) > n {
		n = len(b.Release)
	}
	for i := 0; i < n; i++ {
		if c := segment(a, i) - segment(b, i); c != 0 {
			return sign(c)
		}
	}

	if c := a.phase() - b.phase(); c != 0 {
		return sign(c)
	}
	if a.Pre != "" {
		if c := strings.Compare(a.Pre, b.Pre); c != 0 {
			return c
		}
		if c := a.PreNum - b.PreNum; c != 0 {
			return sign(c)
		}
	}
	if a.Post >= 0 {
		return sign(a.Post - b.Post)
	}
	return 0
}

// phase ranks the release phase per version-identifier precedence rules.
func (v *Version) phase() int {
	switch {
	case v.Dev >= 0 && v.Pre == "":
		return 0
	case v.Pre != "":
		return 1
	case v.Post >= 0:
		return 3
	default:
		return 2
	}
}

func segment(v *Version, i int) int {
	if i >= len(v.Release) {
		return 0
	}
	return v.Release[i]
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// IsStableTag reports whether a release tag looks like a stable version.
// Tags mentioning pre-release or variant markers are rejected outright;
// parseable tags defer to IsStable; for anything else a tag is accepted
// when it at least starts like a version.
func IsStableTag(tag string) bool {
	if tag == "" {
		return false
	}
	lower := strings.ToLower(tag)

	if unstableTagRE.MatchString(lower) {
		return false
	}
	if v, ok := ParseVersion(lower); ok {
		return v.IsStable()
	}
	return lower[0] >= '0' && lower[0] <= '9' || strings.HasPrefix(lower, "v")
}
