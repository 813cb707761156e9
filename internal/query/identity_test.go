package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateFromContext(t *testing.T) {
	ref, ok := LocateFromContext(RequestContext{PageID: "01ABC"})
	assert.True(t, ok)
	assert.Equal(t, "01ABC", ref)

	_, ok = LocateFromContext(RequestContext{})
	assert.False(t, ok)
}

func TestLocateFromRoute(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantRef string
		wantOK  bool
	}{
		{"page route", "/pages/front", "front", true},
		{"page route with suffix", "/pages/front/edit", "front", true},
		{"ulid ref", "/pages/01HXYZABCDEF", "01HXYZABCDEF", true},
		{"other route", "/posts/3", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := LocateFromRoute(RequestContext{RoutePath: tt.path})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestLocateFromReferer(t *testing.T) {
	ref, ok := LocateFromReferer(RequestContext{Referer: "http://localhost:8080/pages/front?x=1"})
	assert.True(t, ok)
	assert.Equal(t, "front", ref)

	_, ok = LocateFromReferer(RequestContext{Referer: "http://localhost:8080/about"})
	assert.False(t, ok)

	_, ok = LocateFromReferer(RequestContext{})
	assert.False(t, ok)

	_, ok = LocateFromReferer(RequestContext{Referer: "://not a url"})
	assert.False(t, ok)
}

func TestDefaultLocators_Precedence(t *testing.T) {
	rc := RequestContext{
		PageID:    "explicit",
		RoutePath: "/pages/from-route",
		Referer:   "http://x/pages/from-referer",
	}

	var refs []string
	for _, locate := range DefaultLocators() {
		if ref, ok := locate(rc); ok {
			refs = append(refs, ref)
		}
	}

	assert.Equal(t, []string{"explicit", "from-route", "from-referer"}, refs)
}
