package shell

import (
	"strings"
	"testing"
)

func TestWrapperArgv(t *testing.T) {
	got := wrapperArgv("/usr/bin/rlwrap", []string{"toy", "--verbosity", "3"})
	want := "/usr/bin/rlwrap toy --verbosity 3 --no-wrapper"
	if s := strings.Join(got, " "); s != want {
		t.Fatalf("wrapperArgv = %q, want %q", s, want)
	}
}

func TestTryWrapper_SkipsUnresolvableCandidates(t *testing.T) {
	code, ok := tryWrapper([]string{"glot-wrapper-that-does-not-exist"}, []string{"toy"})
	if ok || code != 0 {
		t.Fatalf("tryWrapper = %d, %v, want a declined takeover", code, ok)
	}
	if code, ok := tryWrapper(nil, []string{"toy"}); ok || code != 0 {
		t.Fatalf("tryWrapper with no candidates = %d, %v, want a declined takeover", code, ok)
	}
}
