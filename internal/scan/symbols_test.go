package scan

import (
	"fmt"
	"strings"
	"testing"

	"guardian/internal/snapshot"
)

func TestExtractSymbolsPython(t *testing.T) {
	content := `
def load_config(path):
    pass

async def fetch_data(url):
    pass

def _private_helper():
    pass

class Widget:
    def render(self):
        pass
`
	got := ExtractSymbols(content, "python")
	want := []string{"load_config", "fetch_data", "render"}
	assertSymbols(t, got, want)
}

func TestExtractSymbolsJavaScript(t *testing.T) {
	content := `
function initApp() {}

const handleClick = (e) => { console.log(e) }

export function renderPage(props) {}

if (ready) {
    start()
}

for (const x of items) {
}
`
	got := ExtractSymbols(content, "javascript")
	for _, kw := range []string{"if", "for"} {
		for _, s := range got {
			if s == kw {
				t.Errorf("control-flow keyword %q extracted as symbol", kw)
			}
		}
	}
	for _, want := range []string{"initApp", "handleClick", "renderPage"} {
		if !containsString(got, want) {
			t.Errorf("symbol %q not extracted, got %v", want, got)
		}
	}
}

func TestExtractSymbolsGo(t *testing.T) {
	content := `
func Parse(input string) error { return nil }

func (s *Server) Start() error { return nil }

func helper() {}
`
	got := ExtractSymbols(content, "go")
	assertSymbols(t, got, []string{"Parse", "Start", "helper"})
}

func TestExtractSymbolsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < snapshot.MaxSymbols+5; i++ {
		fmt.Fprintf(&b, "def handler_%d():\n    pass\n\n", i)
	}
	got := ExtractSymbols(b.String(), "python")
	if len(got) != snapshot.MaxSymbols {
		t.Errorf("got %d symbols, want cap of %d", len(got), snapshot.MaxSymbols)
	}
}

func TestExtractSymbolsDedupe(t *testing.T) {
	content := "def setup():\n    pass\n\ndef setup():\n    pass\n"
	got := ExtractSymbols(content, "python")
	if len(got) != 1 || got[0] != "setup" {
		t.Errorf("duplicates not collapsed: %v", got)
	}
}

func TestExtractSymbolsUnsupportedLanguage(t *testing.T) {
	if got := ExtractSymbols("def x(): pass", "cobol"); got != nil {
		t.Errorf("unsupported language yielded symbols: %v", got)
	}
}

func TestLanguageForExt(t *testing.T) {
	if got := LanguageForExt(".py"); got != "python" {
		t.Errorf("LanguageForExt(.py) = %q", got)
	}
	if got := LanguageForExt(".tsx"); got != "javascript" {
		t.Errorf("LanguageForExt(.tsx) = %q", got)
	}
	if got := LanguageForExt(".java"); got != "" {
		t.Errorf("LanguageForExt(.java) = %q, want empty", got)
	}
}

func assertSymbols(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
