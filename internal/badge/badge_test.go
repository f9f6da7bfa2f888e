package badge

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	svg := Render(Badge{Label: "build", Value: "passing", Color: "brightgreen"}, nil)
	for _, want := range []string{
		"<svg", ">build<", ">passing<", `fill="#4c1"`, `fill="#555"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q in:\n%s", want, svg)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	b := Badge{Label: "posts", Value: "12"}
	if Render(b, nil) != Render(b, nil) {
		t.Fatal("render not deterministic")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	svg := Render(Badge{Label: `a<b>&"c"`, Value: "v"}, nil)
	if strings.Contains(svg, "<b>") {
		t.Fatalf("unescaped markup leaked:\n%s", svg)
	}
	if !strings.Contains(svg, "a&lt;b&gt;&amp;&quot;c&quot;") {
		t.Fatalf("expected escaped label in:\n%s", svg)
	}
}

func TestWidthGrowsWithText(t *testing.T) {
	short := Render(Badge{Label: "a", Value: "b"}, nil)
	long := Render(Badge{Label: "a much longer label", Value: "b"}, nil)
	if len(long) <= len(short) {
		t.Fatal("expected wider badge for longer label")
	}
}

func TestPaletteResolve(t *testing.T) {
	p := DefaultPalette()
	cases := []struct{ in, want string }{
		{"red", "#e05d44"},
		{"#123456", "#123456"},
		{"", "#007ec6"},
		{"custom-name", "custom-name"},
	}
	for _, tc := range cases {
		if got := p.Resolve(tc.in); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExplicitPalette(t *testing.T) {
	p := Palette{"accent": "#abcdef"}
	svg := Render(Badge{Label: "l", Value: "v", Color: "accent"}, p)
	if !strings.Contains(svg, `fill="#abcdef"`) {
		t.Fatalf("palette ignored:\n%s", svg)
	}
}
