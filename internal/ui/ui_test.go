package ui

import (
	"strings"
	"testing"

	"github.com/modu-ai/stackgen/internal/summary"
)

func plainTheme() *Theme {
	return &Theme{NoColor: true}
}

func TestHeadlessManager_Force(t *testing.T) {
	hm := NewHeadlessManager()

	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("forced headless should report true")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("forced interactive should report false")
	}
	hm.ClearForce()
	if hm.forced != nil {
		t.Error("ClearForce should remove the override")
	}
}

func TestNewTheme_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !NewTheme(ThemeConfig{}).NoColor {
		t.Error("NO_COLOR should disable color")
	}
}

func TestRenderSummary_Plain(t *testing.T) {
	blocks := []summary.Block{
		{ID: summary.BlockSteps, Title: "Next steps:", Lines: []summary.Line{
			{Kind: summary.KindStep, Label: "1.", Text: "cd my-app"},
			{Kind: summary.KindStep, Label: "2.", Text: "bun dev"},
		}},
		{ID: summary.BlockNativeNote, Lines: []summary.Line{
			{Kind: summary.KindNote, Text: "check the server url"},
			{Kind: summary.KindDim, Text: "EXPO_PUBLIC_SERVER_URL=http://192.168.0.103:3000"},
		}},
		{ID: summary.BlockDatabase, Title: "Database commands:", Lines: []summary.Line{
			{Kind: summary.KindBullet, Label: "Apply schema", Text: "bun db:push"},
		}},
	}

	want := strings.Join([]string{
		"Next steps:",
		"1. cd my-app",
		"2. bun dev",
		"",
		"NOTE: check the server url",
		"EXPO_PUBLIC_SERVER_URL=http://192.168.0.103:3000",
		"",
		"Database commands:",
		"• Apply schema: bun db:push",
		"",
	}, "\n")

	if got := RenderSummary(plainTheme(), blocks); got != want {
		t.Errorf("RenderSummary() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteSuccess(t *testing.T) {
	var b strings.Builder
	WriteSuccess(&b, plainTheme(), "/tmp/my-app")
	if got := b.String(); got != "✔ Project created at /tmp/my-app\n" {
		t.Errorf("WriteSuccess() = %q", got)
	}
}

func TestRenderMarkdown_Plain(t *testing.T) {
	out, err := RenderMarkdown(plainTheme(), "# my-app\n\nRun `bun dev`.\n", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "my-app") || !strings.Contains(out, "bun dev") {
		t.Errorf("rendered markdown lost content: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("notty rendering should carry no escape sequences: %q", out)
	}
}
