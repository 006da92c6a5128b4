package textproc

import (
	"strings"
	"testing"
)

func TestCleanForSpeech_CollapsesWhitespace(t *testing.T) {
	got := CleanForSpeech("hello    world\n\n\n\ngoodbye")
	want := "hello world\n\ngoodbye"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeech_CapsPunctuationRuns(t *testing.T) {
	got := CleanForSpeech("wait......... what")
	if strings.Contains(got, "....") {
		t.Errorf("CleanForSpeech() = %q, ellipsis not capped", got)
	}

	got = CleanForSpeech("section ------------ break")
	if strings.Contains(got, "----") {
		t.Errorf("CleanForSpeech() = %q, dash run not capped", got)
	}
}

func TestCleanForSpeech_StripsWebArtifacts(t *testing.T) {
	in := "Read the paper at https://example.com/paper.pdf or email author@example.com. Thanks @handle for the tip."
	got := CleanForSpeech(in)

	for _, artifact := range []string{"https://", "author@example.com", "@handle"} {
		if strings.Contains(got, artifact) {
			t.Errorf("CleanForSpeech() kept %q in %q", artifact, got)
		}
	}
}

func TestCleanForSpeech_RemovesBoilerplate(t *testing.T) {
	in := "Great article body. Share this article Subscribe to newsletter More body text."
	got := CleanForSpeech(in)

	if strings.Contains(strings.ToLower(got), "share this article") {
		t.Errorf("CleanForSpeech() kept boilerplate: %q", got)
	}
	if !strings.Contains(got, "Great article body.") {
		t.Errorf("CleanForSpeech() lost body text: %q", got)
	}
}

func TestCleanForSpeech_FoldsShoutingCase(t *testing.T) {
	got := CleanForSpeech("this is IMPORTANT information")
	if strings.Contains(got, "IMPORTANT") {
		t.Errorf("CleanForSpeech() = %q, all-caps token not folded", got)
	}
	if !strings.Contains(got, "Important") {
		t.Errorf("CleanForSpeech() = %q, want folded token Important", got)
	}
}

func TestFilterNavigationLines(t *testing.T) {
	body := strings.Join([]string{
		"Home",
		"This is a real paragraph of body text long enough to keep around.",
		"Home | About | Contact | Sitemap | Press",
		"Copyright 2026 Example Corp, all rights reserved.",
		"ANNOUNCEMENT OF THE DECADE",
		"Another genuine sentence that carries actual readable content.",
	}, "\n")

	got := FilterNavigationLines(body)
	lines := strings.Split(got, "\n")

	if len(lines) != 2 {
		t.Fatalf("FilterNavigationLines() kept %d lines, want 2: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "real paragraph") {
		t.Errorf("first kept line = %q, want the body paragraph", lines[0])
	}
	if !strings.Contains(lines[1], "genuine sentence") {
		t.Errorf("second kept line = %q, want the second body paragraph", lines[1])
	}
}

func TestFilterNavigationLines_DropsShortLines(t *testing.T) {
	got := FilterNavigationLines("short\ntiny line here\n")
	if got != "" {
		t.Errorf("FilterNavigationLines() = %q, want empty for short-only input", got)
	}
}
