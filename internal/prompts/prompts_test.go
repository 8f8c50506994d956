package prompts

import (
	"strings"
	"testing"
)

func TestAllPromptsRegistered(t *testing.T) {
	want := []PromptName{
		PromptKnowledgeAssistant, PromptHyperlocalStory, PromptStoryVisualPrompt, PromptLessonPlan,
		PromptDifferentiatedWorksheets, PromptAskLaterAnswer, PromptRolePlayScript,
		PromptVisualAidSketch, PromptAskLaterImage, PromptHyperlocalImage,
	}
	got := map[PromptName]bool{}
	for _, n := range Names() {
		got[n] = true
	}
	for _, n := range want {
		if !got[n] {
			t.Fatalf("prompt %s not registered", n)
		}
	}
}

func TestBuildKnowledgeAssistant(t *testing.T) {
	p, err := Build(PromptKnowledgeAssistant, Input{Question: "Why do we sweat?", Language: "Hindi"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !p.Structured() || p.SchemaName != "knowledge_answer" {
		t.Fatalf("expected structured prompt, got %+v", p)
	}
	if !strings.Contains(p.User, "Question: Why do we sweat?") || !strings.Contains(p.User, "Language: Hindi") {
		t.Fatalf("user=%q", p.User)
	}
	if !strings.Contains(p.System, "analogy") {
		t.Fatalf("system=%q", p.System)
	}
}

func TestBuildValidates(t *testing.T) {
	if _, err := Build(PromptKnowledgeAssistant, Input{Language: "Hindi"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := Build("nope", Input{}); err == nil {
		t.Fatalf("expected unknown prompt error")
	}
}

func TestRolePlayConditionalSections(t *testing.T) {
	with, err := Build(PromptRolePlayScript, Input{Topic: "Buying vegetables", Language: "English", Characters: "Cashier, Customer", Setting: "A market"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(with.User, "Characters: Cashier, Customer") || !strings.Contains(with.User, "Context: A market") {
		t.Fatalf("user=%q", with.User)
	}
	if strings.Contains(with.User, "invent a simple") || strings.Contains(with.User, "create an appropriate context") {
		t.Fatalf("fallback instructions should be omitted: %q", with.User)
	}
	if with.Structured() {
		t.Fatalf("role-play script is plain text")
	}

	without, err := Build(PromptRolePlayScript, Input{Topic: "Buying vegetables", Language: "English"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(without.User, "Characters:") || strings.Contains(without.User, "Context:") {
		t.Fatalf("user=%q", without.User)
	}
	if !strings.Contains(without.User, "invent a simple and relevant set of characters") ||
		!strings.Contains(without.User, "create an appropriate context") {
		t.Fatalf("user=%q", without.User)
	}
}

func TestHyperlocalImageForbidsText(t *testing.T) {
	p, err := Build(PromptHyperlocalImage, Input{VisualPrompt: "A girl feeding a cow"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(p.User, "A girl feeding a cow.") || !strings.Contains(p.User, "Do not include any text") {
		t.Fatalf("user=%q", p.User)
	}
}

func TestFingerprintStable(t *testing.T) {
	a, _ := Build(PromptLessonPlan, Input{WeeklySyllabus: "Fractions"})
	b, _ := Build(PromptLessonPlan, Input{WeeklySyllabus: "Fractions"})
	c, _ := Build(PromptLessonPlan, Input{WeeklySyllabus: "Decimals"})
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("fingerprint not stable")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("fingerprint should differ by input")
	}
	if len(a.Fingerprint()) != 64 {
		t.Fatalf("len=%d", len(a.Fingerprint()))
	}
}

func TestMakeTemplateRejects(t *testing.T) {
	cases := []Spec{
		{Version: 1, User: "x"},
		{Name: "a", User: "x"},
		{Name: "a", Version: 1, Schema: AnswerSchema, User: "x"},
		{Name: "a", Version: 1},
		{Name: "a", Version: 1, User: "{{.Nope"},
	}
	for i, s := range cases {
		if _, err := MakeTemplate(s); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
