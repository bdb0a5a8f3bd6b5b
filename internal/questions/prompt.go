package questions

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyy/internal/catalog"
)

const systemPrompt = `You are an experienced teacher writing practice questions for students.

Rules:
- Every question must be self-contained and have exactly one correct answer.
- Ensure mathematical accuracy for Maths questions.
- Include practical examples for Coding questions.
- Cover fundamental concepts for Science questions.
- Steps explain the solution one step at a time, each starting with "Step N:".
- Keep answers short so a student can type them exactly.`

// difficultyGuideline describes what each difficulty should feel like.
func difficultyGuideline(d catalog.Difficulty) string {
	switch d {
	case catalog.DifficultyEasy:
		return "Basic concepts, straightforward"
	case catalog.DifficultyMedium:
		return "Moderate complexity, some reasoning required"
	default:
		return "Advanced concepts, complex problem-solving"
	}
}

// buildGenerationPrompt renders the user message for a generation request.
func buildGenerationPrompt(req GenerateRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d educational questions for a %s student studying %s.\n\n",
		req.Count, req.EducationLevel, req.Subject)

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "- Education Level: %s\n", req.EducationLevel)
	fmt.Fprintf(&b, "- Question Type: %s\n", req.QuestionType)
	fmt.Fprintf(&b, "- Difficulty: %s\n", req.Difficulty)
	b.WriteString("- Format: a JSON object {\"problems\": [...]} holding the question objects\n\n")

	b.WriteString("Each question object has these fields:\n")
	b.WriteString("- id: unique kebab-case id\n")
	b.WriteString("- title: brief question title\n")
	b.WriteString("- statement: the actual question text\n")
	b.WriteString("- placeholder: hint text for the answer input\n")
	b.WriteString("- answer: the correct answer\n")
	b.WriteString("- steps: worked solution steps\n")
	fmt.Fprintf(&b, "- difficulty: %q\n", req.Difficulty)
	b.WriteString("- tags: relevant tags\n")
	b.WriteString("- acceptance: estimated percent of students answering correctly, e.g. 75\n")
	fmt.Fprintf(&b, "- questionType: %q\n", req.QuestionType)
	fmt.Fprintf(&b, "- educationLevel: [%q]\n", req.EducationLevel)
	if req.QuestionType == catalog.TypeMCQ {
		b.WriteString("- options: 4 options, one of which is exactly the answer\n")
	} else {
		b.WriteString("- options: empty array\n")
	}
	if req.QuestionType == catalog.TypeComprehension {
		b.WriteString("- passage: a short reading passage the question is about\n")
	} else {
		b.WriteString("- passage: empty string\n")
	}

	b.WriteString("\nGuidelines:\n")
	fmt.Fprintf(&b, "- Make questions age-appropriate for %s level\n", req.EducationLevel)
	switch req.QuestionType {
	case catalog.TypeMCQ:
		b.WriteString("- For MCQ: include 4 options with one correct answer\n")
	case catalog.TypeComprehension:
		b.WriteString("- For Comprehension: include a short passage and a question about it\n")
	case catalog.TypeInteger:
		b.WriteString("- For Integer: questions requiring numerical answers\n")
	case catalog.TypeMixed:
		b.WriteString("- Mixed: vary between multiple choice, comprehension and numerical questions\n")
	}
	fmt.Fprintf(&b, "- Difficulty %s: %s\n\n", req.Difficulty, difficultyGuideline(req.Difficulty))

	b.WriteString("Return ONLY the JSON object, no additional text.")
	return b.String()
}

// buildHintPrompt renders the request for a hint on p.
func buildHintPrompt(p catalog.Problem) string {
	var b strings.Builder

	b.WriteString("You are an educational AI tutor helping a student with the following problem:\n\n")
	fmt.Fprintf(&b, "Problem: %s\n", p.Title)
	fmt.Fprintf(&b, "Statement: %s\n", p.Statement)
	if p.Passage != "" {
		fmt.Fprintf(&b, "Passage: %s\n", p.Passage)
	}
	if p.IsMCQ() {
		fmt.Fprintf(&b, "Options: %s\n", strings.Join(p.Options, ", "))
	}
	fmt.Fprintf(&b, "Difficulty: %s\n\n", p.Difficulty)

	b.WriteString("The student is stuck and needs a hint. Provide a helpful hint WITHOUT giving away the direct answer. ")
	b.WriteString("Guide them towards understanding the concept. Keep your response concise (2-3 sentences max).")
	return b.String()
}
