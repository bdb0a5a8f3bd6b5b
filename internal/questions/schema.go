package questions

import "github.com/abhisek/studyy/internal/llm"

// problemItemDefinition is the JSON schema requested for one generated
// problem. Every field is required so the schema is accepted by strict
// structured output modes; options and passage are empty when not
// applicable.
// difficulty, questionType and educationLevel are free strings because
// they are overwritten with the requested values after parsing.
var problemItemDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":        "string",
			"description": "Short unique kebab-case identifier, e.g. \"photosynthesis-inputs\"",
		},
		"title": map[string]any{
			"type":        "string",
			"description": "Brief question title",
		},
		"statement": map[string]any{
			"type":        "string",
			"description": "The actual question text shown to the student",
		},
		"placeholder": map[string]any{
			"type":        "string",
			"description": "Hint text for the answer input, e.g. \"Type a number\"",
		},
		"answer": map[string]any{
			"type":        "string",
			"description": "The correct answer. For MCQ, the exact text of the correct option.",
		},
		"steps": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Worked solution, one step per entry",
		},
		"difficulty": map[string]any{
			"type": "string",
		},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"acceptance": map[string]any{
			"type":        "integer",
			"minimum":     0,
			"maximum":     100,
			"description": "Estimated percentage of students who answer correctly",
		},
		"questionType": map[string]any{
			"type": "string",
		},
		"educationLevel": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Exactly 4 options for MCQ. Empty array otherwise.",
		},
		"passage": map[string]any{
			"type":        "string",
			"description": "Reading passage for Comprehension questions. Empty string otherwise.",
		},
	},
	"required": []any{
		"id", "title", "statement", "placeholder", "answer", "steps", "difficulty",
		"tags", "acceptance", "questionType", "educationLevel", "options", "passage",
	},
	"additionalProperties": false,
}

// problemItemAcceptDefinition is what a generated item must satisfy to be
// used. Only title, statement, answer and steps are mandatory; the id is
// assigned when absent. options are required for MCQ items and passage
// for Comprehension items.
var problemItemAcceptDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":             map[string]any{"type": "string"},
		"title":          map[string]any{"type": "string", "minLength": 1},
		"statement":      map[string]any{"type": "string", "minLength": 1},
		"placeholder":    map[string]any{"type": "string"},
		"answer":         map[string]any{"type": "string", "minLength": 1},
		"steps":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"difficulty":     map[string]any{"type": "string"},
		"tags":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"acceptance":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"questionType":   map[string]any{"type": "string"},
		"educationLevel": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"passage":        map[string]any{"type": "string"},
	},
	"required": []any{"title", "statement", "answer", "steps"},
	"allOf": []any{
		requiredWhenType("^[Mm][Cc][Qq]$", "options", map[string]any{"type": "array", "minItems": 2}),
		requiredWhenType("^[Cc]omprehension$", "passage", map[string]any{"type": "string", "minLength": 1}),
	},
}

// requiredWhenType makes field mandatory, matching def, for items whose
// questionType matches pattern.
func requiredWhenType(pattern, field string, def map[string]any) map[string]any {
	return map[string]any{
		"if": map[string]any{
			"properties": map[string]any{"questionType": map[string]any{"pattern": pattern}},
			"required":   []any{"questionType"},
		},
		"then": map[string]any{
			"properties": map[string]any{field: def},
			"required":   []any{field},
		},
	}
}

// ProblemItemSchema validates a single generated problem before it is used.
var ProblemItemSchema = &llm.Schema{
	Name:        "problem-item",
	Description: "A single practice problem with answer and worked steps",
	Definition:  problemItemAcceptDefinition,
}

// ProblemSetSchema is the structured output requested from the provider.
// It is Loose: providers hand back any well-formed JSON and Generate
// checks each item against ProblemItemSchema, so a bare array or an item
// without an id is still usable.
var ProblemSetSchema = &llm.Schema{
	Name:        "problem-set",
	Description: "A batch of practice problems for one subject, level, type and difficulty",
	Loose:       true,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type":  "array",
				"items": problemItemDefinition,
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}
