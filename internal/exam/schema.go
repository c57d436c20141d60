package exam

import "ielts-coach/internal/gemini"

// Response schemas for the native structured-generation path, built once and
// reused across calls.

var criterionSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"score":   {Type: gemini.TypeNumber},
		"comment": {Type: gemini.TypeString},
	},
	Required: []string{"score", "comment"},
}

var writingSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"bandScore":         {Type: gemini.TypeNumber, Description: "Overall band score (0-9)"},
		"taskResponse":      criterionSchema,
		"coherenceCohesion": criterionSchema,
		"lexicalResource":   criterionSchema,
		"grammaticalRange":  criterionSchema,
		"correctedVersion":  {Type: gemini.TypeString, Description: "A rewritten version of the essay improving errors."},
		"generalAdvice":     {Type: gemini.TypeString, Description: "Summary advice for improvement."},
	},
	Required: []string{
		"bandScore", "taskResponse", "coherenceCohesion",
		"lexicalResource", "grammaticalRange", "correctedVersion", "generalAdvice",
	},
}

var readingSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"title":   {Type: gemini.TypeString},
		"passage": {Type: gemini.TypeString, Description: "A structured IELTS Academic reading passage, approx 300 words."},
		"questions": {
			Type: gemini.TypeArray,
			Items: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"id":            {Type: gemini.TypeInteger},
					"question":      {Type: gemini.TypeString},
					"options":       {Type: gemini.TypeArray, Items: &gemini.Schema{Type: gemini.TypeString}, Description: "Array of 4 options"},
					"correctAnswer": {Type: gemini.TypeInteger, Description: "Index of correct option (0-3)"},
				},
				Required: []string{"id", "question", "options", "correctAnswer"},
			},
		},
	},
	Required: []string{"title", "passage", "questions"},
}
