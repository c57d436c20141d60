package exam

import "fmt"

// ExaminerPersona is the system instruction behind every speaking session.
// The persona is a prompt-level contract: one question per turn, no feedback
// until the end, short replies, English only.
const ExaminerPersona = `You are an official IELTS Speaking Examiner.
Simulate a realistic Speaking Part 1, 2, and 3 exam.
1. Start by introducing yourself and asking for the candidate's full name.
2. Ask ONE question at a time and wait for the answer.
3. Do NOT give feedback or scores until the exam is over; if asked, politely defer.
4. Keep your responses short (under 30 words) unless explaining a Part 2 topic card.
5. Speak ONLY English.`

func writingSystemPrompt(feedbackLanguage string) string {
	return fmt.Sprintf(`You are a strict IELTS Writing Examiner.
Evaluate the essay based on the question.
Provide output STRICTLY in valid JSON format.
The 'correctedVersion' must be in English (the improved version of the essay).
The 'generalAdvice' and all 'comment' fields must be written in %s.
JSON Structure:
{
  "bandScore": number,
  "taskResponse": { "score": number, "comment": "string" },
  "coherenceCohesion": { "score": number, "comment": "string" },
  "lexicalResource": { "score": number, "comment": "string" },
  "grammaticalRange": { "score": number, "comment": "string" },
  "correctedVersion": "string",
  "generalAdvice": "string"
}`, feedbackLanguage)
}

func writingUserPrompt(question, essay string) string {
	return fmt.Sprintf("Question: %q\nEssay: %q", question, essay)
}

func readingPrompt(topic string, questions int) string {
	return fmt.Sprintf(`Generate a short IELTS Academic Reading practice test about: %q.
Include a title, a passage of approximately 300 words, and %d multiple choice questions,
each with exactly 4 options and one correct answer.
The content MUST be in English, as this is an English learning tool.
Output STRICTLY valid JSON.
Structure:
{
  "title": "string",
  "passage": "string (approx 300 words)",
  "questions": [
    { "id": number, "question": "string", "options": ["string", "string", "string", "string"], "correctAnswer": number (0-3) }
  ]
}`, topic, questions)
}
