package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/dto"
	"quizforge/internal/model"

	"gorm.io/datatypes"
)

const generationFormatInstructions = `Return a single JSON object with exactly one key, "questions", holding an array of question objects. Each question object has:
  - "text": the question statement
  - "kind": one of "multiple_choice", "short_answer", "essay"
  - "options": for multiple_choice only, an array of at least 2 answer options
  - "correct_answer": for multiple_choice only, the exact text of the correct option
  - "marks": a positive integer weight for the question

Wrap the JSON object in a ` + "```json" + ` fenced block and output NOTHING else: no prose, no explanation, no text outside the fence.`

// buildTopicPrompt is the deterministic template for topic-based generation.
func buildTopicPrompt(topic string, count int) string {
	var b strings.Builder
	b.WriteString("You are a quiz author for an e-learning platform.\n")
	fmt.Fprintf(&b, "Generate exactly %d quiz questions on the topic %q.\n", count, topic)
	b.WriteString("Mix question kinds where the topic allows it, favouring multiple choice.\n")
	b.WriteString("Multiple-choice options must be plausible distractors of similar length; the correct answer must not be obvious.\n\n")
	b.WriteString(generationFormatInstructions)
	return b.String()
}

// buildDocumentPrompt is the deterministic template for document-grounded
// generation. When the provider cannot ingest the document itself, the URL is
// included so the grounding source is at least named in the prompt.
func buildDocumentPrompt(documentURL, topic string, count int, attached bool) string {
	var b strings.Builder
	b.WriteString("You are a quiz author for an e-learning platform.\n")
	if attached {
		fmt.Fprintf(&b, "Generate exactly %d quiz questions grounded strictly in the attached document.\n", count)
	} else {
		fmt.Fprintf(&b, "Generate exactly %d quiz questions grounded strictly in the document at %s.\n", count, documentURL)
	}
	if topic != "" {
		fmt.Fprintf(&b, "Focus on the parts of the document concerning %q.\n", topic)
	}
	b.WriteString("Do not invent facts that the document does not state.\n\n")
	b.WriteString(generationFormatInstructions)
	return b.String()
}

// buildEvaluationPrompt enumerates every question with the learner's answer
// (or an explicit no-answer marker) and demands the structured grading JSON.
func buildEvaluationPrompt(quiz *model.Quiz, answers map[string]any) string {
	var b strings.Builder
	b.WriteString("You are an examiner grading a learner's quiz submission.\n")
	fmt.Fprintf(&b, "Quiz: %s\n", quiz.Title)
	fmt.Fprintf(&b, "Total marks available: %d\n\n", quiz.TotalMarks)

	for i, q := range quiz.Questions {
		fmt.Fprintf(&b, "Question %d (%s, %d marks): %s\n", i+1, q.Kind, q.Marks, q.Text)
		if q.Kind == model.KindMultipleChoice {
			for _, opt := range decodeStringList(q.Options) {
				fmt.Fprintf(&b, "  - %s\n", opt)
			}
			fmt.Fprintf(&b, "Correct answer: %s\n", q.CorrectAnswer)
		}
		if value, ok := answers[q.ID]; ok {
			fmt.Fprintf(&b, "Learner's answer: %v\n\n", value)
		} else {
			b.WriteString("Learner's answer: No answer provided.\n\n")
		}
	}

	for _, extra := range decodeStringList(quiz.EvaluationPrompts) {
		b.WriteString(extra)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `
Grade the submission. Return a single JSON object with exactly these keys:
  - "score": a number between 0 and %d
  - "strengths": an array of strings (may be empty)
  - "weaknesses": an array of strings (may be empty)
  - "improvements": an array of strings (may be empty)
  - "detailed_feedback": a non-empty string with qualitative feedback

Wrap the JSON object in a `+"```json"+` fenced block and output nothing else.`, quiz.TotalMarks)
	return b.String()
}

// decodeStringList reads a JSON column holding a string array; a broken or
// empty column yields nil rather than an error, since prompts degrade
// gracefully without it.
func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// encodeStringList is the inverse, used when persisting options and prompts.
func encodeStringList(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// questionToResponseDTO flattens the JSON columns for API responses.
func questionToResponseDTO(q model.QuizQuestion) dto.QuestionResponseDTO {
	return dto.QuestionResponseDTO{
		ID:            q.ID,
		QuizID:        q.QuizID,
		Text:          q.Text,
		Kind:          q.Kind,
		Options:       decodeStringList(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Marks:         q.Marks,
		Position:      q.Position,
	}
}
