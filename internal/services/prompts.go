package services

import (
	"fmt"
	"strings"
)

const noConceptText = "No relevant concept found in the concept store."

// detailKeywords mark a chat message that asks for a long-form answer.
var detailKeywords = []string{"explain", "in detail", "elaborate", "describe", "deep dive"}

func wantsDetail(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range detailKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func conceptPrompt(query, concept string) string {
	if strings.TrimSpace(concept) == "" {
		concept = noConceptText
	}

	style := "Keep the answer short: list the relevant sub-headings, each with a one or two line explanation."
	if wantsDetail(query) {
		style = "The student asked for depth: give a detailed, step-by-step explanation with a small worked example."
	}

	return fmt.Sprintf(`You are a competitive programming tutor. Use the following retrieved concept to provide a better answer.

**User Query:** %s

**Retrieved Concept:** %s

%s`, query, concept, style)
}

func guidePrompt(title, description string) string {
	return fmt.Sprintf(`You are an expert competitive programming tutor helping a student understand a coding problem.

**Problem Title:** %s

**Problem Description:**
%s

Help the student by:
- Listing the core concepts involved in solving the problem.
- Giving 2-3 progressive hints to guide their thinking.

**DO NOT** write or suggest code. Only provide strategic guidance.
Keep the response short, and keep your tone friendly, clear and focused on learning.`, title, description)
}

func evaluationPrompt(title, description, code string) string {
	return fmt.Sprintf("**Problem:** %s\n**Description:** %s\n**User's Code:**\n```\n%s\n```\n"+`
**Evaluation Criteria:**
- **Correctness:** Verify that the solution solves the problem as described.
- **Efficiency:** Evaluate the time and space complexity of the user's code.
- **Edge Cases:** Identify potential edge cases and how well the code handles them.

**Feedback:**
- State the time and space complexity of the user's code.
- Give concise, constructive feedback on how the code could be improved, without providing the actual solution.
- Focus on **optimization** suggestions and **possible pitfalls**.
- Keep the response short and concise.

**Note:** Do not provide any code directly.`, title, description, code)
}
