package ai

import (
	"fmt"
	"strings"
	"time"
)

// BuildPrompt constructs the generation prompt for a task draft. The model
// is told to answer with a bare JSON object; the sanitizer cleans up when it
// does not listen.
func BuildPrompt(title, description string, now time.Time) string {
	currentDate := now.UTC().Format("2006-01-02")

	var b strings.Builder
	b.WriteString("You are an expert project and task management assistant.\n")
	b.WriteString("Analyze the following task title and its description (if any) and produce a structured JSON object with these fields:\n\n")
	b.WriteString("- title: the task title (use exactly the one provided)\n")
	b.WriteString("- description: a detailed, useful description based on the provided title and description. Be specific and professional.\n")
	fmt.Fprintf(&b, "- startDateTime: start date and time in ISO 8601 format (YYYY-MM-DDTHH:MM:SS). Must be a reasonable future date, at least 1 day after today (%s)\n", currentDate)
	b.WriteString("- endDateTime: end date and time in ISO 8601 format (YYYY-MM-DDTHH:MM:SS). Must come after startDateTime, at least 1 day later\n")
	b.WriteString("- estimatedHours: estimated hours to complete the task (a positive number, typically between 1 and 200)\n")
	b.WriteString("- subtasks: array of objects, each with:\n")
	b.WriteString("  - title: a descriptive subtask title\n")
	b.WriteString("  - estimatedHours: estimated hours for the subtask (positive number)\n\n")
	b.WriteString("IMPORTANT RULES:\n")
	b.WriteString("- The JSON must be valid and well-formed\n")
	b.WriteString("- Dates must use strict ISO 8601: YYYY-MM-DDTHH:MM:SS (example: 2025-01-20T09:00:00)\n")
	fmt.Fprintf(&b, "- startDateTime must be at least 1 day after today (%s)\n", currentDate)
	b.WriteString("- endDateTime must be at least 1 day after startDateTime\n")
	b.WriteString("- estimatedHours must be a positive number (decimals like 2.5 are fine)\n")
	b.WriteString("- Subtask hours should roughly add up to the task's estimatedHours\n")
	b.WriteString("- Subtasks must make sense and relate to the main task\n")
	b.WriteString("- For complex tasks (over 8 hours), split into 2-5 logical subtasks\n")
	b.WriteString("- For simple tasks (under 8 hours), the subtasks array may be empty or hold 1-2 entries\n\n")
	fmt.Fprintf(&b, "Task title: %s\n", title)

	if description != "" {
		fmt.Fprintf(&b, "\nProvided description: %s\n", description)
	}

	b.WriteString("\nRespond ONLY with the valid JSON object, with no text before or after, no markdown (no ```json or ```), no explanations. Just the JSON object.")

	return b.String()
}
