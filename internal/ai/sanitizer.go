package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ZLostTK/IntelliTasker/internal/timeutil"
)

// ErrMalformedOutput is the only hard failure of the sanitizer: no JSON
// object could be extracted from the model response. Every other defect is
// repaired in place.
var ErrMalformedOutput = errors.New("model output is not valid JSON")

// TaskDraft is an AI-proposed, unpersisted task shape. Dates are ISO 8601
// strings ready to feed into a task create payload.
type TaskDraft struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	StartDateTime  string         `json:"startDateTime"`
	EndDateTime    string         `json:"endDateTime"`
	EstimatedHours float64        `json:"estimatedHours"`
	Subtasks       []DraftSubtask `json:"subtasks"`
}

// DraftSubtask is a sanitized subtask proposal.
type DraftSubtask struct {
	Title          string  `json:"title"`
	EstimatedHours float64 `json:"estimatedHours"`
}

// SanitizeDraft turns a raw model response into a valid draft. It is a pure
// function of the raw text, the fallback title and the clock, so it is fully
// testable without a network call.
//
// Contract: always return a usable draft; never fail merely because the
// model produced a slightly invalid date, hour count or subtask. Only an
// unparseable response is fatal.
func SanitizeDraft(raw, fallbackTitle string, now time.Time) (*TaskDraft, error) {
	now = now.UTC()

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	start, end := repairDates(payload, now)

	hours := 1.0
	if h, ok := coerceFloat(payload["estimatedHours"]); ok && h > 0 {
		hours = h
	} else if v, present := payload["estimatedHours"]; present {
		log.Printf("ai draft: invalid estimatedHours %v, forcing 1.0", v)
	}

	title := fallbackTitle
	if t, ok := payload["title"].(string); ok && strings.TrimSpace(t) != "" {
		title = t
	}
	description := ""
	if d, ok := payload["description"].(string); ok {
		description = d
	}

	return &TaskDraft{
		Title:          title,
		Description:    description,
		StartDateTime:  timeutil.Format(start),
		EndDateTime:    timeutil.Format(end),
		EstimatedHours: hours,
		Subtasks:       sanitizeSubtasks(payload["subtasks"]),
	}, nil
}

// extractJSON slices the raw text between the first '{' and the last '}',
// strips residual code-fence markers and parses the result. Models wrap
// their JSON in prose and markdown no matter how firmly the prompt forbids
// it.
func extractJSON(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)

	if start := strings.Index(text, "{"); start != -1 {
		text = text[start:]
	}
	if end := strings.LastIndex(text, "}"); end != -1 {
		text = text[:end+1]
	}

	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```json"); ok {
		text = strings.TrimSpace(rest)
	} else if rest, ok := strings.CutPrefix(text, "```"); ok {
		text = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(text, "```"); ok {
		text = strings.TrimSpace(rest)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return payload, nil
}

// repairDates validates the model's date pair and repairs it in a fixed
// order: unparseable dates are replaced with synthesized defaults, an
// inverted range pushes the end out, and a past start is moved to tomorrow
// (re-checking the end). Repairs are logged, never surfaced as errors.
func repairDates(payload map[string]any, now time.Time) (time.Time, time.Time) {
	startStr, _ := payload["startDateTime"].(string)
	endStr, _ := payload["endDateTime"].(string)

	start, startErr := timeutil.Parse(startStr)
	end, endErr := timeutil.Parse(endStr)

	if startErr != nil || endErr != nil {
		log.Printf("ai draft: unparseable dates (%q, %q), using defaults", startStr, endStr)
		start = now.AddDate(0, 0, 1)
		end = start.AddDate(0, 0, 7)
		return start, end
	}

	if !end.After(start) {
		log.Printf("ai draft: endDateTime not after startDateTime, pushing end out")
		end = start.AddDate(0, 0, 1)
	}

	if start.Before(now) {
		log.Printf("ai draft: startDateTime in the past, moving to tomorrow")
		start = now.AddDate(0, 0, 1)
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
	}

	return start, end
}

// sanitizeSubtasks keeps only elements with a non-empty title and positive
// hours; everything else is dropped silently.
func sanitizeSubtasks(v any) []DraftSubtask {
	list, ok := v.([]any)
	if !ok {
		return []DraftSubtask{}
	}

	subtasks := make([]DraftSubtask, 0, len(list))
	for _, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		title, ok := m["title"].(string)
		if !ok || strings.TrimSpace(title) == "" {
			continue
		}
		hours, ok := coerceFloat(m["estimatedHours"])
		if !ok || hours <= 0 {
			log.Printf("ai draft: dropping subtask %q with invalid hours", title)
			continue
		}
		subtasks = append(subtasks, DraftSubtask{Title: title, EstimatedHours: hours})
	}
	return subtasks
}

// coerceFloat accepts the numeric shapes a model actually emits: JSON
// numbers and numeric strings.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
