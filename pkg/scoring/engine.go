package scoring

import (
	"math"
	"strings"
)

// Message is a single transcript entry. The transcript handed to the engine is
// final and ordered; the engine never mutates it.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// SessionScores holds the four rubric sub-scores plus the weighted overall,
// each rounded to two decimal places.
type SessionScores struct {
	CrisisRecognition float64 `json:"crisis_recognition"`
	Empathy           float64 `json:"empathy"`
	Appropriateness   float64 `json:"appropriateness"`
	Deescalation      float64 `json:"deescalation"`
	Overall           float64 `json:"overall"`
}

// Rubric weights. They must sum to 1.
const (
	weightCrisisRecognition = 0.30
	weightEmpathy           = 0.30
	weightAppropriateness   = 0.25
	weightDeescalation      = 0.15
)

// CalculateScores evaluates a completed transcript against the four
// behavioral rubrics. It is deterministic: identical transcripts always
// produce identical scores. No external calls, no shared state, safe for
// concurrent use.
func CalculateScores(transcript []Message) SessionScores {
	scores := SessionScores{
		CrisisRecognition: crisisRecognitionScore(transcript),
		Empathy:           empathyScore(transcript),
		Appropriateness:   appropriatenessScore(transcript),
		Deescalation:      deescalationScore(transcript),
	}

	overall := scores.CrisisRecognition*weightCrisisRecognition +
		scores.Empathy*weightEmpathy +
		scores.Appropriateness*weightAppropriateness +
		scores.Deescalation*weightDeescalation

	scores.CrisisRecognition = round2(scores.CrisisRecognition)
	scores.Empathy = round2(scores.Empathy)
	scores.Appropriateness = round2(scores.Appropriateness)
	scores.Deescalation = round2(scores.Deescalation)
	scores.Overall = round2(overall)

	return scores
}

// SkillLevel maps an overall score to a display level. Boundaries are
// inclusive on the higher level: exactly 0.4 is intermediate.
func SkillLevel(overall float64) string {
	switch {
	case overall < 0.4:
		return "beginner"
	case overall < 0.7:
		return "intermediate"
	case overall < 0.9:
		return "advanced"
	default:
		return "expert"
	}
}

// crisisRecognitionScore measures how reliably user-authored messages use
// crisis-awareness language. The message at transcript position 0 carries
// weight 2, every later message weight 1.
func crisisRecognitionScore(transcript []Message) float64 {
	var matched, total float64
	for i, msg := range transcript {
		if msg.Role != RoleUser {
			continue
		}
		weight := 1.0
		if i == 0 {
			weight = 2.0
		}
		total += weight
		if containsAny(strings.ToLower(msg.Content), crisisKeywords) {
			matched += weight
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

// empathyScore counts empathy-indicator phrases in user messages. A message
// that pairs the first-person marker "i " with "hear" or "understand" earns an
// extra 0.5 on top of a base match.
func empathyScore(transcript []Message) float64 {
	var raw float64
	var userCount int
	for _, msg := range transcript {
		if msg.Role != RoleUser {
			continue
		}
		userCount++
		text := strings.ToLower(msg.Content)
		if containsAny(text, empathyPhrases) {
			raw++
		}
		if strings.Contains(text, "i ") && (strings.Contains(text, "hear") || strings.Contains(text, "understand")) {
			raw += 0.5
		}
	}
	score := raw / math.Max(1, float64(userCount)*0.5)
	return math.Min(score, 1)
}

// appropriatenessScore starts perfect and deducts 0.25 per user message that
// contains an inappropriate-language marker, floored at 0. An empty
// conversation cannot be inappropriate, so zero user messages scores 1.
func appropriatenessScore(transcript []Message) float64 {
	var userCount, violations int
	for _, msg := range transcript {
		if msg.Role != RoleUser {
			continue
		}
		userCount++
		if containsAny(strings.ToLower(msg.Content), inappropriateMarkers) {
			violations++
		}
	}
	if userCount == 0 {
		return 1
	}
	penalty := math.Min(1, float64(violations)*0.25)
	return math.Max(0, 1-penalty)
}

// deescalationScore rewards assistant de-escalation language that the user
// acknowledged anywhere in the transcript. Each acknowledged assistant
// de-escalation message adds 0.3; the total is clamped to 1.
func deescalationScore(transcript []Message) float64 {
	var assistantCount int
	acknowledged := false
	for _, msg := range transcript {
		if msg.Role == RoleAssistant {
			assistantCount++
		}
		if msg.Role == RoleUser && containsAny(strings.ToLower(msg.Content), acknowledgementTokens) {
			acknowledged = true
		}
	}
	if assistantCount == 0 {
		return 0
	}

	var score float64
	for _, msg := range transcript {
		if msg.Role != RoleAssistant {
			continue
		}
		if containsAny(strings.ToLower(msg.Content), deescalationPhrases) && acknowledged {
			score += 0.3
		}
	}
	return math.Min(score, 1)
}

// round2 rounds half-up to two decimal places. The epsilon absorbs binary
// representation error so that decimal halves like 0.595 round up to 0.6
// instead of falling just below the .5 threshold.
func round2(v float64) float64 {
	return math.Round(v*100+1e-9) / 100
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
