package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScoresEmptyTranscript(t *testing.T) {
	scores := CalculateScores(nil)

	assert.Equal(t, 0.0, scores.CrisisRecognition)
	assert.Equal(t, 0.0, scores.Empathy)
	assert.Equal(t, 1.0, scores.Appropriateness)
	assert.Equal(t, 0.0, scores.Deescalation)
	assert.Equal(t, 0.25, scores.Overall) // only the appropriateness term survives
}

func TestCalculateScoresCrisisScenario(t *testing.T) {
	transcript := []Message{
		{Role: RoleUser, Content: "I feel like I might hurt myself, are you okay talking about this?"},
		{Role: RoleAssistant, Content: "I hear you, that sounds incredibly difficult. Let's take it slow, one step at a time."},
		{Role: RoleUser, Content: "okay, thanks, that helps"},
	}

	scores := CalculateScores(transcript)

	// Both user messages contain crisis-awareness language ("hurt myself",
	// "okay"), so the full weight (2+1) matches.
	assert.Equal(t, 1.0, scores.CrisisRecognition)
	// No user message carries an empathy phrase; the assistant's "I hear you"
	// does not count because empathy is scored on user messages only.
	assert.Equal(t, 0.0, scores.Empathy)
	assert.Equal(t, 1.0, scores.Appropriateness)
	// One assistant de-escalation move, acknowledged by "okay, thanks".
	assert.Equal(t, 0.3, scores.Deescalation)
	// 1.0*0.30 + 0*0.30 + 1*0.25 + 0.3*0.15 = 0.595 -> 0.6 (half-up)
	assert.Equal(t, 0.6, scores.Overall)
}

func TestCalculateScoresDeterministic(t *testing.T) {
	transcript := []Message{
		{Role: RoleUser, Content: "Are you safe right now? I hear you and I understand."},
		{Role: RoleAssistant, Content: "Take a deep breath with me."},
		{Role: RoleUser, Content: "yes, that helped, I feel calmer"},
	}

	first := CalculateScores(transcript)
	second := CalculateScores(transcript)

	assert.Equal(t, first, second)
}

func TestCrisisRecognitionFirstMessageWeight(t *testing.T) {
	tests := []struct {
		name       string
		transcript []Message
		want       float64
	}{
		{
			name: "only the double-weighted opener matches",
			transcript: []Message{
				{Role: RoleUser, Content: "are you thinking about suicide?"},
				{Role: RoleUser, Content: "tell me more"},
				{Role: RoleUser, Content: "what happened next"},
			},
			want: 0.5, // 2 / (2+1+1)
		},
		{
			name: "only a later message matches",
			transcript: []Message{
				{Role: RoleUser, Content: "hello there"},
				{Role: RoleUser, Content: "do you feel safe at home?"},
			},
			want: 0.33, // 1 / (2+1), rounded
		},
		{
			name: "assistant opener removes the double weight",
			transcript: []Message{
				{Role: RoleAssistant, Content: "hi"},
				{Role: RoleUser, Content: "are you okay?"},
			},
			want: 1.0, // single user message, weight 1
		},
		{
			name:       "no user messages",
			transcript: []Message{{Role: RoleAssistant, Content: "are you okay?"}},
			want:       0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScores(tt.transcript).CrisisRecognition
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestEmpathyBonusStacks(t *testing.T) {
	// Base phrase match (1.0) plus the "i "+"hear" bonus (0.5) on a single
	// message, divided by max(1, 1*0.5) = 1, clamped to 1.
	transcript := []Message{
		{Role: RoleUser, Content: "i hear you, that must be exhausting"},
	}
	assert.Equal(t, 1.0, CalculateScores(transcript).Empathy)

	// Bonus alone, no base phrase.
	transcript = []Message{
		{Role: RoleUser, Content: "i want to understand what happened"},
	}
	assert.Equal(t, 0.5, CalculateScores(transcript).Empathy)
}

func TestAppropriatenessPenalties(t *testing.T) {
	tests := []struct {
		name       string
		violations int
		want       float64
	}{
		{"clean", 0, 1.0},
		{"one strike", 1, 0.75},
		{"two strikes", 2, 0.5},
		{"four strikes floors at zero", 4, 0.0},
		{"five strikes still zero", 5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var transcript []Message
			for i := 0; i < tt.violations; i++ {
				transcript = append(transcript, Message{Role: RoleUser, Content: "just get over it"})
			}
			transcript = append(transcript, Message{Role: RoleUser, Content: "how was your day"})
			assert.Equal(t, tt.want, CalculateScores(transcript).Appropriateness)
		})
	}
}

func TestDeescalationClampAndBaseCases(t *testing.T) {
	// No assistant messages at all.
	transcript := []Message{{Role: RoleUser, Content: "okay thanks"}}
	assert.Equal(t, 0.0, CalculateScores(transcript).Deescalation)

	// De-escalation with no user acknowledgement anywhere.
	transcript = []Message{
		{Role: RoleUser, Content: "leave me be"},
		{Role: RoleAssistant, Content: "let's take it slow"},
	}
	assert.Equal(t, 0.0, CalculateScores(transcript).Deescalation)

	// Four acknowledged moves would be 1.2; clamped to 1.
	transcript = []Message{{Role: RoleUser, Content: "okay, that helps"}}
	for i := 0; i < 4; i++ {
		transcript = append(transcript, Message{Role: RoleAssistant, Content: "one step at a time"})
	}
	assert.Equal(t, 1.0, CalculateScores(transcript).Deescalation)
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 0.6, round2(0.595))
	assert.Equal(t, 0.63, round2(0.625))
	assert.Equal(t, 0.62, round2(0.624))
	assert.Equal(t, 0.0, round2(0.0))
	assert.Equal(t, 1.0, round2(0.999))
}

func TestSkillLevel(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{0.0, "beginner"},
		{0.399999, "beginner"},
		{0.4, "intermediate"},
		{0.69, "intermediate"},
		{0.7, "advanced"},
		{0.89, "advanced"},
		{0.9, "expert"},
		{1.0, "expert"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SkillLevel(tt.overall), "overall=%v", tt.overall)
	}
}
