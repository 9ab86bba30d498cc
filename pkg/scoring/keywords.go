package scoring

// Phrase sets for the rubric heuristics. Matching is lower-cased substring
// containment. Changing any of these changes historical score reproducibility,
// so additions belong at the end with a version note in the commit.

// crisisKeywords is crisis-awareness language: naming the risk directly or
// checking in on the person's safety ("are you okay", "are you safe").
var crisisKeywords = []string{
	"suicide",
	"suicidal",
	"kill myself",
	"kill yourself",
	"hurt myself",
	"hurt yourself",
	"self-harm",
	"self harm",
	"end my life",
	"end it all",
	"want to die",
	"no reason to live",
	"overdose",
	"okay",
	"safe",
	"crisis",
	"emergency",
}

// empathyPhrases are reflective-listening openers.
var empathyPhrases = []string{
	"i hear you",
	"i understand",
	"that sounds",
	"that must be",
	"i'm here for you",
	"i am here for you",
	"you're not alone",
	"you are not alone",
	"i can imagine",
	"i'm sorry you",
	"i am sorry you",
	"thank you for sharing",
	"it's okay to feel",
}

// inappropriateMarkers are dismissive or hostile phrasings that a trained
// supporter should never use.
var inappropriateMarkers = []string{
	"stupid",
	"idiot",
	"shut up",
	"whatever",
	"get over it",
	"not my problem",
	"calm down",
	"you're overreacting",
	"attention seeker",
	"just stop",
}

// deescalationPhrases are grounding/pacing moves in assistant messages.
var deescalationPhrases = []string{
	"take it slow",
	"one step at a time",
	"take a deep breath",
	"deep breath",
	"take a moment",
	"slow down",
	"no rush",
	"we can work through",
	"let's talk through",
	"grounding",
}

// acknowledgementTokens signal the user received a de-escalation move:
// affirmatives, gratitude, or self-reported improvement.
var acknowledgementTokens = []string{
	"okay",
	"ok",
	"thanks",
	"thank you",
	"yes",
	"yeah",
	"better",
	"helps",
	"helped",
	"calmer",
	"makes sense",
	"will try",
}
