// Package survey classifies pet personality survey answers into one of a
// fixed set of archetypes.
package survey

// Answers maps a question type to the chosen value.
type Answers map[string]string

// PetType is the classification result.
type PetType struct {
	Code            string   `json:"code"`
	Title           string   `json:"title"`
	Emoji           string   `json:"emoji"`
	Description     string   `json:"description"`
	ActivityKey     string   `json:"activityKey"`
	Recommendations []string `json:"recommendations"`
	Activities      []string `json:"activities"`
}

// Rule pairs a predicate over answers with the archetype it selects.
type Rule struct {
	Code  string
	Match func(Answers) bool
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func isActive(a Answers) bool {
	return oneOf(a[QuestionActivity], "very_active", "active")
}

// rules are evaluated in order and the first match wins. Several answer
// combinations satisfy more than one rule, so the order is significant.
var rules = []Rule{
	{Code: "EFSP", Match: func(a Answers) bool {
		return a[QuestionActivity] == "very_active" &&
			a[QuestionPersonality] == "friendly" &&
			a[QuestionSociability] == "very_social"
	}},
	{Code: "ADVN", Match: func(a Answers) bool {
		return isActive(a) && a[QuestionPersonality] == "curious"
	}},
	{Code: "INDP", Match: func(a Answers) bool {
		return a[QuestionPersonality] == "independent"
	}},
	{Code: "SHYP", Match: func(a Answers) bool {
		return a[QuestionPersonality] == "shy" || a[QuestionSociability] == "prefers_alone"
	}},
	{Code: "CALM", Match: func(a Answers) bool {
		return a[QuestionActivity] == "calm" && oneOf(a[QuestionPersonality], "gentle", "calm")
	}},
	{Code: "PLAY", Match: func(a Answers) bool {
		return isActive(a) && a[QuestionPersonality] == "playful"
	}},
	{Code: "SOCL", Match: func(a Answers) bool {
		return oneOf(a[QuestionSociability], "very_social", "social")
	}},
}

// DefaultCode is the archetype returned when no rule matches.
const DefaultCode = "BALN"

var archetypes = map[string]PetType{
	"EFSP": {
		Code:            "EFSP",
		Title:           "에너자이저 인싸",
		Emoji:           "⚡",
		Description:     "넘치는 에너지로 누구와도 금방 친구가 되는 타입이에요.",
		ActivityKey:     "energetic",
		Recommendations: []string{"터그놀이", "산책용품", "간식", "training"},
	},
	"ADVN": {
		Code:            "ADVN",
		Title:           "호기심 탐험가",
		Emoji:           "🧭",
		Description:     "새로운 냄새와 장소를 찾아다니는 모험가 타입이에요.",
		ActivityKey:     "adventurous",
		Recommendations: []string{"노즈워크", "interactive toy", "하네스"},
	},
	"INDP": {
		Code:            "INDP",
		Title:           "마이웨이 독립파",
		Emoji:           "🐾",
		Description:     "혼자서도 잘 노는 자기만의 세계가 있는 타입이에요.",
		ActivityKey:     "independent",
		Recommendations: []string{"퍼즐 장난감", "스크래처", "덴탈껌"},
	},
	"SHYP": {
		Code:            "SHYP",
		Title:           "수줍은 집순이",
		Emoji:           "🌙",
		Description:     "낯선 환경보다 익숙한 공간에서 편안함을 느끼는 타입이에요.",
		ActivityKey:     "gentle",
		Recommendations: []string{"calming", "방석", "carrier"},
	},
	"CALM": {
		Code:            "CALM",
		Title:           "느긋한 힐링러",
		Emoji:           "☁️",
		Description:     "조용하고 여유로운 시간을 즐기는 차분한 타입이에요.",
		ActivityKey:     "relaxed",
		Recommendations: []string{"방석", "grooming", "영양제"},
	},
	"PLAY": {
		Code:            "PLAY",
		Title:           "장난꾸러기 놀이왕",
		Emoji:           "🎾",
		Description:     "놀이 시간이 제일 행복한 에너지 넘치는 타입이에요.",
		ActivityKey:     "playful",
		Recommendations: []string{"장난감", "터그놀이", "간식"},
	},
	"SOCL": {
		Code:            "SOCL",
		Title:           "다정한 소셜러",
		Emoji:           "💞",
		Description:     "사람과 친구들을 좋아하는 사교적인 타입이에요.",
		ActivityKey:     "social",
		Recommendations: []string{"training", "간식", "carrier"},
	},
	DefaultCode: {
		Code:            DefaultCode,
		Title:           "균형 잡힌 모범생",
		Emoji:           "🍀",
		Description:     "활동과 휴식의 균형이 잘 잡힌 안정적인 타입이에요.",
		ActivityKey:     "balanced",
		Recommendations: []string{"사료", "노즈워크", "dental care"},
	},
}

// Rules returns the classification rules in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Determine classifies answers with the first matching rule, or the default
// archetype when none match. Activities are drawn from the table for the
// answered pet type. Missing or unknown answers never fail; they simply do
// not match.
func Determine(answers Answers) PetType {
	return determine(rules, answers)
}

func determine(ordered []Rule, answers Answers) PetType {
	code := DefaultCode
	for _, r := range ordered {
		if r.Match(answers) {
			code = r.Code
			break
		}
	}
	return build(code, answers[QuestionPetType])
}

func build(code, petType string) PetType {
	pt := archetypes[code]
	pt.Recommendations = append([]string(nil), pt.Recommendations...)
	pt.Activities = ActivitiesFor(petType, pt.ActivityKey)
	return pt
}

// Archetype returns the archetype for code with the default species'
// activities.
func Archetype(code string) (PetType, bool) {
	if _, ok := archetypes[code]; !ok {
		return PetType{}, false
	}
	return build(code, DefaultPetType), true
}

// Archetypes lists every archetype in rule order, default last.
func Archetypes() []PetType {
	out := make([]PetType, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, build(r.Code, DefaultPetType))
	}
	return append(out, build(DefaultCode, DefaultPetType))
}
