package survey

// Question types.
const (
	QuestionActivity    = "activity"
	QuestionPersonality = "personality"
	QuestionSociability = "sociability"
	QuestionPetType     = "petType"
)

// DefaultPetType is the species whose activity table is used when the
// answered species has none.
const DefaultPetType = "강아지"

// Question is one survey question with its allowed answers.
type Question struct {
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Options []Choice `json:"options"`
}

// Choice is an answer value and its display text.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var questions = []Question{
	{
		Type:   QuestionPetType,
		Prompt: "어떤 반려동물과 함께하고 있나요?",
		Options: []Choice{
			{Value: "강아지", Label: "강아지"},
			{Value: "고양이", Label: "고양이"},
			{Value: "기타", Label: "기타"},
		},
	},
	{
		Type:   QuestionActivity,
		Prompt: "평소 활동량은 어느 정도인가요?",
		Options: []Choice{
			{Value: "very_active", Label: "하루 종일 뛰어다녀요"},
			{Value: "active", Label: "산책과 놀이를 좋아해요"},
			{Value: "moderate", Label: "적당히 움직여요"},
			{Value: "calm", Label: "주로 쉬는 편이에요"},
		},
	},
	{
		Type:   QuestionPersonality,
		Prompt: "성격을 한 단어로 표현한다면?",
		Options: []Choice{
			{Value: "friendly", Label: "다정함"},
			{Value: "curious", Label: "호기심"},
			{Value: "playful", Label: "장난꾸러기"},
			{Value: "independent", Label: "독립적"},
			{Value: "gentle", Label: "온순함"},
			{Value: "calm", Label: "차분함"},
			{Value: "shy", Label: "수줍음"},
		},
	},
	{
		Type:   QuestionSociability,
		Prompt: "다른 사람이나 동물을 만나면?",
		Options: []Choice{
			{Value: "very_social", Label: "먼저 다가가요"},
			{Value: "social", Label: "금방 친해져요"},
			{Value: "selective", Label: "가려서 사귀어요"},
			{Value: "prefers_alone", Label: "혼자가 편해요"},
		},
	},
}

// activityRecommendations is keyed by species, then by archetype activity key.
var activityRecommendations = map[string]map[string][]string{
	"강아지": {
		"energetic":   {"도그런에서 마음껏 달리기", "원반 던지기 놀이", "다른 강아지와 그룹 산책"},
		"adventurous": {"새로운 산책 코스 탐험", "등산로 트레킹", "노즈워크 보물찾기"},
		"independent": {"혼자 푸는 퍼즐 장난감", "오래 씹는 간식 시간", "조용한 동네 산책"},
		"gentle":      {"익숙한 공간에서 짧은 놀이", "보호자와 1:1 교감 시간", "천천히 냄새 맡기 산책"},
		"relaxed":     {"햇볕 아래 낮잠 산책", "부드러운 마사지", "느긋한 공원 벤치 휴식"},
		"playful":     {"터그놀이", "공 물어오기", "삑삑이 장난감 놀이"},
		"social":      {"강아지 유치원", "펫카페 방문", "친구 강아지와 플레이데이트"},
		"balanced":    {"하루 두 번 규칙적인 산책", "기본 훈련 복습", "노즈워크 매트 놀이"},
	},
	"고양이": {
		"energetic":   {"깃털 낚싯대 사냥 놀이", "캣휠 달리기", "레이저 포인터 추격"},
		"adventurous": {"캣타워 높은 곳 탐험", "새 상자 탐색", "창가 새 구경"},
		"independent": {"혼자 노는 자동 장난감", "숨숨집 휴식", "스크래처 정리 시간"},
		"gentle":      {"조용한 브러싱 시간", "담요 속 숨바꼭질", "보호자 무릎 휴식"},
		"relaxed":     {"햇살 드는 창가 낮잠", "캣닢 쿠션 휴식", "느긋한 그루밍"},
		"playful":     {"공 굴리기 놀이", "터널 숨바꼭질", "쥐돌이 사냥"},
		"social":      {"보호자와 교감 놀이", "클리커 트레이닝", "간식 퍼즐 함께 풀기"},
		"balanced":    {"하루 15분 사냥 놀이", "스크래처 교체", "정기 브러싱"},
	},
}

// Questions returns the survey questionnaire.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Choice(nil), q.Options...)
		out[i] = q
	}
	return out
}

// AllowedValues returns the answer values a question accepts.
func AllowedValues(questionType string) []string {
	for _, q := range questions {
		if q.Type != questionType {
			continue
		}
		out := make([]string, 0, len(q.Options))
		for _, c := range q.Options {
			out = append(out, c.Value)
		}
		return out
	}
	return nil
}

// ActivitiesFor returns the activity list for a species and activity key,
// falling back to DefaultPetType for species without a table.
func ActivitiesFor(petType, key string) []string {
	table, ok := activityRecommendations[petType]
	if !ok {
		table = activityRecommendations[DefaultPetType]
	}
	return append([]string(nil), table[key]...)
}
