// Package catalog holds the shop's static category tables and resolves the
// many surface forms of a category or tag name to one canonical value.
package catalog

// Option groups.
const (
	GroupPet     = "pet"
	GroupProduct = "product"
	GroupSpecial = "special"
)

// CategoryOption is one selectable category or tag.
type CategoryOption struct {
	Value   string   `json:"value"`
	Label   string   `json:"label"`
	Group   string   `json:"group"`
	Aliases []string `json:"aliases,omitempty"`
}

var categoryOptions = []CategoryOption{
	// pet types
	{Value: "DOG", Label: "강아지", Group: GroupPet, Aliases: []string{"강아지", "개", "반려견", "멍멍이", "dog", "dogs", "puppy"}},
	{Value: "CAT", Label: "고양이", Group: GroupPet, Aliases: []string{"고양이", "냥이", "반려묘", "cat", "cats", "kitten"}},
	{Value: "SMALL_PET", Label: "소동물", Group: GroupPet, Aliases: []string{"소동물", "햄스터", "토끼", "small pet", "small animal", "hamster", "rabbit"}},
	{Value: "BIRD", Label: "조류", Group: GroupPet, Aliases: []string{"조류", "새", "앵무새", "bird", "parrot"}},
	{Value: "FISH", Label: "관상어", Group: GroupPet, Aliases: []string{"관상어", "물고기", "수족관", "fish", "aquarium"}},

	// product types
	{Value: "FOOD", Label: "사료", Group: GroupProduct, Aliases: []string{"사료", "주식", "food", "feed", "kibble"}},
	{Value: "SNACK", Label: "간식", Group: GroupProduct, Aliases: []string{"간식", "트릿", "snack", "snacks", "treat", "treats"}},
	{Value: "TOY", Label: "장난감", Group: GroupProduct, Aliases: []string{"장난감", "토이", "toy", "toys"}},
	{Value: "CLOTHES", Label: "의류", Group: GroupProduct, Aliases: []string{"의류", "옷", "clothes", "apparel", "clothing"}},
	{Value: "HEALTH", Label: "건강/영양제", Group: GroupProduct, Aliases: []string{"건강", "영양제", "건강/영양제", "health", "supplement", "supplements"}},
	{Value: "HYGIENE", Label: "위생/배변", Group: GroupProduct, Aliases: []string{"위생", "배변", "배변용품", "위생/배변", "hygiene", "pee pad"}},
	{Value: "LIVING", Label: "하우스/방석", Group: GroupProduct, Aliases: []string{"하우스", "방석", "쿠션", "하우스/방석", "living", "bed", "pet house"}},
	{Value: "WALK", Label: "산책용품", Group: GroupProduct, Aliases: []string{"산책", "산책용품", "리드줄", "하네스", "walk", "leash", "harness"}},

	// special
	{Value: "NEW", Label: "신상품", Group: GroupSpecial, Aliases: []string{"신상품", "신상", "new", "new arrival", "new arrivals"}},
	{Value: "BEST", Label: "베스트", Group: GroupSpecial, Aliases: []string{"베스트", "인기", "best", "best seller", "bestsellers"}},
	{Value: "SALE", Label: "할인", Group: GroupSpecial, Aliases: []string{"할인", "세일", "특가", "sale", "discount"}},
	{Value: "ORGANIC", Label: "유기농", Group: GroupSpecial, Aliases: []string{"유기농", "오가닉", "organic"}},
	{Value: "HANDMADE", Label: "수제", Group: GroupSpecial, Aliases: []string{"수제", "핸드메이드", "handmade", "hand made"}},
}

// tagAliases covers the freeform tags that survey recommendations and item
// records use but that are not selectable options.
var tagAliases = map[string][]string{
	"ACTIVE_PLAY":     {"활동 놀이", "터그놀이", "active play", "tug toy"},
	"NOSEWORK":        {"노즈워크", "노즈 워크", "nose work", "snuffle mat"},
	"CALMING":         {"진정", "안정", "calming", "anxiety relief"},
	"DENTAL":          {"덴탈", "덴탈껌", "dental", "dental care"},
	"INTERACTIVE_TOY": {"인터랙티브 장난감", "퍼즐 장난감", "interactive toy", "puzzle toy"},
	"CAT_TOWER":       {"캣타워", "캣폴", "cat tower", "cat tree"},
	"SCRATCHER":       {"스크래처", "scratcher", "scratching post"},
	"GROOMING":        {"미용", "브러시", "grooming", "brush"},
	"TRAINING":        {"훈련", "교육", "training", "clicker"},
	"CARRIER":         {"이동장", "캐리어", "carrier", "travel bag"},
}

// Options returns a copy of the static option table.
func Options() []CategoryOption {
	out := make([]CategoryOption, len(categoryOptions))
	for i, opt := range categoryOptions {
		opt.Aliases = append([]string(nil), opt.Aliases...)
		out[i] = opt
	}
	return out
}

// OptionsByGroup returns the options in one group, in table order.
func OptionsByGroup(group string) []CategoryOption {
	var out []CategoryOption
	for _, opt := range Options() {
		if opt.Group == group {
			out = append(out, opt)
		}
	}
	return out
}

// Groups lists the option groups in display order.
func Groups() []string {
	return []string{GroupPet, GroupProduct, GroupSpecial}
}

// TagAliases returns a copy of the auxiliary tag alias table.
func TagAliases() map[string][]string {
	out := make(map[string][]string, len(tagAliases))
	for k, v := range tagAliases {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Lookup returns the option whose canonical value is value.
func Lookup(value string) (CategoryOption, bool) {
	for _, opt := range categoryOptions {
		if opt.Value == value {
			opt.Aliases = append([]string(nil), opt.Aliases...)
			return opt, true
		}
	}
	return CategoryOption{}, false
}

// Label returns the display label for a canonical value, or the value itself
// for tags and unknown categories.
func Label(value string) string {
	if opt, ok := Lookup(value); ok {
		return opt.Label
	}
	return value
}
