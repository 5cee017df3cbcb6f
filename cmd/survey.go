package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/display"
	"github.com/petnolja/petcli/internal/filter"
	"github.com/petnolja/petcli/internal/survey"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagActivity    string
	flagPersonality string
	flagSociability string
	flagPetType     string
	flagShop        bool
	flagShopCount   int
)

type surveyInput struct {
	Activity    string `flag:"activity" validate:"required,oneof=very_active active moderate calm"`
	Personality string `flag:"personality" validate:"required,oneof=friendly curious playful independent gentle calm shy"`
	Sociability string `flag:"sociability" validate:"required,oneof=very_social social selective prefers_alone"`
	PetType     string `flag:"pet-type" validate:"omitempty,oneof=강아지 고양이 기타"`
	ShopCount   int    `flag:"count" validate:"gte=1,lte=10"`
}

type shopMatch struct {
	Rank      int    `json:"rank"`
	Tag       string `json:"tag"`
	Canonical string `json:"canonical"`
	Matched   int    `json:"matchedItems"`
	TopItem   string `json:"topItem"`
	TopPrice  string `json:"topPrice"`
}

type surveyResultJSON struct {
	PetType survey.PetType `json:"petType"`
	Shop    []shopMatch    `json:"shop"`
}

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Classify your pet's personality and suggest products and activities",
	Long: "Classify survey answers into a pet personality type. Runs offline unless --shop\n" +
		"is given, which also ranks the recommended product tags against in-stock items.",
	Example: `  petcli survey --activity very_active --personality friendly --sociability very_social
  petcli survey --activity calm --personality gentle --sociability selective --pet-type cat
  petcli survey --activity active --personality curious --sociability social --shop --json`,
	RunE: runSurvey,
}

func init() {
	rootCmd.AddCommand(surveyCmd)

	f := surveyCmd.Flags()
	f.StringVar(&flagActivity, "activity", "", "Activity level ("+strings.Join(survey.AllowedValues(survey.QuestionActivity), ", ")+")")
	f.StringVar(&flagPersonality, "personality", "", "Personality ("+strings.Join(survey.AllowedValues(survey.QuestionPersonality), ", ")+")")
	f.StringVar(&flagSociability, "sociability", "", "Sociability ("+strings.Join(survey.AllowedValues(survey.QuestionSociability), ", ")+")")
	f.StringVar(&flagPetType, "pet-type", "", "Species, e.g. 강아지, 고양이, dog, cat (default 강아지)")
	f.BoolVar(&flagShop, "shop", false, "Rank recommended product tags against in-stock items")
	f.IntVar(&flagShopCount, "count", 3, "Number of recommended tags to show with --shop (1-10)")
}

// surveyPetType maps any pet alias onto the survey's species values.
func surveyPetType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	resolver := catalog.Default()
	if !resolver.Known(raw) {
		return raw
	}
	switch canonical := resolver.Normalize(raw); canonical {
	case "DOG":
		return "강아지"
	case "CAT":
		return "고양이"
	default:
		if opt, ok := catalog.Lookup(canonical); ok && opt.Group == catalog.GroupPet {
			return "기타"
		}
		return raw
	}
}

func runSurvey(cmd *cobra.Command, _ []string) error {
	input := surveyInput{
		Activity:    strings.ToLower(strings.TrimSpace(flagActivity)),
		Personality: strings.ToLower(strings.TrimSpace(flagPersonality)),
		Sociability: strings.ToLower(strings.TrimSpace(flagSociability)),
		PetType:     surveyPetType(flagPetType),
		ShopCount:   flagShopCount,
	}
	if err := validateInput(input,
		"petcli survey --activity active --personality playful --sociability social",
		"petcli survey --activity calm --personality gentle --sociability selective --pet-type cat",
	); err != nil {
		return err
	}

	answers := survey.Answers{
		survey.QuestionActivity:    input.Activity,
		survey.QuestionPersonality: input.Personality,
		survey.QuestionSociability: input.Sociability,
	}
	if input.PetType != "" {
		answers[survey.QuestionPetType] = input.PetType
	}
	pt := survey.Determine(answers)
	logger.Debug("survey classified", zap.String("code", pt.Code), zap.Any("answers", answers))

	if !flagShop {
		if flagJSON {
			return display.PrintPetTypeJSON(cmd.OutOrStdout(), pt)
		}
		display.PrintPetType(cmd.OutOrStdout(), pt)
		return nil
	}

	matches, err := rankRecommendations(cmd, pt, input.ShopCount)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(surveyResultJSON{PetType: pt, Shop: matches})
	}

	out := cmd.OutOrStdout()
	display.PrintPetType(out, pt)
	fmt.Fprintf(out, "Shop matches for %s (%d tag(s))\n\n", pt.Code, len(matches))
	for _, m := range matches {
		fmt.Fprintf(out,
			"%d. %s (%s)\n   in stock: %d | top: %s %s\n\n",
			m.Rank,
			m.Tag,
			m.Canonical,
			m.Matched,
			emptyIf(m.TopItem, "-"),
			m.TopPrice,
		)
	}
	return nil
}

// rankRecommendations fetches the catalog and ranks the archetype's
// recommended tags against it.
func rankRecommendations(cmd *cobra.Command, pt survey.PetType, count int) ([]shopMatch, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	items, err := client.FetchItems(cmd.Context(), api.ItemQuery{})
	if err != nil {
		return nil, upstreamError("fetching items", err)
	}
	if len(items) == 0 {
		return nil, notFoundError(
			"no items found in the shop catalog",
			"Drop --shop to classify offline.",
		)
	}
	return rankTags(items, pt.Recommendations, count), nil
}

// rankTags counts in-stock items on sale per canonical tag and orders the tags
// by match count. Tags resolving to the same canonical value are ranked once,
// under the first surface form. Ties keep recommendation order.
func rankTags(items []api.Item, tags []string, count int) []shopMatch {
	matches := make([]shopMatch, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		canonical := catalog.Normalize(tag)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true

		found := filter.Apply(items, filter.Criteria{
			Categories:    []string{canonical},
			InStockOnly:   true,
			InStockStatus: api.SellStatusOnSale,
			Sort:          filter.SortPriceAsc,
		})

		m := shopMatch{
			Tag:       tag,
			Canonical: canonical,
			Matched:   len(found),
		}
		if len(found) > 0 {
			m.TopItem = filter.CleanText(found[0].Name)
			m.TopPrice = display.FormatPrice(found[0].Price)
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Matched > matches[j].Matched
	})
	if count > 0 && count < len(matches) {
		matches = matches[:count]
	}
	for i := range matches {
		matches[i].Rank = i + 1
	}
	return matches
}

func emptyIf(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
