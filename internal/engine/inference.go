package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// Inference is the outcome of resolving a material from its name alone.
type Inference struct {
	Attributes model.Attributes `json:"attributes"`
	Category   model.Category   `json:"category"`
	Rules      []string         `json:"rules"`
}

// Rule contributes attributes inferred from a name. Rules run in table order and
// earlier rules win for any field they set.
type Rule struct {
	Name  string
	Apply func(n *ParsedName) (model.Attributes, model.Category, bool)
}

// Resolver infers attributes from material names using an ordered rule table.
type Resolver struct {
	rules []Rule
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRules replaces the rule table.
func WithRules(rules []Rule) ResolverOption {
	return func(r *Resolver) {
		if len(rules) > 0 {
			r.rules = append([]Rule(nil), rules...)
		}
	}
}

// NewResolver creates a Resolver with the default rule table.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{rules: DefaultRules()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// InferFromName resolves a name with the default rule table.
func InferFromName(name string) *Inference {
	return defaultResolver.Infer(name)
}

// Infer returns the attributes derived from name, or nil when the rules cannot
// produce sugar, pH, acidity and sweetness together. It never defaults to zero.
func (r *Resolver) Infer(name string) *Inference {
	n := parseName(name)
	if n.Lower == "" {
		return nil
	}

	var (
		attrs    model.Attributes
		category model.Category
		applied  []string
	)
	for _, rule := range r.rules {
		got, cat, ok := rule.Apply(n)
		if !ok {
			continue
		}
		attrs = attrs.Merge(got)
		if category == model.CategoryUnknown {
			category = cat
		}
		applied = append(applied, rule.Name)
		// Later rules see the sugar fixed so far.
		n.Sugar = attrs.Sugar
	}

	if !attrs.Complete() {
		return nil
	}
	return &Inference{Attributes: attrs, Category: category, Rules: applied}
}

// DefaultRules returns the standard rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "brix_marker", Apply: applyBrixMarker},
		{Name: "fold_concentrate", Apply: applyFoldFactor},
		{Name: "fruit_lexicon", Apply: applyFruit},
		{Name: "sweetener_lexicon", Apply: applySweetener},
		{Name: "acidulant_lexicon", Apply: applyAcidulant},
		{Name: "stabilizer_lexicon", Apply: applyNeutral(stabilizerKeywords, model.CategoryStabilizer)},
		{Name: "flavor_lexicon", Apply: applyNeutral(flavorKeywords, model.CategoryFlavor)},
	}
}

var (
	brixPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*°?\s*(?:bx|brix|브릭스)`)
	foldPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-\s*)?(?:fold|x\b|배)`)
)

// genericJuiceSugar is the base sugar of a single-strength juice when no fruit is recognised.
const genericJuiceSugar = 11.5

// concentrateMultiplier scales a fruit's single-strength values when a
// concentrate or paste qualifier is present without an explicit factor.
const concentrateMultiplier = 4.0

type fruitProfile struct {
	keywords  []string
	sugar     float64
	ph        float64
	acidity   float64
	sweetness float64
}

var fruitLexicon = []fruitProfile{
	{keywords: []string{"grapefruit", "자몽"}, sugar: 10, ph: 3.2, acidity: 1.4, sweetness: 0.09},
	{keywords: []string{"pineapple", "파인애플"}, sugar: 12.8, ph: 3.6, acidity: 0.8, sweetness: 0.13},
	{keywords: []string{"apple", "사과"}, sugar: 11.5, ph: 3.5, acidity: 0.5, sweetness: 0.12},
	{keywords: []string{"orange", "오렌지"}, sugar: 11.8, ph: 3.7, acidity: 0.8, sweetness: 0.12},
	{keywords: []string{"grape", "포도"}, sugar: 16, ph: 3.4, acidity: 0.6, sweetness: 0.16},
	{keywords: []string{"lemon", "레몬"}, sugar: 8, ph: 2.4, acidity: 5.0, sweetness: 0.05},
	{keywords: []string{"lime", "라임"}, sugar: 7, ph: 2.2, acidity: 6.0, sweetness: 0.04},
	{keywords: []string{"mango", "망고"}, sugar: 14, ph: 4.0, acidity: 0.4, sweetness: 0.15},
	{keywords: []string{"peach", "복숭아"}, sugar: 10.5, ph: 3.8, acidity: 0.5, sweetness: 0.11},
	{keywords: []string{"strawberry", "딸기"}, sugar: 8, ph: 3.4, acidity: 0.8, sweetness: 0.09},
	{keywords: []string{"pear"}, sugar: 12, ph: 3.9, acidity: 0.3, sweetness: 0.13},
	{keywords: []string{"tomato", "토마토"}, sugar: 5, ph: 4.3, acidity: 0.4, sweetness: 0.04},
	{keywords: []string{"maesil", "매실"}, sugar: 7, ph: 2.8, acidity: 4.0, sweetness: 0.05},
	{keywords: []string{"yuzu", "citron", "유자"}, sugar: 9, ph: 2.6, acidity: 4.5, sweetness: 0.06},
	{keywords: []string{"blueberry", "블루베리"}, sugar: 10, ph: 3.2, acidity: 0.7, sweetness: 0.1},
	{keywords: []string{"cranberry", "크랜베리"}, sugar: 7.5, ph: 2.5, acidity: 2.0, sweetness: 0.05},
	{keywords: []string{"banana", "바나나"}, sugar: 20, ph: 4.6, acidity: 0.3, sweetness: 0.2},
	{keywords: []string{"kiwi", "키위"}, sugar: 12, ph: 3.3, acidity: 1.2, sweetness: 0.12},
}

var (
	concentrateQualifiers = []string{"concentrate", "conc.", "paste", "농축", "페이스트"}
	juiceQualifiers       = []string{"juice", "puree", "purée", "과즙", "퓨레", "주스"}
)

type sweetenerProfile struct {
	keywords  []string
	sugar     float64
	sweetness float64
	category  model.Category
}

// Ordered most specific first.
var sweetenerLexicon = []sweetenerProfile{
	{keywords: []string{"crystalline fructose", "결정과당"}, sugar: 100, sweetness: 1.2, category: model.CategorySugar},
	{keywords: []string{"hfcs", "high fructose", "액상과당"}, sugar: 77, sweetness: 1.1, category: model.CategorySyrup},
	{keywords: []string{"fructose", "과당"}, sugar: 100, sweetness: 1.2, category: model.CategorySugar},
	{keywords: []string{"glucose syrup", "corn syrup", "물엿"}, sugar: 75, sweetness: 0.4, category: model.CategorySyrup},
	{keywords: []string{"glucose", "dextrose", "포도당"}, sugar: 91, sweetness: 0.7, category: model.CategorySugar},
	{keywords: []string{"oligosaccharide", "올리고당"}, sugar: 75, sweetness: 0.3, category: model.CategorySyrup},
	{keywords: []string{"honey", "벌꿀"}, sugar: 80, sweetness: 1.0, category: model.CategorySyrup},
	{keywords: []string{"erythritol", "에리스리톨"}, sugar: 100, sweetness: 0.7, category: model.CategorySweetener},
	{keywords: []string{"sucralose", "수크랄로스"}, sugar: 0, sweetness: 600, category: model.CategoryHighIntensity},
	{keywords: []string{"stevia", "스테비아"}, sugar: 0, sweetness: 250, category: model.CategoryHighIntensity},
	{keywords: []string{"aspartame", "아스파탐"}, sugar: 0, sweetness: 200, category: model.CategoryHighIntensity},
	{keywords: []string{"acesulfame", "아세설팜"}, sugar: 0, sweetness: 200, category: model.CategoryHighIntensity},
	{keywords: []string{"sucrose", "sugar", "설탕", "백설탕"}, sugar: 100, sweetness: 1.0, category: model.CategorySugar},
	{keywords: []string{"syrup", "시럽"}, sugar: 70, sweetness: 0.8, category: model.CategorySyrup},
}

type acidulantProfile struct {
	keywords []string
	ph       float64
	acidity  float64
	coeff    float64
	phDelta  float64
}

var acidulantLexicon = []acidulantProfile{
	{keywords: []string{"citric", "구연산"}, ph: 2.2, acidity: 100, coeff: 1.0, phDelta: -0.40},
	{keywords: []string{"malic", "사과산"}, ph: 2.3, acidity: 100, coeff: 1.05, phDelta: -0.38},
	{keywords: []string{"tartaric", "주석산"}, ph: 2.2, acidity: 100, coeff: 0.93, phDelta: -0.40},
	{keywords: []string{"lactic", "젖산", "유산"}, ph: 2.4, acidity: 80, coeff: 0.57, phDelta: -0.30},
	{keywords: []string{"phosphoric", "인산"}, ph: 1.5, acidity: 85, coeff: 1.1, phDelta: -0.50},
	{keywords: []string{"ascorbic", "vitamin c", "비타민c", "아스코르빈산"}, ph: 2.8, acidity: 100, coeff: 0.36, phDelta: -0.15},
}

var (
	stabilizerKeywords = []string{
		"pectin", "펙틴", "xanthan", "잔탄", "gellan", "젤란", "guar", "구아검", "carrageenan", "카라기난",
		"cmc", "carboxymethyl", "agar", "한천", "alginate", "알긴산", "locust bean", "gum arabic", "아라비아검",
		"stabilizer", "안정제", "hydrocolloid",
	}
	flavorKeywords = []string{"flavor", "flavour", "essence", "aroma", "향료", "에센스", "플레이버"}
)

// ParsedName is the lowercased name plus what earlier rules have fixed.
type ParsedName struct {
	Lower string
	// FruitText is Lower with sweetener, acidulant and stabilizer keywords removed,
	// so "포도당" or "사과산" do not read as fruits.
	FruitText string
	// Sugar is the sugar content fixed by earlier rules, if any.
	Sugar *float64
}

func parseName(name string) *ParsedName {
	lower := strings.ToLower(strings.TrimSpace(name))
	fruitText := lower
	for _, s := range sweetenerLexicon {
		fruitText = stripAll(fruitText, s.keywords)
	}
	for _, a := range acidulantLexicon {
		fruitText = stripAll(fruitText, a.keywords)
	}
	fruitText = stripAll(fruitText, stabilizerKeywords)
	return &ParsedName{Lower: lower, FruitText: fruitText}
}

func stripAll(s string, keywords []string) string {
	for _, kw := range keywords {
		s = strings.ReplaceAll(s, kw, " ")
	}
	return s
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func matchFruit(text string) (fruitProfile, bool) {
	for _, f := range fruitLexicon {
		if containsAny(text, f.keywords) {
			return f, true
		}
	}
	return fruitProfile{}, false
}

func parseNumber(pattern *regexp.Regexp, s string) (float64, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func applyBrixMarker(n *ParsedName) (model.Attributes, model.Category, bool) {
	bx, ok := parseNumber(brixPattern, n.Lower)
	if !ok {
		return model.Attributes{}, model.CategoryUnknown, false
	}
	return model.Attributes{Sugar: model.Float(bx)}, model.CategoryUnknown, true
}

func applyFoldFactor(n *ParsedName) (model.Attributes, model.Category, bool) {
	factor, ok := parseNumber(foldPattern, n.Lower)
	if !ok {
		return model.Attributes{}, model.CategoryUnknown, false
	}
	// Only juices and concentrates have a base sugar to scale. "Stevia 250x"
	// is a sweetness factor and "Pectin 2x" a dosage.
	fruit, found := matchFruit(n.FruitText)
	if !found && !containsAny(n.Lower, concentrateQualifiers) && !containsAny(n.Lower, juiceQualifiers) {
		return model.Attributes{}, model.CategoryUnknown, false
	}
	base := genericJuiceSugar
	if found {
		base = fruit.sugar
	}
	return model.Attributes{Sugar: model.Float(base * factor)}, model.CategoryConcentrate, true
}

func applyFruit(n *ParsedName) (model.Attributes, model.Category, bool) {
	if containsAny(n.Lower, flavorKeywords) {
		return model.Attributes{}, model.CategoryUnknown, false
	}
	fruit, ok := matchFruit(n.FruitText)
	if !ok {
		return model.Attributes{}, model.CategoryUnknown, false
	}

	multiplier := 1.0
	category := model.CategoryFruit
	switch {
	case containsAny(n.Lower, concentrateQualifiers):
		multiplier = concentrateMultiplier
		category = model.CategoryConcentrate
	case containsAny(n.Lower, juiceQualifiers):
		category = model.CategoryPuree
	}
	// An explicit sugar marker or fold factor fixes the concentration.
	if n.Sugar != nil {
		multiplier = *n.Sugar / fruit.sugar
	}

	return model.Attributes{
		Sugar:     model.Float(fruit.sugar * multiplier),
		PH:        model.Float(fruit.ph),
		Acidity:   model.Float(fruit.acidity * multiplier),
		Sweetness: model.Float(fruit.sweetness * multiplier),
	}, category, true
}

func applySweetener(n *ParsedName) (model.Attributes, model.Category, bool) {
	for _, s := range sweetenerLexicon {
		if containsAny(n.Lower, s.keywords) {
			return model.Attributes{
				Sugar:     model.Float(s.sugar),
				Sweetness: model.Float(s.sweetness),
				Acidity:   model.Float(0),
				PH:        model.Float(neutralPH),
			}, s.category, true
		}
	}
	return model.Attributes{}, model.CategoryUnknown, false
}

func applyAcidulant(n *ParsedName) (model.Attributes, model.Category, bool) {
	for _, a := range acidulantLexicon {
		if containsAny(n.Lower, a.keywords) {
			return model.Attributes{
				Sugar:        model.Float(0),
				Sweetness:    model.Float(0),
				PH:           model.Float(a.ph),
				Acidity:      model.Float(a.acidity),
				AcidityCoeff: model.Float(a.coeff),
				PHDelta:      model.Float(a.phDelta),
			}, model.CategoryAcidulant, true
		}
	}
	return model.Attributes{}, model.CategoryUnknown, false
}

func applyNeutral(keywords []string, category model.Category) func(*ParsedName) (model.Attributes, model.Category, bool) {
	return func(n *ParsedName) (model.Attributes, model.Category, bool) {
		if !containsAny(n.Lower, keywords) {
			return model.Attributes{}, model.CategoryUnknown, false
		}
		return model.Attributes{
			Sugar:     model.Float(0),
			Acidity:   model.Float(0),
			Sweetness: model.Float(0),
			PH:        model.Float(neutralPH),
		}, category, true
	}
}
