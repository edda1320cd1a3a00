package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/internal/models"
)

// Report output limits.
const (
	topChefLimit       = 5
	topRecipeLimit     = 10
	topIngredientLimit = 10
	costReportLimit    = 25
)

// ReportSummary is the headline recipe statistics.
type ReportSummary struct {
	TotalRecipes int      `json:"total_recipes"`
	AvgPrepTime  int      `json:"avg_prep_time"`
	AvgServings  int      `json:"avg_servings"`
	CuisineTypes []string `json:"cuisine_types"`
}

// CuisineStat is one row of the cuisine distribution.
type CuisineStat struct {
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
	AvgPrep int    `json:"avg_prep"`
	Pct     int    `json:"pct"`
}

// DifficultyStat is one row of the difficulty analysis.
type DifficultyStat struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	AvgPrep     int    `json:"avg_prep"`
	AvgServings int    `json:"avg_servings"`
	Pct         int    `json:"pct"`
}

// ChefStat summarizes one chef's output. Cuisines holds the chef's top three
// cuisines by recipe count, most-cooked first.
type ChefStat struct {
	Chef        string   `json:"chef"`
	Recipes     int      `json:"recipes"`
	AvgPrepTime int      `json:"avg_prep_time"`
	Cuisines    []string `json:"cuisines"`
}

// PopularRecipe groups identical titles (trimmed, lowercased) across chefs.
type PopularRecipe struct {
	Title   string `json:"title"`
	Count   int    `json:"count"`
	AvgPrep int    `json:"avg_prep"`
}

// IngredientCount is one row of the ingredient usage ranking.
type IngredientCount struct {
	Ingredient string `json:"ingredient"`
	Count      int    `json:"count"`
}

// SeasonalTrend counts recipes created in one (year, month, cuisine) bucket.
type SeasonalTrend struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
}

// CostReport estimates one recipe's cost from matched inventory unit costs.
type CostReport struct {
	Title         string  `json:"title"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Analytics is the full admin reporting read model.
type Analytics struct {
	Summary             ReportSummary        `json:"summary"`
	CuisineDistribution []CuisineStat        `json:"cuisine_distribution"`
	DifficultyAnalysis  []DifficultyStat     `json:"difficulty_analysis"`
	TopChefs            []ChefStat           `json:"top_chefs"`
	PopularRecipes      []PopularRecipe      `json:"popular_recipes"`
	IngredientUsage     []IngredientCount    `json:"ingredient_usage"`
	SeasonalTrends      []SeasonalTrend      `json:"seasonal_trends"`
	CostReports         []CostReport         `json:"cost_reports"`
	Recommendations     []AvailabilityResult `json:"recommendations"`
}

// ReportService computes the admin analytics over all recipes.
type ReportService struct {
	db           *gorm.DB
	matcher      Matcher
	availability *AvailabilityService
}

func NewReportService(db *gorm.DB, matcher Matcher, availability *AvailabilityService) *ReportService {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &ReportService{db: db, matcher: matcher, availability: availability}
}

// Analytics fetches one snapshot of recipes and inventory and runs every
// projection concurrently over it. All-or-nothing per request.
func (s *ReportService) Analytics(ctx context.Context) (*Analytics, error) {
	var (
		recipes []models.Recipe
		items   []models.InventoryItem
	)

	fetch, fetchCtx := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		return s.db.WithContext(fetchCtx).Find(&recipes).Error
	})
	fetch.Go(func() error {
		return s.db.WithContext(fetchCtx).Find(&items).Error
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	analytics := &Analytics{}
	compute, computeCtx := errgroup.WithContext(ctx)
	compute.Go(func() error {
		analytics.CuisineDistribution = CuisineDistribution(recipes)
		analytics.Summary = Summarize(recipes, analytics.CuisineDistribution)
		return nil
	})
	compute.Go(func() error {
		analytics.DifficultyAnalysis = DifficultyAnalysis(recipes)
		return nil
	})
	compute.Go(func() error {
		analytics.TopChefs = TopChefs(recipes)
		return nil
	})
	compute.Go(func() error {
		analytics.PopularRecipes = PopularRecipes(recipes)
		return nil
	})
	compute.Go(func() error {
		analytics.IngredientUsage = IngredientUsage(recipes)
		return nil
	})
	compute.Go(func() error {
		analytics.SeasonalTrends = SeasonalTrends(recipes)
		return nil
	})
	compute.Go(func() error {
		analytics.CostReports = CostReports(recipes, items, s.matcher)
		return nil
	})
	compute.Go(func() error {
		recommendations, err := s.availability.SuggestedRecipes(computeCtx)
		if err != nil {
			return err
		}
		analytics.Recommendations = recommendations
		return nil
	})
	if err := compute.Wait(); err != nil {
		return nil, err
	}
	return analytics, nil
}

// Summarize computes the headline numbers. CuisineTypes mirrors the cuisine
// distribution order.
func Summarize(recipes []models.Recipe, cuisines []CuisineStat) ReportSummary {
	summary := ReportSummary{TotalRecipes: len(recipes), CuisineTypes: make([]string, 0, len(cuisines))}
	for _, c := range cuisines {
		summary.CuisineTypes = append(summary.CuisineTypes, c.Cuisine)
	}
	if len(recipes) == 0 {
		return summary
	}

	var totalPrep, totalServings int
	for _, r := range recipes {
		totalPrep += r.PrepTime
		totalServings += r.Servings
	}
	summary.AvgPrepTime = roundToInt(float64(totalPrep) / float64(len(recipes)))
	summary.AvgServings = roundToInt(float64(totalServings) / float64(len(recipes)))
	return summary
}

// CuisineDistribution counts recipes per cuisine with average prep time and
// percentage of total, sorted by count descending.
func CuisineDistribution(recipes []models.Recipe) []CuisineStat {
	type acc struct {
		count     int
		totalPrep int
	}
	byCuisine := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range recipes {
		a := byCuisine[r.CuisineType]
		if a == nil {
			a = &acc{}
			byCuisine[r.CuisineType] = a
			order = append(order, r.CuisineType)
		}
		a.count++
		a.totalPrep += r.PrepTime
	}

	total := len(recipes)
	if total == 0 {
		total = 1
	}
	stats := make([]CuisineStat, 0, len(order))
	for _, cuisine := range order {
		a := byCuisine[cuisine]
		stats = append(stats, CuisineStat{
			Cuisine: cuisine,
			Count:   a.count,
			AvgPrep: roundToInt(float64(a.totalPrep) / float64(a.count)),
			Pct:     roundToInt(float64(a.count) / float64(total) * 100),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// DifficultyAnalysis counts recipes per difficulty with average prep time,
// average servings and percentage of total, sorted by count descending.
func DifficultyAnalysis(recipes []models.Recipe) []DifficultyStat {
	type acc struct {
		count         int
		totalPrep     int
		totalServings int
	}
	byDifficulty := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range recipes {
		a := byDifficulty[r.Difficulty]
		if a == nil {
			a = &acc{}
			byDifficulty[r.Difficulty] = a
			order = append(order, r.Difficulty)
		}
		a.count++
		a.totalPrep += r.PrepTime
		a.totalServings += r.Servings
	}

	total := len(recipes)
	if total == 0 {
		total = 1
	}
	stats := make([]DifficultyStat, 0, len(order))
	for _, difficulty := range order {
		a := byDifficulty[difficulty]
		stats = append(stats, DifficultyStat{
			Difficulty:  difficulty,
			Count:       a.count,
			AvgPrep:     roundToInt(float64(a.totalPrep) / float64(a.count)),
			AvgServings: roundToInt(float64(a.totalServings) / float64(a.count)),
			Pct:         roundToInt(float64(a.count) / float64(total) * 100),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// TopChefs rolls recipes up per chef: total recipe count, average prep time
// across all their recipes, and their top three cuisines by recipe count
// (first-seen order breaks ties). Top five chefs by recipe count.
func TopChefs(recipes []models.Recipe) []ChefStat {
	type cuisineCount struct {
		cuisine string
		count   int
	}
	type chefAcc struct {
		totalRecipes int
		totalPrep    int
		cuisines     []cuisineCount
		index        map[string]int
	}
	byChef := make(map[string]*chefAcc)
	order := make([]string, 0)

	for _, r := range recipes {
		a := byChef[r.Chef]
		if a == nil {
			a = &chefAcc{index: make(map[string]int)}
			byChef[r.Chef] = a
			order = append(order, r.Chef)
		}
		a.totalRecipes++
		a.totalPrep += r.PrepTime
		if i, ok := a.index[r.CuisineType]; ok {
			a.cuisines[i].count++
		} else {
			a.index[r.CuisineType] = len(a.cuisines)
			a.cuisines = append(a.cuisines, cuisineCount{cuisine: r.CuisineType, count: 1})
		}
	}

	stats := make([]ChefStat, 0, len(order))
	for _, chef := range order {
		a := byChef[chef]
		sort.SliceStable(a.cuisines, func(i, j int) bool { return a.cuisines[i].count > a.cuisines[j].count })
		top := a.cuisines
		if len(top) > 3 {
			top = top[:3]
		}
		cuisines := make([]string, 0, len(top))
		for _, c := range top {
			cuisines = append(cuisines, c.cuisine)
		}
		stats = append(stats, ChefStat{
			Chef:        chef,
			Recipes:     a.totalRecipes,
			AvgPrepTime: roundToInt(float64(a.totalPrep) / float64(a.totalRecipes)),
			Cuisines:    cuisines,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Recipes > stats[j].Recipes })
	if len(stats) > topChefLimit {
		stats = stats[:topChefLimit]
	}
	return stats
}

// PopularRecipes groups identical titles (trimmed + lowercased) across all
// chefs, counting occurrences and averaging prep time. Top ten by count.
func PopularRecipes(recipes []models.Recipe) []PopularRecipe {
	type acc struct {
		count     int
		totalPrep int
	}
	byTitle := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range recipes {
		title := strings.ToLower(strings.TrimSpace(r.Title))
		a := byTitle[title]
		if a == nil {
			a = &acc{}
			byTitle[title] = a
			order = append(order, title)
		}
		a.count++
		a.totalPrep += r.PrepTime
	}

	popular := make([]PopularRecipe, 0, len(order))
	for _, title := range order {
		a := byTitle[title]
		popular = append(popular, PopularRecipe{
			Title:   title,
			Count:   a.count,
			AvgPrep: roundToInt(float64(a.totalPrep) / float64(a.count)),
		})
	}
	sort.SliceStable(popular, func(i, j int) bool { return popular[i].Count > popular[j].Count })
	if len(popular) > topRecipeLimit {
		popular = popular[:topRecipeLimit]
	}
	return popular
}

// IngredientUsage counts every ingredient line (trimmed + lowercased, no
// quantity parsing) across all recipes. Top ten by count.
func IngredientUsage(recipes []models.Recipe) []IngredientCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range recipes {
		for _, ingredient := range r.Ingredients {
			token := strings.TrimSpace(strings.ToLower(ingredient))
			if _, ok := counts[token]; !ok {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	usage := make([]IngredientCount, 0, len(order))
	for _, token := range order {
		usage = append(usage, IngredientCount{Ingredient: token, Count: counts[token]})
	}
	sort.SliceStable(usage, func(i, j int) bool { return usage[i].Count > usage[j].Count })
	if len(usage) > topIngredientLimit {
		usage = usage[:topIngredientLimit]
	}
	return usage
}

// SeasonalTrends counts recipes created per (year, month, cuisine), sorted by
// year descending then month descending.
func SeasonalTrends(recipes []models.Recipe) []SeasonalTrend {
	type key struct {
		year    int
		month   int
		cuisine string
	}
	counts := make(map[key]int)
	for _, r := range recipes {
		counts[key{year: r.CreatedAt.Year(), month: int(r.CreatedAt.Month()), cuisine: r.CuisineType}]++
	}

	trends := make([]SeasonalTrend, 0, len(counts))
	for k, count := range counts {
		trends = append(trends, SeasonalTrend{Year: k.year, Month: k.month, Cuisine: k.cuisine, Count: count})
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year > trends[j].Year
		}
		if trends[i].Month != trends[j].Month {
			return trends[i].Month > trends[j].Month
		}
		return trends[i].Cuisine < trends[j].Cuisine
	})
	return trends
}

// CostReports estimates each recipe's cost by summing the unit cost of every
// inventory item whose name substring-matches one of the recipe's ingredient
// lines. Unit cost only, not cost×quantity: the estimate prices one unit of
// each matched ingredient rather than valuing the stock on hand. Top 25 by
// estimated cost.
func CostReports(recipes []models.Recipe, items []models.InventoryItem, matcher Matcher) []CostReport {
	reports := make([]CostReport, 0, len(recipes))
	for _, r := range recipes {
		total := decimal.Zero
		for _, item := range items {
			for _, ingredient := range r.Ingredients {
				if matcher.Matches(ingredient, item.IngredientName) {
					total = total.Add(decimal.NewFromFloat(item.Cost))
					break
				}
			}
		}
		reports = append(reports, CostReport{Title: r.Title, EstimatedCost: round2(total)})
	}

	sort.SliceStable(reports, func(i, j int) bool { return reports[i].EstimatedCost > reports[j].EstimatedCost })
	if len(reports) > costReportLimit {
		reports = reports[:costReportLimit]
	}
	return reports
}

func roundToInt(f float64) int {
	return int(math.Round(f))
}
