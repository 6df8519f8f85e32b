package metrics

import (
	"sort"
	"strings"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

// defaultBreedBaseValue is used for breeds missing from the lookup table.
const defaultBreedBaseValue = 800

// breedBaseValues is a heuristic base-price table, not a market query.
var breedBaseValues = map[string]float64{
	"labrador retriever": 1200,
	"golden retriever":   1500,
	"german shepherd":    1800,
	"french bulldog":     3500,
	"poodle":             1600,
	"corgi":              2200,
	"samoyed":            2500,
	"border collie":      1400,
	"shiba inu":          2000,
	"husky":              1300,
}

// expenseKeywordGroups maps bucket names to ordered keyword groups. The first
// group whose keywords match the expense category wins; categories matching
// nothing land in "other".
var expenseKeywordGroups = []struct {
	bucket   string
	keywords []string
}{
	{"food", []string{"food", "feed", "nutrition", "treat", "kibble"}},
	{"healthcare", []string{"vet", "medical", "health", "vaccin", "medicine", "deworm", "surgery"}},
	{"breeding", []string{"breed", "stud", "mating", "whelp", "insemination"}},
	{"grooming", []string{"groom", "wash", "trim", "nail", "bath"}},
}

// ROI returns the return-on-investment percentage for one animal. Animals
// without a recorded purchase price yield zero rather than dividing by zero.
func ROI(purchasePrice, salePrice, totalExpenses float64) float64 {
	if purchasePrice == 0 {
		return 0
	}
	return (salePrice - purchasePrice - totalExpenses) / purchasePrice * 100
}

// EstimateMarketValue computes a heuristic market value from breed base price,
// an age multiplier and a breeding-age premium for females.
func EstimateMarketValue(breed string, ageMonths int, gender models.Gender) float64 {
	base := defaultBreedBaseValue
	if v, ok := breedBaseValues[strings.ToLower(strings.TrimSpace(breed))]; ok {
		base = int(v)
	}

	var ageMultiplier float64
	switch {
	case ageMonths < 3:
		ageMultiplier = 1.2
	case ageMonths < 12:
		ageMultiplier = 1.0
	case ageMonths < 24:
		ageMultiplier = 0.8
	default:
		ageMultiplier = 0.6
	}

	value := float64(base) * ageMultiplier
	if gender == models.GenderFemale && ageMonths >= 6 && ageMonths <= 60 {
		value *= 1.1
	}
	return value
}

// CategorizeExpenses buckets each expense by substring match of its category
// against the ordered keyword groups.
func CategorizeExpenses(expenses []models.ExpenseRecord) models.ExpenseBreakdown {
	var breakdown models.ExpenseBreakdown
	for _, expense := range expenses {
		switch matchExpenseBucket(expense.Category) {
		case "food":
			breakdown.Food += expense.Amount
		case "healthcare":
			breakdown.Healthcare += expense.Amount
		case "breeding":
			breakdown.Breeding += expense.Amount
		case "grooming":
			breakdown.Grooming += expense.Amount
		default:
			breakdown.Other += expense.Amount
		}
	}
	return breakdown
}

func matchExpenseBucket(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	for _, group := range expenseKeywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				return group.bucket
			}
		}
	}
	return "other"
}

// MonthlyCosts buckets expenses into a YYYY-MM time series, ascending by month.
func MonthlyCosts(expenses []models.ExpenseRecord) []models.MonthlyCost {
	byMonth := make(map[string]float64)
	for _, expense := range expenses {
		byMonth[expense.Date.Format("2006-01")] += expense.Amount
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	costs := make([]models.MonthlyCost, 0, len(months))
	for _, month := range months {
		costs = append(costs, models.MonthlyCost{Month: month, Amount: byMonth[month]})
	}
	return costs
}

// LitterProfitability computes revenue, costs and per-puppy economics for one
// delivered litter from the sales and expenses tagged to it.
func LitterProfitability(litter models.LitterEvent, sales []models.SaleRecord, expenses []models.ExpenseRecord) models.LitterProfit {
	var revenue, costs float64
	for _, sale := range sales {
		revenue += sale.Amount
	}
	for _, expense := range expenses {
		costs += expense.Amount
	}

	profit := models.LitterProfit{
		MotherID:     litter.MotherID,
		FatherID:     litter.FatherID,
		PuppiesCount: litter.PuppiesCount,
		TotalRevenue: revenue,
		TotalCosts:   costs,
		NetProfit:    revenue - costs,
	}
	if litter.PuppiesCount > 0 {
		profit.CostPerPuppy = costs / float64(litter.PuppiesCount)
	}
	if len(sales) > 0 {
		profit.AverageSalePrice = revenue / float64(len(sales))
	}
	return profit
}
