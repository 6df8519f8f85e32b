// Package aggregator pulls the six raw record sets from the sheet repository
// and assembles the unified per-animal detail list plus the breeding,
// financial and health analysis blocks consumed by the report orchestrator.
package aggregator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/internal/metrics"
	"github.com/kenneldesk/kenneldesk/internal/repository/sheets"
)

const (
	maxFetchAttempts = 3
	fetchBackoffUnit = time.Second
)

// Service orchestrates repository reads and per-animal derivation. Every
// Aggregate call computes fresh from a new repository snapshot; nothing is
// cached across invocations.
type Service struct {
	repo   sheets.Repository
	logger *zap.Logger
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewService wires a new aggregation service instance.
func NewService(repo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Aggregate fetches the six raw record sets serially, each with its own
// bounded retry loop, and derives the full business snapshot. A fetch that
// exhausts its attempts fails the whole aggregation; there is no partial
// result.
func (s *Service) Aggregate(ctx context.Context) (*models.AggregateResult, error) {
	now := s.now().UTC()

	dogs, err := fetchWithRetry(ctx, s, "dogs", s.repo.ListDogs)
	if err != nil {
		return nil, err
	}
	purchases, err := fetchWithRetry(ctx, s, "purchases", s.repo.ListPurchases)
	if err != nil {
		return nil, err
	}
	sales, err := fetchWithRetry(ctx, s, "sales", s.repo.ListSales)
	if err != nil {
		return nil, err
	}
	expenses, err := fetchWithRetry(ctx, s, "expenses", s.repo.ListExpenses)
	if err != nil {
		return nil, err
	}
	healthEvents, err := fetchWithRetry(ctx, s, "health_events", s.repo.ListHealthEvents)
	if err != nil {
		return nil, err
	}
	litters, err := fetchWithRetry(ctx, s, "litters", s.repo.ListLitters)
	if err != nil {
		return nil, err
	}

	s.logger.Info("snapshot loaded",
		zap.Int("dogs", len(dogs)),
		zap.Int("purchases", len(purchases)),
		zap.Int("sales", len(sales)),
		zap.Int("expenses", len(expenses)),
		zap.Int("health_events", len(healthEvents)),
		zap.Int("litters", len(litters)))

	result := &models.AggregateResult{
		Dogs:        make([]models.DogDetail, 0, len(dogs)),
		GeneratedAt: now,
	}

	namesByID := make(map[string]string, len(dogs))
	for _, dog := range dogs {
		namesByID[dog.ID] = dog.Name
	}

	for _, dog := range dogs {
		detail := s.buildDogDetail(dog, purchases, sales, expenses, healthEvents, litters, now)
		result.Dogs = append(result.Dogs, detail)

		dogLitters := littersFor(dog, litters)
		dogExpenses := expensesFor(dog.ID, expenses)

		s.appendBreedingInfo(&result.Breeding, detail, dogLitters, namesByID, now)
		result.Financial.Dogs = append(result.Financial.Dogs, s.buildFinancialSummary(detail, dogExpenses))
		result.Health.Dogs = append(result.Health.Dogs, s.buildHealthReport(detail, now))
	}

	result.Financial.Litters = litterProfits(litters, sales, expenses)
	result.Summary = buildSummary(result, sales, expenses)
	result.Financial.TotalRevenue = result.Summary.TotalRevenue
	result.Financial.TotalExpenses = result.Summary.TotalExpenses
	result.Financial.NetProfit = result.Summary.TotalRevenue - result.Summary.TotalExpenses

	return result, nil
}

// fetchWithRetry attempts a repository read up to maxFetchAttempts times with
// a fixed attempt*1s backoff, surfacing the final underlying error verbatim.
func fetchWithRetry[T any](ctx context.Context, s *Service, name string, fn func(context.Context) ([]T, error)) ([]T, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		rows, err := fn(ctx)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		s.logger.Warn("fetch attempt failed",
			zap.String("entity", name),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < maxFetchAttempts {
			s.sleep(time.Duration(attempt) * fetchBackoffUnit)
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", name, lastErr)
}

func (s *Service) buildDogDetail(dog models.Dog, purchases []models.PurchaseRecord, sales []models.SaleRecord, expenses []models.ExpenseRecord, healthEvents []models.HealthEvent, litters []models.LitterEvent, now time.Time) models.DogDetail {
	detail := models.DogDetail{
		Dog:       dog,
		AgeMonths: metrics.AgeInMonths(dog.BirthDate, now),
	}

	dogEvents := healthEventsFor(dog.ID, healthEvents)
	for _, event := range dogEvents {
		if detail.LastHealthCheck == nil || event.Date.After(*detail.LastHealthCheck) {
			date := event.Date
			detail.LastHealthCheck = &date
		}
		if event.RecordType != models.HealthRecordVaccination {
			continue
		}
		vaccineType := event.TreatmentType
		if vaccineType == "" {
			vaccineType = event.Description
		}
		detail.VaccinationRecords = append(detail.VaccinationRecords, models.VaccinationRecord{
			VaccineType:  vaccineType,
			Date:         event.Date,
			NextDue:      metrics.NextVaccinationDue(vaccineType, event.Date),
			Veterinarian: event.Veterinarian,
			Cost:         event.Cost,
		})
	}
	detail.HealthScore = metrics.HealthScore(dogEvents, now)

	for _, litter := range littersFor(dog, litters) {
		partnerID := litter.FatherID
		if dog.ID == litter.FatherID {
			partnerID = litter.MotherID
		}
		detail.BreedingRecords = append(detail.BreedingRecords, models.BreedingRecord{
			Kind:         models.BreedingRecordMating,
			Date:         litter.MatingDate,
			PartnerID:    partnerID,
			PuppiesCount: litter.PuppiesCount,
		})
		if litter.BirthDate != nil {
			detail.BreedingRecords = append(detail.BreedingRecords, models.BreedingRecord{
				Kind:         models.BreedingRecordBirth,
				Date:         *litter.BirthDate,
				PartnerID:    partnerID,
				PuppiesCount: litter.PuppiesCount,
			})
		}
	}

	// Only the first purchase and first sale found feed ROI; expenses are
	// unbounded.
	for _, purchase := range purchases {
		if purchase.DogID != dog.ID {
			continue
		}
		detail.FinancialRecords = append(detail.FinancialRecords, models.FinancialRecord{
			Kind:   models.FinancialRecordPurchase,
			Date:   purchase.Date,
			Amount: purchase.Amount,
		})
		break
	}
	for _, sale := range sales {
		if sale.DogID != dog.ID {
			continue
		}
		detail.FinancialRecords = append(detail.FinancialRecords, models.FinancialRecord{
			Kind:   models.FinancialRecordSale,
			Date:   sale.Date,
			Amount: sale.Amount,
		})
		break
	}
	for _, expense := range expenses {
		if expense.DogID != dog.ID {
			continue
		}
		detail.FinancialRecords = append(detail.FinancialRecords, models.FinancialRecord{
			Kind:     models.FinancialRecordExpense,
			Date:     expense.Date,
			Amount:   expense.Amount,
			Category: expense.Category,
		})
	}

	return detail
}

func (s *Service) appendBreedingInfo(analysis *models.BreedingAnalysis, detail models.DogDetail, dogLitters []models.LitterEvent, namesByID map[string]string, now time.Time) {
	if detail.Gender != models.GenderFemale {
		analysis.MaleDogs = append(analysis.MaleDogs, models.MaleBreedingInfo{
			DogID:          detail.ID,
			Name:           detail.Name,
			AgeMonths:      detail.AgeMonths,
			BreedingStatus: metrics.ClassifyMale(detail.AgeMonths),
		})
		return
	}

	motherLitters := make([]models.LitterEvent, 0, len(dogLitters))
	for _, litter := range dogLitters {
		if litter.MotherID == detail.ID {
			motherLitters = append(motherLitters, litter)
		}
	}

	pregnancy := metrics.CurrentPregnancy(motherLitters, now)
	if pregnancy != nil {
		pregnancy.PartnerName = namesByID[pregnancy.PartnerID]
	}

	info := models.FemaleBreedingInfo{
		DogID:            detail.ID,
		Name:             detail.Name,
		AgeMonths:        detail.AgeMonths,
		BreedingStatus:   metrics.ClassifyFemale(detail.AgeMonths, pregnancy != nil),
		PregnancyDetails: pregnancy,
		History:          metrics.BreedingHistory(motherLitters),
	}

	// Heat estimation needs a last observed heat; the closest signal in the
	// record set is the most recent whelping date.
	var lastBirth *time.Time
	for _, litter := range motherLitters {
		if litter.BirthDate == nil {
			continue
		}
		if lastBirth == nil || litter.BirthDate.After(*lastBirth) {
			lastBirth = litter.BirthDate
		}
	}
	info.NextHeatEstimate = metrics.EstimateNextHeatCycle(lastBirth, detail.AgeMonths)

	analysis.FemaleDogs = append(analysis.FemaleDogs, info)
}

func (s *Service) buildFinancialSummary(detail models.DogDetail, dogExpenses []models.ExpenseRecord) models.FinancialSummary {
	var purchasePrice, salePrice, totalExpenses float64
	for _, record := range detail.FinancialRecords {
		switch record.Kind {
		case models.FinancialRecordPurchase:
			purchasePrice = record.Amount
		case models.FinancialRecordSale:
			salePrice = record.Amount
		case models.FinancialRecordExpense:
			totalExpenses += record.Amount
		}
	}

	return models.FinancialSummary{
		DogID:                detail.ID,
		Name:                 detail.Name,
		PurchasePrice:        purchasePrice,
		SalePrice:            salePrice,
		EstimatedMarketValue: metrics.EstimateMarketValue(detail.Breed, detail.AgeMonths, detail.Gender),
		TotalExpenses:        totalExpenses,
		ProfitLoss:           salePrice - purchasePrice - totalExpenses,
		ROIPercent:           metrics.ROI(purchasePrice, salePrice, totalExpenses),
		ExpenseBreakdown:     metrics.CategorizeExpenses(dogExpenses),
		MonthlyCosts:         metrics.MonthlyCosts(dogExpenses),
	}
}

func (s *Service) buildHealthReport(detail models.DogDetail, now time.Time) models.HealthReport {
	return models.HealthReport{
		DogID:        detail.ID,
		Name:         detail.Name,
		HealthScore:  detail.HealthScore,
		Vaccinations: metrics.VaccinationStatus(detail.VaccinationRecords, now),
		UpcomingCare: metrics.UpcomingCare(detail.VaccinationRecords, detail.HealthScore, now),
	}
}

// litterProfits computes profitability for every delivered litter. Sales and
// expenses count toward a litter when they reference the mother and fall on or
// after the mating date.
func litterProfits(litters []models.LitterEvent, sales []models.SaleRecord, expenses []models.ExpenseRecord) []models.LitterProfit {
	profits := make([]models.LitterProfit, 0, len(litters))
	for _, litter := range litters {
		if litter.BirthDate == nil {
			continue
		}

		var litterSales []models.SaleRecord
		for _, sale := range sales {
			if sale.DogID == litter.MotherID && !sale.Date.Before(litter.MatingDate) {
				litterSales = append(litterSales, sale)
			}
		}
		var litterExpenses []models.ExpenseRecord
		for _, expense := range expenses {
			if expense.DogID == litter.MotherID && !expense.Date.Before(litter.MatingDate) {
				litterExpenses = append(litterExpenses, expense)
			}
		}

		profits = append(profits, metrics.LitterProfitability(litter, litterSales, litterExpenses))
	}
	return profits
}

func buildSummary(result *models.AggregateResult, sales []models.SaleRecord, expenses []models.ExpenseRecord) models.AggregateSummary {
	summary := models.AggregateSummary{TotalDogs: len(result.Dogs)}

	for _, female := range result.Breeding.FemaleDogs {
		summary.FemaleDogs++
		switch female.BreedingStatus {
		case models.BreedingAvailable:
			summary.BreedingEligible++
		case models.BreedingPregnant:
			summary.PregnantDogs++
		}
	}
	for _, male := range result.Breeding.MaleDogs {
		summary.MaleDogs++
		if male.BreedingStatus == models.BreedingAvailable {
			summary.BreedingEligible++
		}
	}

	for _, report := range result.Health.Dogs {
		for _, task := range report.UpcomingCare {
			if task.Priority == models.PriorityUrgent {
				summary.UrgentCareDogs++
				break
			}
		}
	}

	for _, sale := range sales {
		summary.TotalRevenue += sale.Amount
	}
	for _, expense := range expenses {
		summary.TotalExpenses += expense.Amount
	}

	return summary
}

func littersFor(dog models.Dog, litters []models.LitterEvent) []models.LitterEvent {
	matched := make([]models.LitterEvent, 0, len(litters))
	for _, litter := range litters {
		if litter.MotherID == dog.ID || litter.FatherID == dog.ID {
			matched = append(matched, litter)
		}
	}
	return matched
}

func expensesFor(dogID string, expenses []models.ExpenseRecord) []models.ExpenseRecord {
	matched := make([]models.ExpenseRecord, 0, len(expenses))
	for _, expense := range expenses {
		if expense.DogID == dogID {
			matched = append(matched, expense)
		}
	}
	return matched
}

func healthEventsFor(dogID string, events []models.HealthEvent) []models.HealthEvent {
	matched := make([]models.HealthEvent, 0, len(events))
	for _, event := range events {
		if event.DogID == dogID {
			matched = append(matched, event)
		}
	}
	return matched
}
