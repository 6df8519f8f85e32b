// Package sheets adapts the kennel's Google Sheets spreadsheet into typed
// record lists. Each entity kind lives on its own sheet; rows arrive as loose
// [][]interface{} values and are decoded (or skipped with a debug log) here at
// the boundary so nothing loosely typed crosses into the metrics modules.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/kenneldesk/kenneldesk/internal/config"
	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/internal/metrics"
)

const (
	dateLayout = "2006-01-02"

	dogsDataRange      = "Dogs!A2:G"
	purchasesDataRange = "Purchases!A2:C"
	salesDataRange     = "Sales!A2:C"
	expensesDataRange  = "Expenses!A2:E"
	healthDataRange    = "Health!A2:G"
	littersDataRange   = "Litters!A2:G"
)

// Repository exposes bulk read access to the six kennel record sets.
type Repository interface {
	ListDogs(ctx context.Context) ([]models.Dog, error)
	ListPurchases(ctx context.Context) ([]models.PurchaseRecord, error)
	ListSales(ctx context.Context) ([]models.SaleRecord, error)
	ListExpenses(ctx context.Context) ([]models.ExpenseRecord, error)
	ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error)
	ListLitters(ctx context.Context) ([]models.LitterEvent, error)
}

// GoogleSheetRepository implements Repository using the official Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ListDogs reads the animal roster.
// Columns: id, name, breed, gender, birth_date, status, weight_kg.
func (r *GoogleSheetRepository) ListDogs(ctx context.Context) ([]models.Dog, error) {
	rows, err := r.readRange(ctx, dogsDataRange)
	if err != nil {
		return nil, err
	}

	dogs := make([]models.Dog, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			continue
		}
		birthDate, err := parseDate(row[4])
		if err != nil {
			r.logger.Debug("skip dog row with invalid birth date", zap.Int("row", i), zap.Error(err))
			continue
		}
		dog := models.Dog{
			ID:        asString(row[0]),
			Name:      asString(row[1]),
			Breed:     asString(row[2]),
			Gender:    parseGender(row[3]),
			BirthDate: birthDate,
		}
		if dog.ID == "" {
			r.logger.Debug("skip dog row without id", zap.Int("row", i))
			continue
		}
		if len(row) > 5 {
			dog.Status = asString(row[5])
		}
		if len(row) > 6 {
			if weight, err := parseFloat(row[6]); err == nil {
				dog.WeightKg = weight
			}
		}
		dogs = append(dogs, dog)
	}
	return dogs, nil
}

// ListPurchases reads acquisition rows. Columns: dog_id, amount, purchase_date.
func (r *GoogleSheetRepository) ListPurchases(ctx context.Context) ([]models.PurchaseRecord, error) {
	rows, err := r.readRange(ctx, purchasesDataRange)
	if err != nil {
		return nil, err
	}

	purchases := make([]models.PurchaseRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		amount, amountErr := parseFloat(row[1])
		date, dateErr := parseDate(row[2])
		if amountErr != nil || dateErr != nil {
			r.logger.Debug("skip malformed purchase row", zap.Int("row", i))
			continue
		}
		purchases = append(purchases, models.PurchaseRecord{
			DogID:  asString(row[0]),
			Amount: amount,
			Date:   date,
		})
	}
	return purchases, nil
}

// ListSales reads sale rows. Columns: dog_id, amount, sale_date.
func (r *GoogleSheetRepository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	rows, err := r.readRange(ctx, salesDataRange)
	if err != nil {
		return nil, err
	}

	sales := make([]models.SaleRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		amount, amountErr := parseFloat(row[1])
		date, dateErr := parseDate(row[2])
		if amountErr != nil || dateErr != nil {
			r.logger.Debug("skip malformed sale row", zap.Int("row", i))
			continue
		}
		sales = append(sales, models.SaleRecord{
			DogID:  asString(row[0]),
			Amount: amount,
			Date:   date,
		})
	}
	return sales, nil
}

// ListExpenses reads expense rows.
// Columns: dog_id, amount, category, expense_date, description.
func (r *GoogleSheetRepository) ListExpenses(ctx context.Context) ([]models.ExpenseRecord, error) {
	rows, err := r.readRange(ctx, expensesDataRange)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.ExpenseRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			continue
		}
		amount, amountErr := parseFloat(row[1])
		date, dateErr := parseDate(row[3])
		if amountErr != nil || dateErr != nil {
			r.logger.Debug("skip malformed expense row", zap.Int("row", i))
			continue
		}
		expense := models.ExpenseRecord{
			DogID:    asString(row[0]),
			Amount:   amount,
			Category: asString(row[2]),
			Date:     date,
		}
		if len(row) > 4 {
			expense.Description = asString(row[4])
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// ListHealthEvents reads health rows.
// Columns: dog_id, record_type, treatment_type, description, record_date,
// veterinarian, cost.
func (r *GoogleSheetRepository) ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error) {
	rows, err := r.readRange(ctx, healthDataRange)
	if err != nil {
		return nil, err
	}

	events := make([]models.HealthEvent, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			continue
		}
		date, err := parseDate(row[4])
		if err != nil {
			r.logger.Debug("skip health row with invalid date", zap.Int("row", i), zap.Error(err))
			continue
		}
		event := models.HealthEvent{
			DogID:         asString(row[0]),
			RecordType:    strings.ToLower(asString(row[1])),
			TreatmentType: asString(row[2]),
			Description:   asString(row[3]),
			Date:          date,
		}
		if len(row) > 5 {
			event.Veterinarian = asString(row[5])
		}
		if len(row) > 6 {
			if cost, err := parseFloat(row[6]); err == nil {
				event.Cost = cost
			}
		}
		events = append(events, event)
	}
	return events, nil
}

// ListLitters reads litter rows.
// Columns: mother_id, father_id, mating_date, birth_date, expected_birth_date,
// puppies_count, notes. birth_date may be blank for open pregnancies.
func (r *GoogleSheetRepository) ListLitters(ctx context.Context) ([]models.LitterEvent, error) {
	rows, err := r.readRange(ctx, littersDataRange)
	if err != nil {
		return nil, err
	}

	litters := make([]models.LitterEvent, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		matingDate, err := parseDate(row[2])
		if err != nil {
			r.logger.Debug("skip litter row with invalid mating date", zap.Int("row", i), zap.Error(err))
			continue
		}
		litter := models.LitterEvent{
			MotherID:          asString(row[0]),
			FatherID:          asString(row[1]),
			MatingDate:        matingDate,
			ExpectedBirthDate: matingDate.AddDate(0, 0, metrics.GestationDays),
		}
		if len(row) > 3 {
			if birthDate, err := parseDate(row[3]); err == nil {
				litter.BirthDate = &birthDate
			}
		}
		if len(row) > 4 {
			if expected, err := parseDate(row[4]); err == nil {
				litter.ExpectedBirthDate = expected
			}
		}
		if len(row) > 5 {
			if count, err := parseInt(row[5]); err == nil {
				litter.PuppiesCount = count
			}
		}
		if len(row) > 6 {
			litter.Notes = asString(row[6])
		}
		litters = append(litters, litter)
	}
	return litters, nil
}

func (r *GoogleSheetRepository) readRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}

func asString(value interface{}) string {
	return strings.TrimSpace(fmt.Sprint(value))
}

func parseGender(value interface{}) models.Gender {
	switch strings.ToLower(asString(value)) {
	case "female", "f", "母":
		return models.GenderFemale
	default:
		return models.GenderMale
	}
}

func parseDate(value interface{}) (time.Time, error) {
	str := asString(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseInt(value interface{}) (int, error) {
	str := asString(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.ReplaceAll(asString(value), ",", "")
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
