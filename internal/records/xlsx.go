package records

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ecofeast-backend/internal/audit"
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Records"

var exportHeader = []any{"Date", "Item ID", "Item Name", "Prepared", "Sold", "Waste", "Revenue", "Loss"}

// RowError describes one spreadsheet row that could not be imported.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
}

// WriteXLSX renders records as a single-sheet workbook.
func WriteXLSX(w io.Writer, recs []models.DailyRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &exportHeader); err != nil {
		return err
	}

	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Date, r.ItemID, r.ItemName, r.Prepared, r.Sold, r.Waste, r.Revenue, r.Loss}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// ParseXLSX reads rows of date, itemId, prepared, sold from the first sheet.
// A header row is skipped when its first cell reads "date". Rows that fail
// validation are reported and left out; empty rows are ignored.
func ParseXLSX(r io.Reader, userID uint, catalog *menu.Catalog, now time.Time) ([]models.DailyRecord, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "date") {
		start = 1
	}

	var (
		recs    []models.DailyRecord
		rowErrs []RowError
	)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		rowNum := i + 1 // spreadsheet rows are 1-based

		rec, err := parseRow(row, userID, catalog, now)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Error: err.Error()})
			continue
		}
		recs = append(recs, rec)
	}
	return recs, rowErrs, nil
}

func parseRow(row []string, userID uint, catalog *menu.Catalog, now time.Time) (models.DailyRecord, error) {
	if len(row) < 4 {
		return models.DailyRecord{}, fmt.Errorf("expected 4 columns, got %d", len(row))
	}

	itemID := strings.TrimSpace(row[1])
	item, ok := catalog.ByID(itemID)
	if !ok {
		return models.DailyRecord{}, fmt.Errorf("unknown menu item %q", itemID)
	}
	prepared, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("prepared: %q is not a whole number", row[2])
	}
	sold, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("sold: %q is not a whole number", row[3])
	}

	return NewDailyRecord(userID, strings.TrimSpace(row[0]), item, prepared, sold, now)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// GET /api/records/export
func ExportRecordsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFrom(c)
		if err != nil {
			return err
		}

		recs, err := repo.ListRecent(c.UserContext(), userID, MaxListed)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "unable to fetch records")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="records.xlsx"`)
		if err := WriteXLSX(c.Response().BodyWriter(), recs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "unable to build spreadsheet")
		}
		return nil
	}
}

// POST /api/records/import (multipart, field "file")
func ImportRecordsHandler(repo Repository, catalog *menu.Catalog, auditStore audit.Store, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFrom(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "unable to open upload")
		}
		defer file.Close()

		recs, rowErrs, err := ParseXLSX(file, userID, catalog, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "spreadsheet could not be read: "+err.Error())
		}
		if len(recs) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ImportResult{Errors: rowErrs})
		}

		if err := repo.CreateBatch(c.UserContext(), recs); err != nil {
			log.Error("import records failed", zap.Uint("user_id", userID), zap.Int("rows", len(recs)), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "unable to save records")
		}

		if err := audit.WriteLog(c.UserContext(), auditStore, audit.LogOptions{
			UserID:      userID,
			UserName:    auth.UsernameFrom(c),
			EntityType:  entityType,
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("imported %d records from %s (%d rows rejected)", len(recs), fileHeader.Filename, len(rowErrs)),
		}); err != nil {
			log.Warn("audit log not written", zap.Error(err))
		}

		return c.Status(fiber.StatusCreated).JSON(ImportResult{Imported: len(recs), Errors: rowErrs})
	}
}
