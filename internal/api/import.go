package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"go.uber.org/zap"
)

// ImportHandler bulk-loads customers from an uploaded spreadsheet.
// Expected columns, in order: name, phone, email, address line1, city,
// state, service category url. A header row is detected and skipped.
type ImportHandler struct {
	repo db.CustomerRepository
	log  *zap.Logger
}

func NewImportHandler(repo db.CustomerRepository, log *zap.Logger) *ImportHandler {
	return &ImportHandler{repo: repo, log: log}
}

func (h *ImportHandler) ImportCustomers(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload error: " + err.Error()})
		return
	}
	defer file.Close()

	var rows [][]string
	switch {
	case strings.HasSuffix(header.Filename, ".csv"):
		rows, err = parseCSV(file)
	case strings.HasSuffix(header.Filename, ".xlsx"):
		rows, err = parseXLSX(file)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file parsing error: " + err.Error()})
		return
	}

	imported := 0
	var rowErrors []string
	ctx := c.Request.Context()
	for i, row := range rows {
		if i == 0 && looksLikeHeader(row) {
			continue
		}
		req := rowToRequest(row)
		if fields := req.validate(); fields != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: invalid record", i+1))
			continue
		}
		customer := req.toModel()
		field, err := h.repo.ContactConflict(ctx, customer.Phone, customer.Email, "")
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		if field != "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: duplicate %s", i+1, field))
			continue
		}
		if err := h.repo.Create(ctx, &customer); err != nil {
			respondError(c, h.log, err)
			return
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"skipped":  len(rowErrors),
		"errors":   rowErrors,
	})
}

func rowToRequest(row []string) customerRequest {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return customerRequest{
		Name:  get(0),
		Phone: get(1),
		Email: get(2),
		Address: models.Address{
			Line1: get(3),
			City:  get(4),
			State: get(5),
		},
		ServiceCategoryURL: get(6),
	}
}

func looksLikeHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name")
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func parseXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
