package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// csvColumns is the fixed bulk interchange column order. Prices travel
// in major currency units; everything else is verbatim.
var csvColumns = []string{
	"id", "title", "price_rub", "photo_file_id", "descr",
	"category", "brand", "sizes", "source_chat_id", "source_msg_id",
}

var hundred = decimal.NewFromInt(100)

// CSVService handles bulk catalog export and import.
type CSVService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCSVService creates a new CSV service
func NewCSVService(store *store.Store) *CSVService {
	return &CSVService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Export writes the full catalog as CSV, newest first.
func (s *CSVService) Export(ctx context.Context, w io.Writer) error {
	products, err := s.store.AllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog for export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}

	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			decimal.NewFromInt(p.Price).Div(hundred).String(),
			strOrEmpty(p.PhotoFileID),
			strOrEmpty(p.Description),
			p.Category,
			p.Brand,
			strOrEmpty(p.Sizes),
			int64OrEmpty(p.SourceChatID),
			int64OrEmpty(p.SourceMsgID),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportResult aggregates a bulk import run. A single malformed row
// never aborts the batch; it is counted and skipped.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import reads catalog rows from CSV. Missing fields fall back to the
// same sentinel defaults the ingestion pipeline uses; the price column
// is in major units with either decimal comma or point.
func (s *CSVService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	result := &ImportResult{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			util.ImportRowsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		p, ok := s.rowToProduct(col, record)
		if !ok {
			result.Skipped++
			util.ImportRowsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if _, _, err := s.store.UpsertProduct(ctx, p); err != nil {
			s.logger.Warn("Failed to import CSV row", zap.Error(err))
			result.Skipped++
			util.ImportRowsTotal.WithLabelValues("skipped").Inc()
			continue
		}
		result.Imported++
		util.ImportRowsTotal.WithLabelValues("imported").Inc()
	}

	s.logger.Info("CSV import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// rowToProduct converts one CSV record, applying sentinel defaults for
// absent fields. Rows with an unparseable or negative price are
// malformed.
func (s *CSVService) rowToProduct(col map[string]int, record []string) (*models.Product, bool) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	price, ok := ParseMajorPrice(field("price_rub"))
	if !ok {
		return nil, false
	}

	title := field("title")
	if title == "" {
		title = models.DefaultTitle
	}
	category := field("category")
	if category == "" {
		category = models.DefaultCategory
	}
	brand := field("brand")
	if brand == "" {
		brand = models.DefaultBrand
	}

	p := &models.Product{
		Title:       title,
		Price:       price,
		PhotoFileID: optStr(field("photo_file_id")),
		Description: optStr(field("descr")),
		Category:    category,
		Brand:       brand,
		Sizes:       optStr(field("sizes")),
	}

	// Source identity is optional in import files; only a complete pair
	// participates in deduplication.
	if chat, err := strconv.ParseInt(field("source_chat_id"), 10, 64); err == nil {
		if msg, err := strconv.ParseInt(field("source_msg_id"), 10, 64); err == nil {
			p.SourceChatID = &chat
			p.SourceMsgID = &msg
		}
	}
	return p, true
}

// ParseMajorPrice converts a major-unit amount with decimal comma or
// point ("4990", "49.90", "49,90") into minor units. Empty input is
// zero, matching the sentinel behavior of the normalizer.
func ParseMajorPrice(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || d.IsNegative() {
		return 0, false
	}
	return d.Mul(hundred).IntPart(), true
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int64OrEmpty(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
