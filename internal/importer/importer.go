package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	projectsvc "dsignme/internal/service/project"
)

// Columns lists the accepted CSV header.
var Columns = []string{"category", "title", "type", "imageUrl", "videoUrl"}

type CategoryStore interface {
	Resolve(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
}

type ProjectWriter interface {
	Create(ctx context.Context, categoryName string, in projectsvc.Input) (*domain.Project, error)
}

// Result counts what an import created.
type Result struct {
	Projects   int
	Categories int
}

// CSVImporter reads project rows and creates them, adding categories that
// do not exist yet.
type CSVImporter struct {
	reader     *csv.Reader
	categories CategoryStore
	projects   ProjectWriter
	logger     *logrus.Entry
	known      map[string]bool
}

func NewCSVImporter(r io.Reader, categories CategoryStore, projects ProjectWriter, logger *logrus.Entry) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:     csvr,
		categories: categories,
		projects:   projects,
		logger:     logging.OrDiscard(logger),
		known:      make(map[string]bool),
	}
}

type csvRow struct {
	Line     int
	Category string
	Input    projectsvc.Input
}

// Run imports every row. It stops at the first row that cannot be saved.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["category"]; !ok {
		return res, fmt.Errorf("missing %q column, expected %s", "category", strings.Join(Columns, ","))
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.Line = line

		created, err := i.ensureCategory(ctx, row.Category)
		if err != nil {
			return res, fmt.Errorf("line %d: category %q: %w", row.Line, row.Category, err)
		}
		if created {
			res.Categories++
		}
		if _, err := i.projects.Create(ctx, row.Category, row.Input); err != nil {
			return res, fmt.Errorf("line %d: %w", row.Line, err)
		}
		res.Projects++
	}

	i.logger.WithFields(logrus.Fields{"projects": res.Projects, "categories": res.Categories}).Info("import finished")
	return res, nil
}

func (i *CSVImporter) ensureCategory(ctx context.Context, name string) (bool, error) {
	key := domain.CategorySlug(domain.NormalizeCategoryName(name))
	if i.known[key] {
		return false, nil
	}
	_, err := i.categories.Resolve(ctx, name)
	if err == nil {
		i.known[key] = true
		return false, nil
	}
	if !domain.IsValidation(err) {
		return false, err
	}
	if _, err := i.categories.Create(ctx, name); err != nil {
		return false, err
	}
	i.known[key] = true
	return true, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	category := pick(record, index, "category")
	if category == "" {
		return nil
	}
	return &csvRow{
		Category: category,
		Input: projectsvc.Input{
			Type:     pick(record, index, "type"),
			Title:    pick(record, index, "title"),
			ImageURL: pick(record, index, "imageUrl"),
			VideoURL: pick(record, index, "videoUrl"),
		},
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
