package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fairaudit/domain/fairness"
)

// AttributeColumnPrefix marks a spreadsheet column as a protected
// attribute, e.g. "attr:gender".
const AttributeColumnPrefix = "attr:"

// Known feature columns; anything else that is not an attribute column
// lands in the candidate's Extra bag.
const (
	columnOutcome    = "selected"
	columnSkills     = "skills"
	columnExperience = "experience_years"
	columnEducation  = "education"
	columnMatchScore = "match_score"
)

// PoolData is a parsed applicant pool ready for the engine
type PoolData struct {
	Candidates []fairness.FeatureRecord
	Outcomes   []bool
	Attributes map[string][]string
	RowCount   int
}

// DataReader handles reading applicant pools from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadPool reads the applicant pool from the configured file
func (r *DataReader) ReadPool() (*PoolData, error) {
	log.Printf("[DataReader] Reading %s applicant pool: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// parseRows converts header+data rows into engine inputs
func parseRows(rows [][]string) (*PoolData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset needs a header row and at least one data row, got %d rows", len(rows))
	}

	header := rows[0]
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := colIdx[columnOutcome]; !ok {
		return nil, fmt.Errorf("dataset is missing required column %q", columnOutcome)
	}

	attributeCols := make(map[string]int)
	for name, idx := range colIdx {
		if strings.HasPrefix(name, AttributeColumnPrefix) {
			attributeCols[strings.TrimPrefix(name, AttributeColumnPrefix)] = idx
		}
	}
	if len(attributeCols) == 0 {
		return nil, fmt.Errorf("dataset has no %q columns for protected attributes", AttributeColumnPrefix)
	}

	dataRows := rows[1:]
	pool := &PoolData{
		Candidates: make([]fairness.FeatureRecord, 0, len(dataRows)),
		Outcomes:   make([]bool, 0, len(dataRows)),
		Attributes: make(map[string][]string, len(attributeCols)),
		RowCount:   len(dataRows),
	}
	for attr := range attributeCols {
		pool.Attributes[attr] = make([]string, 0, len(dataRows))
	}

	for rowNum, row := range dataRows {
		outcome, err := parseBool(cell(row, colIdx[columnOutcome]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad %s value: %w", rowNum+2, columnOutcome, err)
		}
		pool.Outcomes = append(pool.Outcomes, outcome)

		record := fairness.FeatureRecord{}
		if idx, ok := colIdx[columnSkills]; ok {
			record.Skills = splitSkills(cell(row, idx))
		}
		if idx, ok := colIdx[columnExperience]; ok {
			record.ExperienceYears, _ = strconv.ParseFloat(cell(row, idx), 64)
		}
		if idx, ok := colIdx[columnEducation]; ok {
			record.Education = fairness.ParseEducationLevel(cell(row, idx))
		}
		if idx, ok := colIdx[columnMatchScore]; ok {
			if raw := cell(row, idx); raw != "" {
				if score, err := strconv.ParseFloat(raw, 64); err == nil {
					record.MatchScore = &score
				}
			}
		}
		pool.Candidates = append(pool.Candidates, record)

		for attr, idx := range attributeCols {
			pool.Attributes[attr] = append(pool.Attributes[attr], cell(row, idx))
		}
	}

	log.Printf("[DataReader] Parsed %d candidates, %d protected attributes",
		len(pool.Candidates), len(pool.Attributes))
	return pool, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToLower(strings.TrimSpace(p)); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "selected", "y":
		return true, nil
	case "0", "false", "no", "rejected", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean %q", raw)
	}
}
