package bulkimport

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Raw row records decoded from the workbook. Structural problems found while
// decoding (missing prompt, bad options) are carried on the row itself so the
// whole batch survives to the preview.

type ParsedCategory struct {
	SourceRow   int
	Name        string
	Description *string
	Icon        *string
	Errors      []string
}

type ParsedQuiz struct {
	SourceRow       int
	Title           string
	Description     *string
	IsActive        bool
	QuestionPrompts []string
	Errors          []string
}

type ParsedOption struct {
	Text      string
	IsCorrect bool
}

type ParsedQuestion struct {
	SourceRow    int
	Prompt       string
	Explanation  *string
	Subject      *string
	Difficulty   *string
	IsActive     bool
	CategoryName string
	QuizTitles   []string
	Options      []ParsedOption
	Errors       []string
}

type ParsedWorkbook struct {
	Categories []ParsedCategory
	Quizzes    []ParsedQuiz
	Questions  []ParsedQuestion
}

var (
	categorySheetNames = []string{"categories", "category", "category setup"}
	quizSheetNames     = []string{"quizzes", "quiz", "quiz setup"}
	questionSheetNames = []string{"questions", "question bank", "items"}
)

// ParseWorkbook decodes an uploaded .xlsx workbook into raw row records,
// preserving 1-based source row numbers (the header is row 1). A missing
// sheet or missing natural-key header column fails the parse; everything else
// becomes a row-level error.
func ParseWorkbook(data []byte) (*ParsedWorkbook, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read the Excel workbook, upload a valid .xlsx file", ErrMalformedWorkbook)
	}
	defer file.Close()

	categoryRows, err := sheetRows(file, categorySheetNames, "Categories")
	if err != nil {
		return nil, err
	}
	quizRows, err := sheetRows(file, quizSheetNames, "Quizzes")
	if err != nil {
		return nil, err
	}
	questionRows, err := sheetRows(file, questionSheetNames, "Questions")
	if err != nil {
		return nil, err
	}

	categories, err := parseCategories(categoryRows)
	if err != nil {
		return nil, err
	}
	quizzes, err := parseQuizzes(quizRows)
	if err != nil {
		return nil, err
	}
	questions, err := parseQuestions(questionRows)
	if err != nil {
		return nil, err
	}

	return &ParsedWorkbook{
		Categories: categories,
		Quizzes:    quizzes,
		Questions:  questions,
	}, nil
}

func sheetRows(file *excelize.File, candidates []string, label string) ([][]string, error) {
	byLower := make(map[string]string)
	for _, name := range file.GetSheetList() {
		byLower[strings.ToLower(name)] = name
	}

	for _, candidate := range candidates {
		if name, ok := byLower[candidate]; ok {
			rows, err := file.GetRows(name)
			if err != nil {
				return nil, fmt.Errorf("%w: worksheet %q could not be read", ErrMalformedWorkbook, name)
			}
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: %s sheet not found, expected a sheet named %q", ErrMalformedWorkbook, label, label)
}

func parseCategories(rows [][]string) ([]ParsedCategory, error) {
	headers, err := extractHeaders(rows, "Categories", []string{"name", "category", "category name"})
	if err != nil {
		return nil, err
	}

	var categories []ParsedCategory
	for i := 1; i < len(rows); i++ {
		// Source rows are 1-based and count the header as row 1.
		rowIdx, values := i+1, rows[i]
		name := pick(headers, values, "name", "category", "category name")
		description := optional(pick(headers, values, "description", "details", "summary"))
		icon := optional(pick(headers, values, "icon", "emoji"))

		if name == "" {
			if isEmptyRow(values) {
				continue
			}
			categories = append(categories, ParsedCategory{
				SourceRow: rowIdx,
				Errors:    []string{"Category name is required."},
			})
			continue
		}

		categories = append(categories, ParsedCategory{
			SourceRow:   rowIdx,
			Name:        name,
			Description: description,
			Icon:        icon,
		})
	}
	return categories, nil
}

func parseQuizzes(rows [][]string) ([]ParsedQuiz, error) {
	headers, err := extractHeaders(rows, "Quizzes", []string{"title", "quiz", "name"})
	if err != nil {
		return nil, err
	}

	var quizzes []ParsedQuiz
	for i := 1; i < len(rows); i++ {
		rowIdx, values := i+1, rows[i]
		title := pick(headers, values, "title", "quiz", "name")
		description := optional(pick(headers, values, "description", "details"))
		isActive := parseBool(pick(headers, values, "is active", "active", "status"), true)
		prompts := splitList(pick(headers, values, "questions", "question prompts", "prompt list"))

		if title == "" {
			if isEmptyRow(values) {
				continue
			}
			quizzes = append(quizzes, ParsedQuiz{
				SourceRow: rowIdx,
				IsActive:  isActive,
				Errors:    []string{"Quiz title is required."},
			})
			continue
		}

		quizzes = append(quizzes, ParsedQuiz{
			SourceRow:       rowIdx,
			Title:           title,
			Description:     description,
			IsActive:        isActive,
			QuestionPrompts: prompts,
		})
	}
	return quizzes, nil
}

func parseQuestions(rows [][]string) ([]ParsedQuestion, error) {
	headers, err := extractHeaders(rows, "Questions", []string{"prompt", "question", "text"})
	if err != nil {
		return nil, err
	}

	var questions []ParsedQuestion
	for i := 1; i < len(rows); i++ {
		rowIdx, values := i+1, rows[i]
		if isEmptyRow(values) {
			continue
		}

		prompt := pick(headers, values, "prompt", "question", "text")
		explanation := optional(pick(headers, values, "explanation", "rationale", "notes"))
		subject := optional(pick(headers, values, "subject", "topic"))
		difficulty := optional(pick(headers, values, "difficulty", "level"))
		isActive := parseBool(pick(headers, values, "is active", "active", "status"), true)
		categoryName := pick(headers, values, "category", "category name")
		quizTitles := splitList(pick(headers, values, "quizzes", "quiz titles", "assign to quizzes"))

		correct := pick(headers, values, "correct option", "answer", "correct")
		options := resolveOptions(extractOptionCells(headers, values), correct)

		var errs []string
		if prompt == "" {
			errs = append(errs, "Question prompt is required.")
		}
		if categoryName == "" {
			errs = append(errs, "Category name is required for each question.")
		}
		if len(options) < 2 {
			errs = append(errs, "Provide at least two options.")
		} else if countCorrect(options) == 0 {
			errs = append(errs, "Select a correct option.")
		}

		questions = append(questions, ParsedQuestion{
			SourceRow:    rowIdx,
			Prompt:       prompt,
			Explanation:  explanation,
			Subject:      subject,
			Difficulty:   difficulty,
			IsActive:     isActive,
			CategoryName: categoryName,
			QuizTitles:   quizTitles,
			Options:      options,
			Errors:       errs,
		})
	}
	return questions, nil
}

func extractHeaders(rows [][]string, label string, required []string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s sheet has no header row", ErrMalformedWorkbook, label)
	}

	headers := make(map[string]int, len(rows[0]))
	for idx, value := range rows[0] {
		header := strings.ToLower(strings.TrimSpace(value))
		if header == "" {
			continue
		}
		if _, exists := headers[header]; !exists {
			headers[header] = idx
		}
	}

	for _, header := range required {
		if _, ok := headers[header]; ok {
			return headers, nil
		}
	}
	return nil, fmt.Errorf("%w: %s sheet is missing its %q column", ErrMalformedWorkbook, label, required[0])
}

func pick(headers map[string]int, values []string, synonyms ...string) string {
	for _, key := range synonyms {
		idx, ok := headers[key]
		if !ok {
			continue
		}
		if idx < len(values) {
			return strings.TrimSpace(values[idx])
		}
		return ""
	}
	return ""
}

type optionCell struct {
	header string
	text   string
}

func extractOptionCells(headers map[string]int, values []string) []optionCell {
	var cells []optionCell
	// Preserve spreadsheet column order, not map order.
	maxIdx := -1
	byIdx := make(map[int]string)
	for header, idx := range headers {
		if !strings.HasPrefix(header, "option") {
			continue
		}
		byIdx[idx] = header
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	for idx := 0; idx <= maxIdx; idx++ {
		header, ok := byIdx[idx]
		if !ok || idx >= len(values) {
			continue
		}
		text := strings.TrimSpace(values[idx])
		if text == "" {
			continue
		}
		cells = append(cells, optionCell{header: header, text: text})
	}
	return cells
}

// resolveOptions marks the option matching the Correct Option cell, which may
// name the option text, the column header, a 1-based index, or a letter.
func resolveOptions(cells []optionCell, correct string) []ParsedOption {
	correctIdx := resolveCorrectIndex(cells, correct)
	options := make([]ParsedOption, 0, len(cells))
	for idx, cell := range cells {
		options = append(options, ParsedOption{
			Text:      cell.text,
			IsCorrect: idx == correctIdx,
		})
	}
	return options
}

func resolveCorrectIndex(cells []optionCell, correct string) int {
	normalized := strings.ToLower(strings.TrimSpace(correct))
	if normalized == "" {
		return -1
	}

	for idx, cell := range cells {
		candidates := []string{
			strings.ToLower(cell.text),
			cell.header,
			strings.TrimSpace(strings.TrimPrefix(cell.header, "option")),
			strconv.Itoa(idx + 1),
		}
		if idx < 26 {
			candidates = append(candidates, string(rune('a'+idx)))
		}
		for _, candidate := range candidates {
			if normalized == candidate {
				return idx
			}
		}
	}
	return -1
}

func countCorrect(options []ParsedOption) int {
	count := 0
	for _, option := range options {
		if option.IsCorrect {
			count++
		}
	}
	return count
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	value = strings.NewReplacer(";", ",", "|", ",").Replace(value)

	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func parseBool(value string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "active", "publish":
		return true
	case "false", "no", "n", "0", "inactive", "draft":
		return false
	default:
		return defaultValue
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func isEmptyRow(values []string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
