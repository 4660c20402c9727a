package bulkimport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Export row shapes fed to the workbook writer. The writer emits the same
// schema the parser consumes, so an exported workbook re-uploads cleanly.

type ExportCategory struct {
	Name        string
	Description *string
	Icon        *string
}

type ExportQuiz struct {
	Title           string
	Description     *string
	IsActive        bool
	QuestionPrompts []string
}

type ExportOption struct {
	Text      string
	IsCorrect bool
}

type ExportQuestion struct {
	Prompt       string
	Explanation  *string
	Subject      *string
	Difficulty   *string
	IsActive     bool
	CategoryName string
	QuizTitles   []string
	Options      []ExportOption
}

// BuildWorkbook encodes the three sheets into .xlsx bytes.
func BuildWorkbook(categories []ExportCategory, quizzes []ExportQuiz, questions []ExportQuestion) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", "Categories"); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet("Quizzes"); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet("Questions"); err != nil {
		return nil, err
	}

	categoryRows := [][]interface{}{{"Name", "Description", "Icon"}}
	for _, c := range categories {
		categoryRows = append(categoryRows, []interface{}{c.Name, deref(c.Description), deref(c.Icon)})
	}
	if err := writeSheet(file, "Categories", categoryRows); err != nil {
		return nil, err
	}

	quizRows := [][]interface{}{{"Title", "Description", "Is Active", "Questions"}}
	for _, q := range quizzes {
		quizRows = append(quizRows, []interface{}{
			q.Title,
			deref(q.Description),
			q.IsActive,
			strings.Join(q.QuestionPrompts, ", "),
		})
	}
	if err := writeSheet(file, "Quizzes", quizRows); err != nil {
		return nil, err
	}

	if err := writeSheet(file, "Questions", questionRows(questions)); err != nil {
		return nil, err
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func questionRows(questions []ExportQuestion) [][]interface{} {
	optionWidth := 2
	for _, q := range questions {
		if len(q.Options) > optionWidth {
			optionWidth = len(q.Options)
		}
	}

	header := []interface{}{"Prompt", "Explanation", "Subject", "Difficulty", "Is Active", "Category"}
	for i := 1; i <= optionWidth; i++ {
		header = append(header, fmt.Sprintf("Option %d", i))
	}
	header = append(header, "Correct Option", "Quizzes")

	rows := [][]interface{}{header}
	for _, q := range questions {
		row := []interface{}{
			q.Prompt,
			deref(q.Explanation),
			deref(q.Subject),
			deref(q.Difficulty),
			q.IsActive,
			q.CategoryName,
		}
		correct := ""
		for i := 0; i < optionWidth; i++ {
			if i < len(q.Options) {
				row = append(row, q.Options[i].Text)
				if q.Options[i].IsCorrect {
					correct = fmt.Sprintf("Option %d", i+1)
				}
			} else {
				row = append(row, "")
			}
		}
		row = append(row, correct, strings.Join(q.QuizTitles, ", "))
		rows = append(rows, row)
	}
	return rows
}

func writeSheet(file *excelize.File, sheet string, rows [][]interface{}) error {
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// SampleWorkbook is the downloadable template: the schema plus one worked row
// per sheet demonstrating the format.
func SampleWorkbook() ([]byte, error) {
	description := "Mixed trivia sample"
	icon := "sparkles"
	quizDescription := "Starter quiz to demonstrate the format"
	explanation := "Basic arithmetic question."
	subject := "Mathematics"
	difficulty := "Easy"

	return BuildWorkbook(
		[]ExportCategory{
			{Name: "General Knowledge", Description: &description, Icon: &icon},
		},
		[]ExportQuiz{
			{
				Title:           "General Quiz",
				Description:     &quizDescription,
				IsActive:        true,
				QuestionPrompts: []string{"What is 2 + 2?"},
			},
		},
		[]ExportQuestion{
			{
				Prompt:       "What is 2 + 2?",
				Explanation:  &explanation,
				Subject:      &subject,
				Difficulty:   &difficulty,
				IsActive:     true,
				CategoryName: "General Knowledge",
				QuizTitles:   []string{"General Quiz"},
				Options: []ExportOption{
					{Text: "4", IsCorrect: true},
					{Text: "5"},
					{Text: "3"},
					{Text: "22"},
				},
			},
		},
	)
}
