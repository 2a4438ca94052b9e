// internal/importer/importer.go
// Package importer parses the league spreadsheet's CSV exports into seed
// records. It only parses; writing the records to the database is the seed
// tool's job.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TeamRecord is one row of the teams export. Scores reference teams by
// name, so names must be unique within a file.
type TeamRecord struct {
	Name          string
	Player1       string
	Player2       string
	PaymentStatus string
}

type CourseRecord struct {
	Name   string
	Par    int
	Slope  int
	Rating float64
}

// ScoreRecord references its team by name. The seed tool resolves names to
// ids after teams are inserted.
type ScoreRecord struct {
	TeamName     string
	CourseName   string
	Week         int
	Date         string
	Nine         string
	Player1Score *int
	Player2Score *int
	TeamTotal    int
}

type ScheduleRecord struct {
	Week       int
	Date       string
	CourseName string
	Nine       string
}

// ParseTeams reads a teams export with columns
// name,player1,player2,paymentStatus. The header row is required.
func ParseTeams(r io.Reader) ([]TeamRecord, error) {
	rows, err := readRows(r, 4, "name,player1,player2,paymentStatus")
	if err != nil {
		return nil, err
	}

	teams := make([]TeamRecord, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range rows {
		name := strings.TrimSpace(row.fields[0])
		if name == "" {
			return nil, rowError(row.line, "team name is empty")
		}
		if seen[name] {
			return nil, rowError(row.line, "duplicate team name %q", name)
		}
		seen[name] = true

		status := strings.TrimSpace(row.fields[3])
		if status == "" {
			status = "Not Paid"
		}
		teams = append(teams, TeamRecord{
			Name:          name,
			Player1:       strings.TrimSpace(row.fields[1]),
			Player2:       strings.TrimSpace(row.fields[2]),
			PaymentStatus: status,
		})
	}
	return teams, nil
}

// ParseCourses reads a courses export with columns name,par,slope,rating.
func ParseCourses(r io.Reader) ([]CourseRecord, error) {
	rows, err := readRows(r, 4, "name,par,slope,rating")
	if err != nil {
		return nil, err
	}

	courses := make([]CourseRecord, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.fields[0])
		if name == "" {
			return nil, rowError(row.line, "course name is empty")
		}
		par, err := parseInt(row, 1, "par")
		if err != nil {
			return nil, err
		}
		slope, err := parseInt(row, 2, "slope")
		if err != nil {
			return nil, err
		}
		if slope <= 0 {
			return nil, rowError(row.line, "slope must be positive, got %d", slope)
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(row.fields[3]), 64)
		if err != nil {
			return nil, rowError(row.line, "invalid rating %q", row.fields[3])
		}
		courses = append(courses, CourseRecord{
			Name:   name,
			Par:    par,
			Slope:  slope,
			Rating: rating,
		})
	}
	return courses, nil
}

// ParseScores reads a scores export with columns
// team,course,week,date,nine,player1,player2,total. Player columns may be
// blank when only the team total was recorded.
func ParseScores(r io.Reader) ([]ScoreRecord, error) {
	rows, err := readRows(r, 8, "team,course,week,date,nine,player1,player2,total")
	if err != nil {
		return nil, err
	}

	scores := make([]ScoreRecord, 0, len(rows))
	for _, row := range rows {
		teamName := strings.TrimSpace(row.fields[0])
		courseName := strings.TrimSpace(row.fields[1])
		if teamName == "" || courseName == "" {
			return nil, rowError(row.line, "team and course are required")
		}
		week, err := parseInt(row, 2, "week")
		if err != nil {
			return nil, err
		}
		if week < 1 {
			return nil, rowError(row.line, "week must be at least 1, got %d", week)
		}
		p1, err := parseOptionalInt(row, 5, "player1")
		if err != nil {
			return nil, err
		}
		p2, err := parseOptionalInt(row, 6, "player2")
		if err != nil {
			return nil, err
		}
		total, err := parseInt(row, 7, "total")
		if err != nil {
			return nil, err
		}
		if total <= 0 {
			return nil, rowError(row.line, "total must be positive, got %d", total)
		}
		if p1 != nil && p2 != nil && *p1+*p2 != total {
			return nil, rowError(row.line, "player scores %d+%d do not sum to total %d", *p1, *p2, total)
		}
		scores = append(scores, ScoreRecord{
			TeamName:     teamName,
			CourseName:   courseName,
			Week:         week,
			Date:         strings.TrimSpace(row.fields[3]),
			Nine:         strings.TrimSpace(row.fields[4]),
			Player1Score: p1,
			Player2Score: p2,
			TeamTotal:    total,
		})
	}
	return scores, nil
}

// ParseSchedule reads a schedule export with columns week,date,course,nine.
func ParseSchedule(r io.Reader) ([]ScheduleRecord, error) {
	rows, err := readRows(r, 4, "week,date,course,nine")
	if err != nil {
		return nil, err
	}

	weeks := make([]ScheduleRecord, 0, len(rows))
	seen := make(map[int]bool)
	for _, row := range rows {
		week, err := parseInt(row, 0, "week")
		if err != nil {
			return nil, err
		}
		if week < 1 {
			return nil, rowError(row.line, "week must be at least 1, got %d", week)
		}
		if seen[week] {
			return nil, rowError(row.line, "duplicate week %d", week)
		}
		seen[week] = true

		courseName := strings.TrimSpace(row.fields[2])
		if courseName == "" {
			return nil, rowError(row.line, "course is required")
		}
		nine := strings.TrimSpace(row.fields[3])
		if nine == "" {
			nine = "front"
		}
		weeks = append(weeks, ScheduleRecord{
			Week:       week,
			Date:       strings.TrimSpace(row.fields[1]),
			CourseName: courseName,
			Nine:       nine,
		})
	}
	return weeks, nil
}

type csvRow struct {
	line   int
	fields []string
}

// readRows consumes the header row, validates the column count, and returns
// the remaining rows tagged with their 1-based line numbers.
func readRows(r io.Reader, columns int, header string) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty, expected header %q", header)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(first) != columns {
		return nil, fmt.Errorf("expected %d columns (%s), got %d", columns, header, len(first))
	}

	var rows []csvRow
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, csvRow{line: line, fields: fields})
	}
	return rows, nil
}

func parseInt(row csvRow, idx int, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(row.fields[idx]))
	if err != nil {
		return 0, rowError(row.line, "invalid %s %q", name, row.fields[idx])
	}
	return v, nil
}

func parseOptionalInt(row csvRow, idx int, name string) (*int, error) {
	raw := strings.TrimSpace(row.fields[idx])
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, rowError(row.line, "invalid %s %q", name, row.fields[idx])
	}
	return &v, nil
}

func rowError(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}
