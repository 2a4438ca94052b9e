// internal/db/courses.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tclausen/backnine/internal/models"
)

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, par, slope, rating FROM courses ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.Name, &c.Par, &c.Slope, &c.Rating); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, name string) (models.Course, error) {
	var c models.Course
	err := s.db.QueryRowContext(ctx,
		s.bind("SELECT name, par, slope, rating FROM courses WHERE name = ?"), name).
		Scan(&c.Name, &c.Par, &c.Slope, &c.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, fmt.Errorf("getting course %q: %w", name, err)
	}
	return c, nil
}

func (s *Store) CreateCourse(ctx context.Context, c models.Course) error {
	s.coursesMu.Lock()
	defer s.coursesMu.Unlock()

	_, err := s.db.ExecContext(ctx,
		s.bind("INSERT INTO courses (name, par, slope, rating) VALUES (?, ?, ?, ?)"),
		c.Name, c.Par, c.Slope, c.Rating)
	if err != nil {
		return fmt.Errorf("creating course %q: %w", c.Name, err)
	}
	return nil
}

// UpdateCourse updates the course keyed by name; name may itself change,
// which is why the old key is a separate argument.
func (s *Store) UpdateCourse(ctx context.Context, name string, c models.Course) error {
	s.coursesMu.Lock()
	defer s.coursesMu.Unlock()

	res, err := s.db.ExecContext(ctx,
		s.bind("UPDATE courses SET name = ?, par = ?, slope = ?, rating = ? WHERE name = ?"),
		c.Name, c.Par, c.Slope, c.Rating, name)
	if err != nil {
		return fmt.Errorf("updating course %q: %w", name, err)
	}
	return requireRow(res, "course")
}
