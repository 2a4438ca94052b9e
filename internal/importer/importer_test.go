package importer

import (
	"strings"
	"testing"
)

func TestParseTeams(t *testing.T) {
	input := strings.Join([]string{
		"name,player1,player2,paymentStatus",
		"Al & Bob,Al,Bob,Paid",
		"Carl & Dave,Carl,Dave,",
	}, "\n")

	teams, err := ParseTeams(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTeams failed: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].Name != "Al & Bob" || teams[0].PaymentStatus != "Paid" {
		t.Errorf("unexpected first team: %+v", teams[0])
	}
	if teams[1].PaymentStatus != "Not Paid" {
		t.Errorf("blank payment status should default to Not Paid, got %q", teams[1].PaymentStatus)
	}
}

func TestParseTeamsDuplicateName(t *testing.T) {
	input := strings.Join([]string{
		"name,player1,player2,paymentStatus",
		"Al & Bob,Al,Bob,Paid",
		"Al & Bob,Al,Bob,Paid",
	}, "\n")

	_, err := ParseTeams(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected duplicate team name error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name the offending line, got %q", err.Error())
	}
}

func TestParseCourses(t *testing.T) {
	input := strings.Join([]string{
		"name,par,slope,rating",
		"Willow Creek,36,113,34.5",
	}, "\n")

	courses, err := ParseCourses(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCourses failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}
	c := courses[0]
	if c.Name != "Willow Creek" || c.Par != 36 || c.Slope != 113 || c.Rating != 34.5 {
		t.Errorf("unexpected course: %+v", c)
	}
}

func TestParseCoursesRejectsBadSlope(t *testing.T) {
	input := strings.Join([]string{
		"name,par,slope,rating",
		"Willow Creek,36,0,34.5",
	}, "\n")

	if _, err := ParseCourses(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for zero slope")
	}
}

func TestParseScores(t *testing.T) {
	input := strings.Join([]string{
		"team,course,week,date,nine,player1,player2,total",
		"Al & Bob,Willow Creek,1,2026-05-05,front,40,42,82",
		"Al & Bob,Willow Creek,2,2026-05-12,back,,,85",
	}, "\n")

	scores, err := ParseScores(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScores failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].Player1Score == nil || *scores[0].Player1Score != 40 {
		t.Errorf("unexpected player1 score: %+v", scores[0].Player1Score)
	}
	if scores[1].Player1Score != nil || scores[1].Player2Score != nil {
		t.Error("blank player columns should parse as nil")
	}
	if scores[1].TeamTotal != 85 {
		t.Errorf("expected total 85, got %d", scores[1].TeamTotal)
	}
}

func TestParseScoresRejectsMismatchedTotal(t *testing.T) {
	input := strings.Join([]string{
		"team,course,week,date,nine,player1,player2,total",
		"Al & Bob,Willow Creek,1,2026-05-05,front,40,42,90",
	}, "\n")

	_, err := ParseScores(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for player scores not summing to total")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line, got %q", err.Error())
	}
}

func TestParseSchedule(t *testing.T) {
	input := strings.Join([]string{
		"week,date,course,nine",
		"1,2026-05-05,Willow Creek,",
		"2,2026-05-12,Stony Brook,back",
	}, "\n")

	weeks, err := ParseSchedule(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSchedule failed: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].Nine != "front" {
		t.Errorf("blank nine should default to front, got %q", weeks[0].Nine)
	}
	if weeks[1].CourseName != "Stony Brook" || weeks[1].Nine != "back" {
		t.Errorf("unexpected second week: %+v", weeks[1])
	}
}

func TestParseScheduleDuplicateWeek(t *testing.T) {
	input := strings.Join([]string{
		"week,date,course,nine",
		"1,2026-05-05,Willow Creek,front",
		"1,2026-05-12,Stony Brook,back",
	}, "\n")

	if _, err := ParseSchedule(strings.NewReader(input)); err == nil {
		t.Fatal("expected duplicate week error")
	}
}

func TestParseTeamsEmptyFile(t *testing.T) {
	if _, err := ParseTeams(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}
