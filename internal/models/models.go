// internal/models/models.go
// Package models holds the league's persistent record shapes. Field names and
// JSON keys match the API payloads the dashboard consumes.
package models

// Team is a 2-person scramble team. Name may be empty until the pairing
// picks one.
type Team struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Player1       string `json:"player1"`
	Player2       string `json:"player2"`
	PaymentStatus string `json:"paymentStatus"`
}

// Course is one rated nine. Par is holes-adjusted (36 for nine holes),
// Slope and Rating are the USGA difficulty metrics for the played nine.
// Name is the key scores reference.
type Course struct {
	Name   string  `json:"name"`
	Par    int     `json:"par"`
	Slope  int     `json:"slope"`
	Rating float64 `json:"rating"`
}

// Score records one team round. TeamTotal is always set; the per-player
// scores are only present for league revisions that tracked individual play
// (their sum equals TeamTotal).
type Score struct {
	ID           int64  `json:"id"`
	TeamID       int64  `json:"teamId"`
	CourseName   string `json:"courseName"`
	Week         int    `json:"week"`
	Date         string `json:"date"`
	Nine         string `json:"nine"`
	Player1Score *int   `json:"player1Score,omitempty"`
	Player2Score *int   `json:"player2Score,omitempty"`
	TeamTotal    int    `json:"teamTotal"`
}

// Handicap is a computed handicap index for one entity (a team or a player,
// depending on the configured subject policy). Entity is the storage key;
// absence of a row means "no handicap yet".
type Handicap struct {
	Entity        string  `json:"entity"`
	HandicapIndex float64 `json:"handicapIndex"`
	RoundsPlayed  int     `json:"roundsPlayed"`
}

// ScheduleWeek maps a league week to where and when it is played.
type ScheduleWeek struct {
	Week       int    `json:"week"`
	Date       string `json:"date"`
	CourseName string `json:"courseName"`
	Nine       string `json:"nine"`
}

// TeeTime is a booked slot for one team in a given week.
type TeeTime struct {
	ID     int64  `json:"id"`
	Week   int    `json:"week"`
	TeamID int64  `json:"teamId"`
	Day    string `json:"day"`
	Time   string `json:"time"`
}
