package model

import "time"

type Resource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	Tags        []string  `json:"tags"`
	Visits      int       `json:"visits"`
	Position    int       `json:"position"`
	DateAdded   time.Time `json:"dateAdded"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Stats struct {
	TotalResources    int `json:"totalResources"`
	TotalVisits       int `json:"totalVisits"`
	CurrentStreak     int `json:"currentStreak"`
	LongestStreak     int `json:"longestStreak"`
	StudyMinutesToday int `json:"studyMinutesToday"`
}
