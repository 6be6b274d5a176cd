package entity

import (
	"errors"
	"strings"
)

// Profile describes the ideal customer the campaign is prospecting for.
// It is immutable once constructed and owned by the campaign caller.
type Profile struct {
	Industry     string   `json:"industry"`
	MinHeadcount *int     `json:"min_headcount,omitempty"`
	MaxHeadcount *int     `json:"max_headcount,omitempty"`
	JobTitles    []string `json:"job_titles"`
	Geography    string   `json:"geography,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	RevenueRange string   `json:"revenue_range,omitempty"`
}

// NewProfile validates and constructs a Profile. The job title order is
// preserved: it expresses a ranked preference, not a filter.
func NewProfile(industry string, minHeadcount, maxHeadcount *int, jobTitles []string) (Profile, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return Profile{}, errors.New("profile industry is required")
	}
	if minHeadcount != nil && *minHeadcount < 0 {
		return Profile{}, errors.New("min headcount must not be negative")
	}
	if minHeadcount != nil && maxHeadcount != nil && *minHeadcount > *maxHeadcount {
		return Profile{}, errors.New("min headcount must not exceed max headcount")
	}

	titles := make([]string, 0, len(jobTitles))
	for _, title := range jobTitles {
		if t := strings.TrimSpace(title); t != "" {
			titles = append(titles, t)
		}
	}

	return Profile{
		Industry:     industry,
		MinHeadcount: minHeadcount,
		MaxHeadcount: maxHeadcount,
		JobTitles:    titles,
	}, nil
}
