// Package dashboard computes the admin overview from the raw tables.
package dashboard

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	customerrepo "dmt_kiosk_backend/internal/customers/repository"
	docrepo "dmt_kiosk_backend/internal/documents/repository"
	feedbackrepo "dmt_kiosk_backend/internal/feedback/repository"
	servicerepo "dmt_kiosk_backend/internal/services/repository"
)

// RatingCount is one bar of the feedback chart.
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// ServiceTypeCount is one slice of the service type chart.
type ServiceTypeCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalCustomers       int                `json:"totalCustomers"`
	TotalServices        int                `json:"totalServices"`
	TotalDocuments       int                `json:"totalDocuments"`
	TotalFeedback        int                `json:"totalFeedback"`
	AverageRating        float64            `json:"averageRating"`
	AverageRatingDisplay string             `json:"averageRatingDisplay"`
	FeedbackByRating     []RatingCount      `json:"feedbackByRating"`
	ServiceTypes         []ServiceTypeCount `json:"serviceTypes"`
}

// Summarize reduces the four tables to dashboard numbers. The rating
// histogram only counts ratings 1 to 5.
func Summarize(
	customers []customerrepo.Customer,
	services []servicerepo.ServiceRecord,
	documents []docrepo.Document,
	feedback []feedbackrepo.Feedback,
) Stats {
	stats := Stats{
		TotalCustomers:   len(customers),
		TotalServices:    len(services),
		TotalDocuments:   len(documents),
		TotalFeedback:    len(feedback),
		FeedbackByRating: []RatingCount{},
		ServiceTypes:     []ServiceTypeCount{},
	}

	ratings := make([]int, len(feedback))
	for i, f := range feedback {
		ratings[i] = f.Rating
	}
	stats.AverageRating = AverageRating(ratings)
	stats.AverageRatingDisplay = fmt.Sprintf("%.2f", stats.AverageRating)

	byRating := make(map[int]int)
	for _, r := range ratings {
		if r >= 1 && r <= 5 {
			byRating[r]++
		}
	}
	for r := 1; r <= 5; r++ {
		if n := byRating[r]; n > 0 {
			stats.FeedbackByRating = append(stats.FeedbackByRating, RatingCount{Rating: r, Count: n})
		}
	}

	byType := make(map[string]int)
	for _, s := range services {
		byType[TypeLabel(s.ServiceType)]++
	}
	for name, n := range byType {
		stats.ServiceTypes = append(stats.ServiceTypes, ServiceTypeCount{Name: name, Value: n})
	}
	sort.Slice(stats.ServiceTypes, func(i, j int) bool {
		return stats.ServiceTypes[i].Name < stats.ServiceTypes[j].Name
	})

	return stats
}

// AverageRating is the arithmetic mean, 0 for no ratings.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// TypeLabel upper-cases the first letter and leaves the rest alone.
func TypeLabel(serviceType string) string {
	r, size := utf8.DecodeRuneInString(serviceType)
	if r == utf8.RuneError {
		return serviceType
	}
	return string(unicode.ToUpper(r)) + serviceType[size:]
}
