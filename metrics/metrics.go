// Package metrics computes diet adherence figures from a user's meal history.
package metrics

import "daily-diet/models"

// Summary is the aggregate returned by the metrics endpoint.
type Summary struct {
	TotalMeals           int `json:"totalMeals"`
	TotalInsideDiet      int `json:"totalMealsInsideDiet"`
	TotalOffDiet         int `json:"totalMealsOffDiet"`
	BestInsideDietStreak int `json:"betterSequenceMealsInsideDiet"`
}

// Compute summarizes meals, which must all belong to one user.
//
// BestInsideDietStreak is the largest number of inside-diet meals that share a
// single date value. It is not a run of consecutive days: the position of a
// meal in the list and the chronology of the dates play no part. Dates are
// compared as plain strings.
func Compute(meals []models.Meal) Summary {
	s := Summary{TotalMeals: len(meals)}

	perDate := make(map[string]int)
	for _, m := range meals {
		if !m.InsideDiet {
			s.TotalOffDiet++
			continue
		}
		s.TotalInsideDiet++
		perDate[m.Date]++
	}

	for _, n := range perDate {
		if n > s.BestInsideDietStreak {
			s.BestInsideDietStreak = n
		}
	}
	return s
}
