package model

import "strconv"

// NextID returns max(numeric ids)+1 as a decimal string, or "1" when no id is
// numeric. Ids that are not decimal integers are ignored.
//
// The result is not unique under concurrent writers.
func NextID(ids []string) string {
	var max int64
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

// EventIDs collects the ids of events.
func EventIDs(events []Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

// UserIDs collects the ids of users.
func UserIDs(users []User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// EnrollmentIDs collects the ids of enrollments.
func EnrollmentIDs(enrollments []Enrollment) []string {
	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.ID)
	}
	return ids
}
