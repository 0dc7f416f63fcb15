// Package catalog models the admin-editable list of course offerings and
// their scheduled dates. The whole catalog is one document in the content
// store; all mutations go through revision-checked read-modify-write.
package catalog

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Key is the content-store key the catalog document lives under.
const Key = "availableCourses"

type CourseDate struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Capacity int    `json:"capacity"`
	Spots    int    `json:"spots"`
	Enabled  bool   `json:"enabled"`
}

type Course struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Dates []CourseDate `json:"dates"`
}

// courseNames maps course ids used by the site's pages to display names.
// Unknown ids fall back to the raw id.
var courseNames = map[string]string{
	"osnovni-tecaj":      "Osnovni tečaj jadranja",
	"nadaljevalni-tecaj": "Nadaljevalni tečaj jadranja",
	"izpit-za-voditelja": "Priprave na izpit za voditelja čolna",
	"vikend-tecaj":       "Vikend tečaj jadranja",
}

func CourseName(id string) string {
	if name, ok := courseNames[id]; ok {
		return name
	}
	return id
}

// NewDateID returns a unique id for a course date. Random uuids rather than
// timestamps, so two dates created in the same millisecond never collide.
func NewDateID() string {
	return uuid.NewString()
}

// OccupancyPercent reports how full a date is, rounded to whole percents.
// A non-positive capacity counts as fully booked rather than dividing by zero.
func OccupancyPercent(capacity, spots int) int {
	if capacity <= 0 {
		return 100
	}
	occupied := capacity - spots
	return int(math.Round(float64(occupied) / float64(capacity) * 100))
}

func clampSpots(spots, capacity int) int {
	if spots < 0 {
		return 0
	}
	if spots > capacity {
		return capacity
	}
	return spots
}

// BuildFromRows regroups the parallel form arrays of the bulk editor into
// courses, preserving first-seen course order and per-course row order.
// Capacity is set equal to spots: the bulk editor replaces the catalog
// wholesale and does not carry previously stored capacities.
func BuildFromRows(ids, labels, spots []string) []Course {
	n := len(ids)
	if len(labels) < n {
		n = len(labels)
	}
	if len(spots) < n {
		n = len(spots)
	}

	var courses []Course
	index := map[string]int{}
	for i := 0; i < n; i++ {
		id := ids[i]
		pos, ok := index[id]
		if !ok {
			pos = len(courses)
			index[id] = pos
			courses = append(courses, Course{ID: id, Name: CourseName(id)})
		}

		free, _ := strconv.Atoi(spots[i])
		if free < 0 {
			free = 0
		}
		courses[pos].Dates = append(courses[pos].Dates, CourseDate{
			ID:       NewDateID(),
			Label:    labels[i],
			Capacity: free,
			Spots:    free,
			Enabled:  free > 0,
		})
	}
	return courses
}

// AddDate appends a new date under the course with the given id, creating
// the course entry first if it does not exist yet. The new date starts
// empty: capacity and free spots both equal the submitted value.
func AddDate(courses []Course, courseID, label string, spots int) []Course {
	if spots < 0 {
		spots = 0
	}

	pos := -1
	for i := range courses {
		if courses[i].ID == courseID {
			pos = i
			break
		}
	}
	if pos == -1 {
		courses = append(courses, Course{ID: courseID, Name: CourseName(courseID)})
		pos = len(courses) - 1
	}

	courses[pos].Dates = append(courses[pos].Dates, CourseDate{
		ID:       NewDateID(),
		Label:    label,
		Capacity: spots,
		Spots:    spots,
		Enabled:  spots > 0,
	})
	return courses
}

// UpdateDate sets label and capacity on the targeted date and clamps the
// free spots into [0, capacity]. Reports false when the course or date does
// not exist; the slice is left untouched in that case.
func UpdateDate(courses []Course, courseID, dateID, label string, capacity, spots int) bool {
	for i := range courses {
		if courses[i].ID != courseID {
			continue
		}
		for j := range courses[i].Dates {
			if courses[i].Dates[j].ID != dateID {
				continue
			}
			if capacity < 0 {
				capacity = 0
			}
			d := &courses[i].Dates[j]
			d.Label = label
			d.Capacity = capacity
			d.Spots = clampSpots(spots, capacity)
			d.Enabled = d.Spots > 0
			return true
		}
		return false
	}
	return false
}

// DeleteDate removes the targeted date from its course. Sibling dates and
// other courses are untouched. Reports false when the course or date does
// not exist.
func DeleteDate(courses []Course, courseID, dateID string) bool {
	for i := range courses {
		if courses[i].ID != courseID {
			continue
		}
		for j := range courses[i].Dates {
			if courses[i].Dates[j].ID == dateID {
				courses[i].Dates = append(courses[i].Dates[:j], courses[i].Dates[j+1:]...)
				return true
			}
		}
		return false
	}
	return false
}
