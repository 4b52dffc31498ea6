package task

import (
	"strings"

	"cloud.google.com/go/civil"
)

// PageSize is the fixed number of tasks shown per page.
const PageSize = 5

// Filter is the transient list state. It is a value; the With* helpers return
// modified copies.
type Filter struct {
	Search        string
	Date          *civil.Date
	HideCompleted bool
	Page          int
}

func NewFilter() Filter {
	return Filter{Page: 1}
}

func (f Filter) WithSearch(term string) Filter {
	f.Search = term
	return f
}

func (f Filter) WithDate(d civil.Date) Filter {
	f.Date = &d
	return f
}

func (f Filter) WithoutDate() Filter {
	f.Date = nil
	return f
}

func (f Filter) WithHideCompleted(hide bool) Filter {
	f.HideCompleted = hide
	return f
}

// WithPage sets the page. Values below 1 become 1; there is no upper clamp.
func (f Filter) WithPage(page int) Filter {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}

// Reset clears search, date, hide-completed and returns to page 1.
func (f Filter) Reset() Filter {
	return NewFilter()
}

// View is one derived page of the list.
type View struct {
	Tasks []Task
	Page  int
	// PageCount is computed from the unfiltered collection size, so it can
	// exceed the number of pages the filtered rows actually fill.
	PageCount int
	// Matched is the number of tasks that passed the filters before slicing.
	Matched int
}

// Derive runs search, date, hide-completed and then the page window, in that
// order. It never mutates tasks.
func Derive(tasks []Task, f Filter) View {
	page := f.Page
	if page < 1 {
		page = 1
	}

	term := strings.ToLower(f.Search)
	matched := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesSearch(t, term) {
			continue
		}
		if f.Date != nil && t.CreationDate != *f.Date {
			continue
		}
		if f.HideCompleted && t.Status == StatusDone {
			continue
		}
		matched = append(matched, t)
	}

	v := View{
		Page:      page,
		PageCount: PageCount(len(tasks)),
		Matched:   len(matched),
		Tasks:     []Task{},
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page-1 >= PageCount(len(matched)) {
		return v
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(matched))
	v.Tasks = matched[start:end]
	return v
}

// PageCount is ceil(total / PageSize).
func PageCount(total int) int {
	return (total + PageSize - 1) / PageSize
}

func matchesSearch(t Task, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered)
}
