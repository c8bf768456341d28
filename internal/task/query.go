package task

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ZLostTK/IntelliTasker/internal/timeutil"
)

const (
	// DefaultLimit is the page size when the caller sends none.
	DefaultLimit = 100
	// MaxLimit caps a single page.
	MaxLimit = 1000
)

// ListOptions carries the optional filter/sort/search parameters of the list
// endpoint.
type ListOptions struct {
	Completed *bool
	FilterBy  string
	SortBy    string
	Search    string
	Skip      int64
	Limit     int64
}

// Build turns the options into a store filter and find options, evaluated
// against now (server UTC clock). progressSort reports that the caller must
// apply the in-memory progress sort after fetching: progress depends on the
// computed subtask completion ratio and cannot be expressed as a store-level
// sort key. Skip/limit still run in the store first, so progress order is
// only meaningful within a single page.
func (o ListOptions) Build(now time.Time) (bson.M, *options.FindOptions, bool) {
	now = now.UTC()

	// Every constraint is one conjunct. A completed param and a filterBy
	// that also constrains completed must both apply, not overwrite each
	// other.
	var conds []bson.M

	if o.Completed != nil {
		conds = append(conds, bson.M{"completed": *o.Completed})
	}

	switch o.FilterBy {
	case FilterCompleted:
		conds = append(conds, bson.M{"completed": true})
	case FilterInProgress:
		conds = append(conds, bson.M{"completed": false})
	case FilterOverdue:
		conds = append(conds, bson.M{"endDateTime": bson.M{"$lt": now}})
	case FilterToday:
		dayStart, dayEnd := timeutil.DayBounds(now)
		// A task belongs to today when its interval intersects the current
		// UTC day: starts within it, ends within it, or spans it entirely.
		conds = append(conds, bson.M{"$or": []bson.M{
			{"startDateTime": bson.M{"$gte": dayStart, "$lte": dayEnd}},
			{"endDateTime": bson.M{"$gte": dayStart, "$lte": dayEnd}},
			{"$and": []bson.M{
				{"startDateTime": bson.M{"$lt": dayStart}},
				{"endDateTime": bson.M{"$gt": dayEnd}},
			}},
		}})
	}

	if search := strings.TrimSpace(o.Search); search != "" {
		// Substring match, case-insensitive. The pattern is quoted so user
		// input is never interpreted as a regex. Kept as its own conjunct:
		// merging into a filterBy OR-group would let a title match leak
		// through an otherwise-excluded task.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		conds = append(conds, bson.M{"$or": []bson.M{
			{"title": re},
			{"description": re},
		}})
	}

	filter := bson.M{}
	switch len(conds) {
	case 0:
	case 1:
		filter = conds[0]
	default:
		filter = bson.M{"$and": conds}
	}

	sortKey, sortDir := "created_at", -1
	progressSort := false
	switch o.SortBy {
	case SortRecent, "":
		// default: most recent first
	case SortOldest:
		sortDir = 1
	case SortDueDate:
		sortKey, sortDir = "endDateTime", 1
	case SortTitle:
		sortKey, sortDir = "title", 1
	case SortDuration:
		sortKey, sortDir = "estimatedHours", -1
	case SortProgress:
		progressSort = true
	}

	limit := o.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	skip := o.Skip
	if skip < 0 {
		skip = 0
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: sortDir}}).
		SetSkip(skip).
		SetLimit(limit)

	return filter, findOpts, progressSort
}

// SortByProgress stable-sorts responses by completed-subtask ratio,
// descending.
func SortByProgress(tasks []Response) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Progress() > tasks[j].Progress()
	})
}
