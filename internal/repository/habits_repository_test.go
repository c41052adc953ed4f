package repository_test

import (
	"testing"
	"time"

	"github.com/lucasfgaldinos/habitus-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func findKey(t *testing.T, doc bson.D, key string) any {
	t.Helper()
	for _, elem := range doc {
		if elem.Key == key {
			return elem.Value
		}
	}
	t.Fatalf("key %q not found in %v", key, doc)
	return nil
}

func TestOwnedHabitFilter(t *testing.T) {
	id := primitive.NewObjectID()
	filter := repository.OwnedHabitFilter(id, "some_user")

	assert.Equal(t, bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: "some_user"},
	}, filter)
}

func TestToggleCompletedDatePipeline(t *testing.T) {
	day := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, time.March, 14, 15, 30, 0, 0, time.Local)

	pipeline := repository.ToggleCompletedDatePipeline(day, now)
	require.Len(t, pipeline, 1)

	set := findKey(t, pipeline[0], "$set").(bson.D)
	assert.Equal(t, now, findKey(t, set, "updatedAt"))

	cond := findKey(t, findKey(t, set, "completedDates").(bson.D), "$cond").(bson.D)

	in := findKey(t, findKey(t, cond, "if").(bson.D), "$in").(bson.A)
	assert.Equal(t, bson.A{day, "$completedDates"}, in)

	remove := findKey(t, findKey(t, cond, "then").(bson.D), "$setDifference").(bson.A)
	assert.Equal(t, bson.A{"$completedDates", bson.A{day}}, remove)

	add := findKey(t, findKey(t, cond, "else").(bson.D), "$concatArrays").(bson.A)
	assert.Equal(t, bson.A{"$completedDates", bson.A{day}}, add)
}

func TestMonthMetricsPipeline(t *testing.T) {
	id := primitive.NewObjectID()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, time.March, 31, 23, 59, 59, 999000000, time.Local)

	pipeline := repository.MonthMetricsPipeline(id, "some_user", from, to)
	require.Len(t, pipeline, 2)

	match := findKey(t, pipeline[0], "$match").(bson.D)
	assert.Equal(t, repository.OwnedHabitFilter(id, "some_user"), match)

	project := findKey(t, pipeline[1], "$project").(bson.D)
	filter := findKey(t, findKey(t, project, "completedDates").(bson.D), "$filter").(bson.D)
	assert.Equal(t, "$completedDates", findKey(t, filter, "input"))

	// Both bounds inclusive for habit month metrics
	and := findKey(t, findKey(t, filter, "cond").(bson.D), "$and").(bson.A)
	require.Len(t, and, 2)
	assert.Equal(t, bson.A{"$$completedDate", from}, findKey(t, and[0].(bson.D), "$gte"))
	assert.Equal(t, bson.A{"$$completedDate", to}, findKey(t, and[1].(bson.D), "$lte"))
}
