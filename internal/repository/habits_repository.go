package repository

import (
	"context"
	"errors"
	"time"

	errorvalues "github.com/lucasfgaldinos/habitus-api/internal/error_values"
	"github.com/lucasfgaldinos/habitus-api/pkg/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HabitsRepository struct {
	coll *mongo.Collection
}

func NewHabitsRepo(db *mongo.Database) *HabitsRepository {
	return &HabitsRepository{
		coll: db.Collection(habitsCollection),
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (*entity.Habit, error) {
	now := time.Now()
	habit.CreatedAt = now
	habit.UpdatedAt = now
	if habit.CompletedDates == nil {
		habit.CompletedDates = []time.Time{}
	}
	result, err := hr.coll.InsertOne(ctx, habit)
	if err != nil {
		return nil, errors.New("creating habit db error: " + err.Error())
	}
	habit.ID = result.InsertedID.(primitive.ObjectID)
	return habit, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id primitive.ObjectID, userID string) (*entity.Habit, error) {
	var habit entity.Habit
	err := hr.coll.FindOne(ctx, OwnedHabitFilter(id, userID)).Decode(&habit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) FindByName(ctx context.Context, name string) (*entity.Habit, error) {
	var habit entity.Habit
	err := hr.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&habit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("searching habit by name error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Habit, error) {
	cursor, err := hr.coll.Find(ctx, bson.D{{Key: "userId", Value: userID}})
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	habits := make([]*entity.Habit, 0)
	if err := cursor.All(ctx, &habits); err != nil {
		return nil, errors.New("decoding habits error: " + err.Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id primitive.ObjectID, userID string) error {
	result, err := hr.coll.DeleteOne(ctx, OwnedHabitFilter(id, userID))
	if err != nil {
		return errors.New("deleting habit error: " + err.Error())
	}
	if result.DeletedCount == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) ToggleCompletedDate(ctx context.Context, id primitive.ObjectID, userID string, day time.Time) (*entity.Habit, error) {
	var habit entity.Habit
	err := hr.coll.FindOneAndUpdate(
		ctx,
		OwnedHabitFilter(id, userID),
		ToggleCompletedDatePipeline(day, time.Now()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&habit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("toggling completed date error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) MonthMetrics(ctx context.Context, id primitive.ObjectID, userID string, from, to time.Time) (*entity.HabitMetrics, error) {
	cursor, err := hr.coll.Aggregate(ctx, MonthMetricsPipeline(id, userID, from, to))
	if err != nil {
		return nil, errors.New("aggregating habit metrics error: " + err.Error())
	}
	var results []entity.HabitMetrics
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errors.New("decoding habit metrics error: " + err.Error())
	}
	if len(results) == 0 {
		return nil, errorvalues.ErrHabitNotFound
	}
	return &results[0], nil
}

// OwnedHabitFilter scopes a single-document lookup to its owner, so an
// absent or foreign habit is indistinguishable from the caller's side.
func OwnedHabitFilter(id primitive.ObjectID, userID string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: userID},
	}
}

// ToggleCompletedDatePipeline removes day from completedDates when
// present and appends it when absent, inside one atomic document
// update. day must already be normalized to start of day.
func ToggleCompletedDatePipeline(day, now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "completedDates", Value: bson.D{{Key: "$cond", Value: bson.D{
				{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{day, "$completedDates"}}}},
				{Key: "then", Value: bson.D{{Key: "$setDifference", Value: bson.A{"$completedDates", bson.A{day}}}}},
				{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{"$completedDates", bson.A{day}}}}},
			}}}},
			{Key: "updatedAt", Value: now},
		}}},
	}
}

// MonthMetricsPipeline projects the owned habit with completedDates
// narrowed to [from, to], both ends inclusive.
func MonthMetricsPipeline(id primitive.ObjectID, userID string, from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: OwnedHabitFilter(id, userID)}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "completedDates", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: "$completedDates"},
				{Key: "as", Value: "completedDate"},
				{Key: "cond", Value: bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$gte", Value: bson.A{"$$completedDate", from}}},
					bson.D{{Key: "$lte", Value: bson.A{"$$completedDate", to}}},
				}}}},
			}}}},
		}}},
	}
}
