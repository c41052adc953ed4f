package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lucasfgaldinos/habitus-api/pkg/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FocusTimesRepository struct {
	coll *mongo.Collection
}

func NewFocusTimesRepo(db *mongo.Database) *FocusTimesRepository {
	return &FocusTimesRepository{
		coll: db.Collection(focusTimesCollection),
	}
}

func (fr *FocusTimesRepository) Create(ctx context.Context, focusTime *entity.FocusTime) (*entity.FocusTime, error) {
	now := time.Now()
	focusTime.CreatedAt = now
	focusTime.UpdatedAt = now
	result, err := fr.coll.InsertOne(ctx, focusTime)
	if err != nil {
		return nil, errors.New("creating focus time db error: " + err.Error())
	}
	focusTime.ID = result.InsertedID.(primitive.ObjectID)
	return focusTime, nil
}

func (fr *FocusTimesRepository) GetByDay(ctx context.Context, userID string, from, to time.Time) ([]*entity.FocusTime, error) {
	cursor, err := fr.coll.Find(
		ctx,
		DayListingFilter(userID, from, to),
		options.Find().SetSort(bson.D{{Key: "timeFrom", Value: 1}}),
	)
	if err != nil {
		return nil, errors.New("getting focus times by day error: " + err.Error())
	}
	focusTimes := make([]*entity.FocusTime, 0)
	if err := cursor.All(ctx, &focusTimes); err != nil {
		return nil, errors.New("decoding focus times error: " + err.Error())
	}
	return focusTimes, nil
}

func (fr *FocusTimesRepository) CountByDay(ctx context.Context, userID string, from, to time.Time) ([]entity.FocusTimeDayCount, error) {
	cursor, err := fr.coll.Aggregate(ctx, DayCountPipeline(userID, from, to))
	if err != nil {
		return nil, errors.New("aggregating focus time counts error: " + err.Error())
	}
	counts := make([]entity.FocusTimeDayCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, errors.New("decoding focus time counts error: " + err.Error())
	}
	return counts, nil
}

// DayListingFilter keeps focus times whose timeFrom lies in [from, to],
// both ends inclusive.
func DayListingFilter(userID string, from, to time.Time) bson.D {
	return bson.D{
		{Key: "userId", Value: userID},
		{Key: "timeFrom", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lte", Value: to},
		}},
	}
}

// DayCountPipeline buckets focus times by the calendar date of
// timeFrom over [from, to) and counts each bucket, sorted ascending by
// (year, month, day). The upper bound is exclusive here, unlike the
// day listing.
func DayCountPipeline(userID string, from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "userId", Value: userID},
			{Key: "timeFrom", Value: bson.D{
				{Key: "$gte", Value: from},
				{Key: "$lt", Value: to},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "year", Value: bson.D{{Key: "$year", Value: "$timeFrom"}}},
			{Key: "month", Value: bson.D{{Key: "$month", Value: "$timeFrom"}}},
			{Key: "day", Value: bson.D{{Key: "$dayOfMonth", Value: "$timeFrom"}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "year", Value: "$year"},
				{Key: "month", Value: "$month"},
				{Key: "day", Value: "$day"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
			{Key: "_id.day", Value: 1},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "year", Value: "$_id.year"},
			{Key: "month", Value: "$_id.month"},
			{Key: "day", Value: "$_id.day"},
			{Key: "count", Value: 1},
		}}},
	}
}
