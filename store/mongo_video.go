package store

import (
	"context"
	"time"

	"github.com/sada-news/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) CreateVideo(ctx context.Context, v *models.Video) (string, error) {
	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.Videos().InsertOne(ctx, v); err != nil {
		return "", mapErr(err)
	}
	return v.ID, nil
}

func (m *Mongo) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	if err := m.Videos().FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func videoFilterQuery(f VideoFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Platform != "" {
		q["platform"] = f.Platform
	}
	if f.CreatedBy != "" {
		q["createdBy"] = f.CreatedBy
	}
	if f.Featured != nil {
		q["isFeatured"] = *f.Featured
	}
	if f.Trending != nil {
		q["isTrending"] = *f.Trending
	}
	if f.Live != nil {
		q["isLive"] = *f.Live
	}
	if f.Short != nil {
		q["isShort"] = *f.Short
	}
	return q
}

func (m *Mongo) ListVideos(ctx context.Context, f VideoFilter) ([]models.Video, error) {
	cur, err := m.Videos().Find(ctx, videoFilterQuery(f),
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var videos []models.Video
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (m *Mongo) UpdateVideo(ctx context.Context, id string, upd VideoUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Platform != nil {
		set["platform"] = *upd.Platform
	}
	if upd.VideoURL != nil {
		set["videoUrl"] = *upd.VideoURL
	}
	if upd.YouTubeID != nil {
		set["youtubeId"] = *upd.YouTubeID
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.ThumbnailURL != nil {
		set["thumbnailUrl"] = *upd.ThumbnailURL
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.IsFeatured != nil {
		set["isFeatured"] = *upd.IsFeatured
	}
	if upd.IsTrending != nil {
		set["isTrending"] = *upd.IsTrending
	}
	if upd.IsLive != nil {
		set["isLive"] = *upd.IsLive
	}
	if upd.IsShort != nil {
		set["isShort"] = *upd.IsShort
	}
	res, err := m.Videos().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteVideo(ctx context.Context, id string) error {
	res, err := m.Videos().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) IncrementVideoViews(ctx context.Context, id string) error {
	res, err := m.Videos().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) AdjustVideoLikes(ctx context.Context, id string, delta int64) (int64, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["likes"] = bson.M{"$gte": -delta}
	}
	var v models.Video
	err := m.Videos().FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{"likes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err == mongo.ErrNoDocuments {
		cur, lookupErr := m.VideoByID(ctx, id)
		if lookupErr != nil {
			return 0, lookupErr
		}
		return cur.Likes, nil
	}
	if err != nil {
		return 0, mapErr(err)
	}
	return v.Likes, nil
}
