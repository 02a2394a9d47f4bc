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

func (m *Mongo) CreateArticle(ctx context.Context, a *models.Article) (string, error) {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.Articles().InsertOne(ctx, a); err != nil {
		return "", mapErr(err)
	}
	return a.ID, nil
}

func (m *Mongo) ArticleByID(ctx context.Context, id string) (*models.Article, error) {
	var a models.Article
	if err := m.Articles().FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func articleFilterQuery(f ArticleFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != "" {
		q["category"] = f.Category
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
	return q
}

func (m *Mongo) ListArticles(ctx context.Context, f ArticleFilter) ([]models.Article, error) {
	cur, err := m.Articles().Find(ctx, articleFilterQuery(f),
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var articles []models.Article
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (m *Mongo) UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Slug != nil {
		set["slug"] = *upd.Slug
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.ImageURL != nil {
		set["imageUrl"] = *upd.ImageURL
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
	if upd.ReadTime != nil {
		set["readTime"] = *upd.ReadTime
	}
	res, err := m.Articles().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteArticle(ctx context.Context, id string) error {
	res, err := m.Articles().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) IncrementArticleViews(ctx context.Context, id string) error {
	res, err := m.Articles().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) AdjustArticleLikes(ctx context.Context, id string, delta int64) (int64, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// The counter never goes below zero.
		filter["likes"] = bson.M{"$gte": -delta}
	}
	var a models.Article
	err := m.Articles().FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{"likes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == mongo.ErrNoDocuments {
		// Either the article is missing or the counter is already at zero.
		cur, lookupErr := m.ArticleByID(ctx, id)
		if lookupErr != nil {
			return 0, lookupErr
		}
		return cur.Likes, nil
	}
	if err != nil {
		return 0, mapErr(err)
	}
	return a.Likes, nil
}

func (m *Mongo) AddArticleComment(ctx context.Context, id string, c models.Comment) error {
	res, err := m.Articles().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
