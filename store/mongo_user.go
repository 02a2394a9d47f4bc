package store

import (
	"context"
	"time"

	"github.com/sada-news/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.Users().InsertOne(ctx, u); err != nil {
		return "", mapErr(err)
	}
	return u.ID, nil
}

func (m *Mongo) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := m.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (m *Mongo) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}
	if err := m.Users().FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (m *Mongo) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := m.Users().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *Mongo) UpdateUser(ctx context.Context, id string, upd UserUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if upd.FirstName != nil {
		set["firstName"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["lastName"] = *upd.LastName
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Permissions != nil {
		set["permissions"] = *upd.Permissions
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}
	if upd.IsApproved != nil {
		set["isApproved"] = *upd.IsApproved
	}
	res, err := m.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteUser(ctx context.Context, id string) error {
	res, err := m.Users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) CountUsers(ctx context.Context) (int64, error) {
	return m.Users().CountDocuments(ctx, bson.M{})
}

func (m *Mongo) CountActiveAdmins(ctx context.Context) (int64, error) {
	return m.Users().CountDocuments(ctx, bson.M{"role": models.RoleAdmin, "isActive": true})
}

func (m *Mongo) RecordLogin(ctx context.Context, id string, at time.Time) error {
	res, err := m.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"lastLogin": at, "loginAttempts": 0},
		"$unset": bson.M{"lockUntil": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) IncrementLoginAttempts(ctx context.Context, id string) (int, error) {
	var u models.User
	err := m.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"loginAttempts": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return 0, mapErr(err)
	}
	return u.LoginAttempts, nil
}

func (m *Mongo) LockUser(ctx context.Context, id string, until time.Time) error {
	res, err := m.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"lockUntil": until, "loginAttempts": 0},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
