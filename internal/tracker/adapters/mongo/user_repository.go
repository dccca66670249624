// Package mongo хранит документы пользователей в коллекции MongoDB
// в том же виде, что и исходный сервис: {username, count, log: [...]}.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

// CollectionName - коллекция по умолчанию.
const CollectionName = "users"

// Сообщения об ошибках.
const (
	ErrCreateUser    = "failed to insert user"
	ErrFindUser      = "failed to find user"
	ErrReplaceUser   = "failed to replace user"
	ErrListUsers     = "failed to list users"
	ErrDecodeUsers   = "failed to decode users"
	ErrCreateIndexes = "failed to create indexes"
)

type exerciseDocument struct {
	Description string `bson:"description"`
	Duration    int    `bson:"duration"`
	Date        string `bson:"date"`
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Count    int                `bson:"count"`
	Log      []exerciseDocument `bson:"log"`
}

func toDocument(u *entities.User) userDocument {
	doc := userDocument{Username: u.Username, Count: u.Count, Log: make([]exerciseDocument, 0, len(u.Log))}
	for _, e := range u.Log {
		doc.Log = append(doc.Log, exerciseDocument{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        entities.FormatDate(e.Date),
		})
	}
	return doc
}

func (d userDocument) toEntity() *entities.User {
	u := &entities.User{ID: d.ID.Hex(), Username: d.Username, Count: d.Count, Log: make([]entities.Exercise, 0, len(d.Log))}
	for _, e := range d.Log {
		date, _ := entities.ParseDate(e.Date)
		u.Log = append(u.Log, entities.Exercise{Description: e.Description, Duration: e.Duration, Date: date})
	}
	return u
}

// UserRepository реализует repositories.UserRepository поверх коллекции.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository создает репозиторий.
func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// EnsureIndexes создает индекс по username для фильтра Find.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrCreateIndexes, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateIndexes, err)
	}
	return nil
}

// Create вставляет документ с новым ObjectID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Create"))

	doc := toDocument(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		log.Error(ctx, ErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreateUser, err)
	}

	created := user.Clone()
	created.ID = doc.ID.Hex()
	log.Debug(ctx, "user created", zap.String("user_id", created.ID))
	return created, nil
}

// FindByID читает документ по _id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindByID"), zap.String("user_id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, entities.ErrInvalidUserID
	}

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug(ctx, "user not found")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindUser, err)
	}

	return doc.toEntity(), nil
}

// Save заменяет документ целиком через ReplaceOne.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Save"), zap.String("user_id", user.ID))

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, entities.ErrInvalidUserID
	}

	doc := toDocument(user)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		log.Error(ctx, ErrReplaceUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrReplaceUser, err)
	}
	if res.MatchedCount == 0 {
		log.Debug(ctx, "user vanished before replace")
		return nil, entities.ErrUserNotFound
	}

	return user.Clone(), nil
}

// Find возвращает пользователей по возрастанию _id, то есть в порядке создания.
func (r *UserRepository) Find(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Find"))

	query := bson.M{}
	if filter.Username != "" {
		query["username"] = filter.Username
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		log.Error(ctx, ErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListUsers, err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error(ctx, ErrDecodeUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrDecodeUsers, err)
	}

	users := make([]*entities.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toEntity())
	}
	return users, nil
}
