package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/repository"
)

const (
	usersCollection         = "users"
	babiesCollection        = "babies"
	feedingLogsCollection   = "feeding_logs"
	growthRecordsCollection = "growth_records"
	milestonesCollection    = "milestones"
	countersCollection      = "counters"
)

var _ repository.Storage = (*MongoDBRepository)(nil)

// MongoDBRepository implements repository.Storage on MongoDB. Multi-document
// flows run inside transactions, so the server must be a replica set.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoDBRepository connects, pings and ensures the indexes the store relies on.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}

	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", dbName))
	return r, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	parentKeys := map[string]string{
		babiesCollection:        "user_id",
		feedingLogsCollection:   "baby_id",
		growthRecordsCollection: "baby_id",
		milestonesCollection:    "baby_id",
	}
	for coll, key := range parentKeys {
		if _, err := r.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}); err != nil {
			return fmt.Errorf("create %s index: %w", coll, err)
		}
	}
	return nil
}

// nextID increments the per-collection counter and returns the new value.
func (r *MongoDBRepository) nextID(ctx context.Context, coll string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": coll}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", coll, err)
	}
	return counter.Seq, nil
}

func (r *MongoDBRepository) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start mongodb session: %w", err)
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id int64) (*T, error) {
	var out T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", coll.Name(), id, err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", coll.Name(), err)
	}

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id int64) (bool, error) {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", coll.Name(), id, err)
	}
	return res.DeletedCount > 0, nil
}

// GetUser implements repository.UserStore.
func (r *MongoDBRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return findByID[models.User](ctx, r.db.Collection(usersCollection), id)
}

// GetUserByUsername implements repository.UserStore.
func (r *MongoDBRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &user, nil
}

// CreateUser implements repository.UserStore. The id is only consumed when
// the insert succeeds.
func (r *MongoDBRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		existing, err := r.GetUserByUsername(sc, user.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, repository.ErrUsernameTaken
		}

		id, err := r.nextID(sc, usersCollection)
		if err != nil {
			return nil, err
		}
		created := user
		created.ID = id

		if _, err := r.db.Collection(usersCollection).InsertOne(sc, created); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, repository.ErrUsernameTaken
			}
			return nil, fmt.Errorf("failed to insert user: %w", err)
		}
		return created, nil
	})
	if err != nil {
		return nil, err
	}

	created := result.(models.User)
	return &created, nil
}

// GetBaby implements repository.BabyStore.
func (r *MongoDBRepository) GetBaby(ctx context.Context, id int64) (*models.Baby, error) {
	baby, err := findByID[models.Baby](ctx, r.db.Collection(babiesCollection), id)
	if err != nil || baby == nil {
		return nil, err
	}
	cloned := baby.Clone()
	return &cloned, nil
}

// ListBabies implements repository.BabyStore.
func (r *MongoDBRepository) ListBabies(ctx context.Context) ([]models.Baby, error) {
	return r.listBabies(ctx, bson.M{})
}

// ListBabiesByUser implements repository.BabyStore.
func (r *MongoDBRepository) ListBabiesByUser(ctx context.Context, userID int64) ([]models.Baby, error) {
	return r.listBabies(ctx, bson.M{"user_id": userID})
}

func (r *MongoDBRepository) listBabies(ctx context.Context, filter bson.M) ([]models.Baby, error) {
	babies, err := findMany[models.Baby](ctx, r.db.Collection(babiesCollection), filter)
	if err != nil {
		return nil, err
	}
	for i := range babies {
		babies[i] = babies[i].Clone()
	}
	return babies, nil
}

// CreateBaby implements repository.BabyStore. The baby and its default
// milestones are written in one transaction.
func (r *MongoDBRepository) CreateBaby(ctx context.Context, in models.InsertBaby) (*models.Baby, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		user, err := r.GetUser(sc, in.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, repository.ErrParentNotFound
		}

		id, err := r.nextID(sc, babiesCollection)
		if err != nil {
			return nil, err
		}
		baby := models.NewBaby(id, in)
		if _, err := r.db.Collection(babiesCollection).InsertOne(sc, baby); err != nil {
			return nil, fmt.Errorf("failed to insert baby: %w", err)
		}

		for _, tpl := range models.DefaultMilestones(baby.ID) {
			if _, err := r.insertMilestone(sc, tpl); err != nil {
				return nil, err
			}
		}
		return baby, nil
	})
	if err != nil {
		return nil, err
	}

	baby := result.(models.Baby)
	r.logger.Debug("baby created", zap.Int64("baby_id", baby.ID), zap.Int64("user_id", baby.UserID))
	return &baby, nil
}

// UpdateBaby implements repository.BabyStore.
func (r *MongoDBRepository) UpdateBaby(ctx context.Context, id int64, patch models.BabyPatch) (*models.Baby, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.updateBaby(sc, id, patch)
	})
	if err != nil {
		return nil, err
	}
	baby, _ := result.(*models.Baby)
	return baby, nil
}

func (r *MongoDBRepository) updateBaby(ctx context.Context, id int64, patch models.BabyPatch) (*models.Baby, error) {
	baby, err := r.GetBaby(ctx, id)
	if err != nil || baby == nil {
		return nil, err
	}

	patch.Apply(baby)
	if _, err := r.db.Collection(babiesCollection).ReplaceOne(ctx, bson.M{"_id": id}, baby); err != nil {
		return nil, fmt.Errorf("failed to update baby %d: %w", id, err)
	}
	return baby, nil
}

// GetFeedingLog implements repository.FeedingLogStore.
func (r *MongoDBRepository) GetFeedingLog(ctx context.Context, id int64) (*models.FeedingLog, error) {
	return findByID[models.FeedingLog](ctx, r.db.Collection(feedingLogsCollection), id)
}

// ListFeedingLogsByBaby implements repository.FeedingLogStore.
func (r *MongoDBRepository) ListFeedingLogsByBaby(ctx context.Context, babyID int64) ([]models.FeedingLog, error) {
	return findMany[models.FeedingLog](ctx, r.db.Collection(feedingLogsCollection), bson.M{"baby_id": babyID})
}

// CreateFeedingLog implements repository.FeedingLogStore.
func (r *MongoDBRepository) CreateFeedingLog(ctx context.Context, in models.InsertFeedingLog) (*models.FeedingLog, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.requireBaby(sc, in.BabyID); err != nil {
			return nil, err
		}

		id, err := r.nextID(sc, feedingLogsCollection)
		if err != nil {
			return nil, err
		}
		log := models.NewFeedingLog(id, in)
		if _, err := r.db.Collection(feedingLogsCollection).InsertOne(sc, log); err != nil {
			return nil, fmt.Errorf("failed to insert feeding log: %w", err)
		}
		return log, nil
	})
	if err != nil {
		return nil, err
	}

	log := result.(models.FeedingLog)
	return &log, nil
}

// DeleteFeedingLog implements repository.FeedingLogStore.
func (r *MongoDBRepository) DeleteFeedingLog(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db.Collection(feedingLogsCollection), id)
}

// GetGrowthRecord implements repository.GrowthRecordStore.
func (r *MongoDBRepository) GetGrowthRecord(ctx context.Context, id int64) (*models.GrowthRecord, error) {
	return findByID[models.GrowthRecord](ctx, r.db.Collection(growthRecordsCollection), id)
}

// ListGrowthRecordsByBaby implements repository.GrowthRecordStore.
func (r *MongoDBRepository) ListGrowthRecordsByBaby(ctx context.Context, babyID int64) ([]models.GrowthRecord, error) {
	return findMany[models.GrowthRecord](ctx, r.db.Collection(growthRecordsCollection), bson.M{"baby_id": babyID})
}

// CreateGrowthRecord implements repository.GrowthRecordStore. The record and
// the baby's measurements are written in one transaction.
func (r *MongoDBRepository) CreateGrowthRecord(ctx context.Context, in models.InsertGrowthRecord) (*models.GrowthRecord, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.requireBaby(sc, in.BabyID); err != nil {
			return nil, err
		}

		id, err := r.nextID(sc, growthRecordsCollection)
		if err != nil {
			return nil, err
		}
		record := models.NewGrowthRecord(id, in)
		if _, err := r.db.Collection(growthRecordsCollection).InsertOne(sc, record); err != nil {
			return nil, fmt.Errorf("failed to insert growth record: %w", err)
		}

		if _, err := r.updateBaby(sc, record.BabyID, record.MeasurementPatch()); err != nil {
			return nil, err
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	record := result.(models.GrowthRecord)
	return &record, nil
}

// DeleteGrowthRecord implements repository.GrowthRecordStore.
func (r *MongoDBRepository) DeleteGrowthRecord(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db.Collection(growthRecordsCollection), id)
}

// GetMilestone implements repository.MilestoneStore.
func (r *MongoDBRepository) GetMilestone(ctx context.Context, id int64) (*models.Milestone, error) {
	return findByID[models.Milestone](ctx, r.db.Collection(milestonesCollection), id)
}

// ListMilestonesByBaby implements repository.MilestoneStore.
func (r *MongoDBRepository) ListMilestonesByBaby(ctx context.Context, babyID int64) ([]models.Milestone, error) {
	return findMany[models.Milestone](ctx, r.db.Collection(milestonesCollection), bson.M{"baby_id": babyID})
}

// CreateMilestone implements repository.MilestoneStore.
func (r *MongoDBRepository) CreateMilestone(ctx context.Context, in models.InsertMilestone) (*models.Milestone, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.requireBaby(sc, in.BabyID); err != nil {
			return nil, err
		}
		return r.insertMilestone(sc, in)
	})
	if err != nil {
		return nil, err
	}

	milestone := result.(models.Milestone)
	return &milestone, nil
}

// UpdateMilestone implements repository.MilestoneStore.
func (r *MongoDBRepository) UpdateMilestone(ctx context.Context, id int64, patch models.MilestonePatch) (*models.Milestone, error) {
	result, err := r.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		milestone, err := r.GetMilestone(sc, id)
		if err != nil || milestone == nil {
			return milestone, err
		}

		patch.Apply(milestone)
		if _, err := r.db.Collection(milestonesCollection).ReplaceOne(sc, bson.M{"_id": id}, milestone); err != nil {
			return nil, fmt.Errorf("failed to update milestone %d: %w", id, err)
		}
		return milestone, nil
	})
	if err != nil {
		return nil, err
	}
	milestone, _ := result.(*models.Milestone)
	return milestone, nil
}

func (r *MongoDBRepository) insertMilestone(ctx context.Context, in models.InsertMilestone) (models.Milestone, error) {
	id, err := r.nextID(ctx, milestonesCollection)
	if err != nil {
		return models.Milestone{}, err
	}
	milestone := models.NewMilestone(id, in)
	if _, err := r.db.Collection(milestonesCollection).InsertOne(ctx, milestone); err != nil {
		return models.Milestone{}, fmt.Errorf("failed to insert milestone: %w", err)
	}
	return milestone, nil
}

func (r *MongoDBRepository) requireBaby(ctx context.Context, babyID int64) error {
	baby, err := r.GetBaby(ctx, babyID)
	if err != nil {
		return err
	}
	if baby == nil {
		return repository.ErrParentNotFound
	}
	return nil
}
