package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"rolemenu-service/internal/config"
	"rolemenu-service/internal/repository/model"
)

const (
	databaseName        = "rolemenu-service"
	guildCollectionName = "guilds"
)

type mongoRepository struct {
	database *mongo.Database

	guildCollection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from mongo", "error", err)
		}
	}()

	database := client.Database(databaseName)
	return &mongoRepository{
		database:        database,
		guildCollection: database.Collection(guildCollectionName),
	}, nil
}

func (m *mongoRepository) GetGroup(ctx context.Context, guildId string, index int) (*model.RoleGroup, error) {
	if index < 0 {
		return nil, ErrGroupNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Only the requested group is sent back.
	opts := options.FindOne().SetProjection(bson.M{"groups": bson.M{"$slice": bson.A{index, 1}}})

	var result model.Guild
	err := m.guildCollection.FindOne(ctx, bson.M{"_id": guildId}, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	return groupAt(result.Groups, 0)
}

func (m *mongoRepository) GetGroups(ctx context.Context, guildId string) ([]*model.RoleGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.Guild
	err := m.guildCollection.FindOne(ctx, bson.M{"_id": guildId}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return toPointers(result.Groups), nil
}

func (m *mongoRepository) SetGroups(ctx context.Context, guildId string, groups []*model.RoleGroup) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	guild := model.Guild{Id: guildId, Groups: toValues(groups)}
	_, err := m.guildCollection.ReplaceOne(ctx, bson.M{"_id": guildId}, guild, options.Replace().SetUpsert(true))
	return err
}
