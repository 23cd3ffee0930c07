package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

/*
* Connect to Mongo and verify the connection with a ping
* The returned client is an explicitly passed handle, torn down by main
 */
func ConnectMongo(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Println("Error while connecting to mongo: ", err)
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Println("Error while pinging mongo: ", err)
		return nil, nil, err
	}
	return client, client.Database(cfg.DBName), nil
}
