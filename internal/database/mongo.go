package database

import (
	"context"
	"fmt"
	"net"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// defaultMongoDatabase is what the server selects when the URI names no database
const defaultMongoDatabase = "test"

// MongoConnector connects with the official MongoDB driver
type MongoConnector struct {
	opts ConnectOptions
}

// NewMongoConnector creates a MongoDB connector
func NewMongoConnector(opts ConnectOptions) *MongoConnector {
	return &MongoConnector{opts: opts}
}

// Connect implements Connector: connect, then ping the primary
func (c *MongoConnector) Connect(ctx context.Context, uri string) (Connection, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(c.opts.ServerSelectionTimeout).
		SetSocketTimeout(c.opts.SocketTimeout).
		SetMaxPoolSize(uint64(c.opts.MaxPoolSize))

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// the driver keeps monitoring goroutines alive until Disconnect
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	name := cs.Database
	if name == "" {
		name = defaultMongoDatabase
	}

	return &mongoConnection{
		client: client,
		host:   firstHost(cs.Hosts),
		name:   name,
	}, nil
}

type mongoConnection struct {
	client *mongo.Client
	host   string
	name   string
}

func (m *mongoConnection) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *mongoConnection) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *mongoConnection) Host() string { return m.host }

func (m *mongoConnection) Name() string { return m.name }

// firstHost strips the port from the first seed host
func firstHost(hosts []string) string {
	if len(hosts) == 0 {
		return ""
	}
	host, _, err := net.SplitHostPort(hosts[0])
	if err != nil {
		return hosts[0]
	}
	return host
}
