// Package mongo содержит общий код подключения к MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to MongoDB"
	LogConnected  = "successfully connected to MongoDB"
	LogClosing    = "closing MongoDB client"
)

// Константы для сообщений об ошибках.
const (
	ErrConnect    = "failed to connect to mongodb"
	ErrPing       = "failed to ping mongodb"
	ErrDisconnect = "failed to disconnect from mongodb"
)

// ErrEmptyURI возвращается, если строка подключения не задана.
var ErrEmptyURI = errors.New("mongodb uri is empty")

// Options описывает параметры подключения.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Client владеет клиентом MongoDB и выбранной базой.
type Client struct {
	client   *mongo.Client
	database string
}

// Connect подключается к MongoDB и проверяет соединение.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	log := logger.Log(ctx).With(zap.String("database", opts.Database))

	if opts.URI == "" {
		return nil, fmt.Errorf("%s: %w", ErrConnect, ErrEmptyURI)
	}

	log.Info(ctx, LogConnecting)

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout).
			SetServerSelectionTimeout(opts.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: client, database: opts.Database}, nil
}

// Collection возвращает коллекцию в выбранной базе.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

// Ping проверяет доступность сервера.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%s: %w", ErrPing, err)
	}
	return nil
}

// Close отключает клиента.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDisconnect, err)
	}
	return nil
}
