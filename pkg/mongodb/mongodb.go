// Package mongodb 提供 MongoDB 客户端初始化与连接管理
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/khamyang/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config MongoDB 配置
type Config struct {
	URI         string
	Database    string
	ConnTimeout int
}

// Client MongoDB 客户端包装
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	config Config
}

// New 创建 MongoDB 客户端实例
func New(cfg Config) (*Client, error) {
	timeout := time.Duration(cfg.ConnTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info(context.Background(), "MongoDB connected successfully", "uri", cfg.URI, "database", cfg.Database)

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		config: cfg,
	}, nil
}

// Database 获取数据库句柄
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Collection 获取集合句柄
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Close 断开连接
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
