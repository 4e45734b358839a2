package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// opTimeout bounds every single database call.
const opTimeout = 5 * time.Second

const (
	usersCollection = "users"

	emailIndex       = "users_email_key"
	rutIndex         = "users_rut_key"
	beneficiaryIndex = "destinatarios_rut_idx"
	transferIndex    = "transferencia_fecha_idx"
)

type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	info   store.Info
}

// Options tunes the client. Zero values keep the driver defaults.
type Options struct {
	MaxPoolSize uint64
}

// NewStore connects to uri, verifies the connection with a ping bounded by
// ctx and uses database dbName.
func NewStore(ctx context.Context, uri, dbName string, opts Options) (*Store, error) {
	clientOpts := options.Client().ApplyURI(uri)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		client: client,
		users:  client.Database(dbName).Collection(usersCollection),
		info: store.Info{
			Driver: "mongo",
			Host:   strings.Join(clientOpts.Hosts, ","),
			Name:   dbName,
		},
	}, nil
}

// ApplyMigrations creates the indexes. The unique ones enforce email and
// RUT uniqueness across concurrent registrations.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(emailIndex),
		},
		{
			Keys:    bson.D{{Key: "rut", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(rutIndex),
		},
		{
			Keys:    bson.D{{Key: "destinatarios.rut_destinatario", Value: 1}},
			Options: options.Index().SetName(beneficiaryIndex),
		},
		{
			Keys:    bson.D{{Key: "transferencia.fecha", Value: -1}},
			Options: options.Index().SetName(transferIndex),
		},
	})
	return err
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Info() store.Info { return s.info }

func (s *Store) Users() store.Users { return &usersRepo{coll: s.users} }

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// mapDuplicate turns a duplicate key error into the store error naming the
// index that fired. Other errors pass through.
func mapDuplicate(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, emailIndex):
		return store.ErrDuplicateEmail
	case strings.Contains(msg, rutIndex):
		return store.ErrDuplicateNationalID
	default:
		return store.ErrAlreadyExists
	}
}
