package backend

import (
	"context"
	"fmt"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/backend/collection"
	"vincit.fi/collector/backend/internal/database"
	"vincit.fi/collector/backend/remote"
	"vincit.fi/collector/backend/session"
	"vincit.fi/collector/common"
	"vincit.fi/collector/common/event"
	"vincit.fi/collector/common/logger"
)

type Stores struct {
	CookieStore   *database.CookieStore
	SnapshotStore *database.SnapshotStore
	StatusStore   *database.StatusStore
	db            *database.Database
}

func (s *Stores) Close() {
	if err := s.db.Close(); err != nil {
		logger.Warn.Printf("Could not close database: %s", err)
	}
}

type Services struct {
	Remote     *remote.Client
	Session    *session.Session
	Collection *collection.Service

	snapshots   *database.SnapshotStore
	unsubscribe func()
}

func (s *Services) Close() {
	s.unsubscribe()
}

// DeleteAccount deletes the account and the local snapshot of its
// categories.
func (s *Services) DeleteAccount(ctx context.Context) error {
	user := s.Session.Current()
	if err := s.Session.DeleteAccount(ctx); err != nil {
		return err
	}
	if user != nil {
		if err := s.snapshots.Clear(user.Id()); err != nil {
			logger.Warn.Printf("Could not clear snapshot of %s: %s", user.Label(), err)
		}
	}
	return nil
}

type Brokers struct {
	Broker *event.Broker
}

func InitializeEventBrokers(eventBusQueueSize int) *Brokers {
	logger.Debug.Printf("Initialize event brokers...")
	brokers := &Brokers{
		Broker: event.InitBus(eventBusQueueSize),
	}
	logger.Debug.Printf("Event brokers initialized")
	return brokers
}

// InitializeServices creates the API client and the shared state. The
// collection follows the session: it is bound to the logged in user and
// cleared when nobody is logged in.
func InitializeServices(params *common.Params, stores *Stores, brokers *Brokers, options ...remote.Option) (*Services, error) {
	logger.Debug.Printf("Initialize services...")
	if params.HttpTimeout() > 0 {
		options = append(options, remote.WithTimeout(params.HttpTimeout()))
	}
	client, err := remote.NewClient(params.ApiUrl(), options...)
	if err != nil {
		return nil, err
	}

	sessionService := session.NewSession(client, client, stores.CookieStore, brokers.Broker)
	collectionService := collection.NewService(client, brokers.Broker, stores.SnapshotStore)
	unsubscribe := sessionService.Subscribe(func(user *apitype.User) {
		if user == nil {
			collectionService.Reset()
		} else {
			collectionService.SetUser(user.Id())
		}
	})

	services := &Services{
		Remote:      client,
		Session:     sessionService,
		Collection:  collectionService,
		snapshots:   stores.SnapshotStore,
		unsubscribe: unsubscribe,
	}
	logger.Debug.Printf("Services initialized")
	return services, nil
}

// InitializeStores opens the local database in the given directory.
func InitializeStores(directory string, databaseFileName string) (*Stores, error) {
	logger.Debug.Printf("Initialize database...")
	db := database.NewDatabase()
	if err := db.InitializeForDirectory(directory, databaseFileName); err != nil {
		return nil, fmt.Errorf("open database in '%s': %w", directory, err)
	}
	return newStores(db)
}

// InitializeInMemoryStores is used when nothing may be written to disk.
func InitializeInMemoryStores() (*Stores, error) {
	return newStores(database.NewInMemoryDatabase())
}

func newStores(db *database.Database) (*Stores, error) {
	if _, err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Debug.Printf("Initialize backend stores...")
	statusStore := database.NewStatusStore(db)
	stores := &Stores{
		CookieStore:   database.NewCookieStore(db),
		SnapshotStore: database.NewSnapshotStore(db, statusStore),
		StatusStore:   statusStore,
		db:            db,
	}
	logger.Debug.Printf("Stores and databases initialized")
	return stores, nil
}

var _ api.SessionService = (*session.Session)(nil)
var _ api.CollectionService = (*collection.Service)(nil)
