package store

import "github.com/MKhiriev/go-ship-sync/internal/logger"

// Storages groups every repository backed by one database.
type Storages struct {
	AccountRepository      AccountRepository
	RepositoryRepository   RepositoryRepository
	OrganizationRepository OrganizationRepository
	MetadataRepository     MetadataRepository
	SyncRepository         SyncRepository
	ClientStateRepository  ClientStateRepository
	UsageRepository        UsageRepository
	QueryRepository        QueryRepository
}

// NewStorages constructs all repositories on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		AccountRepository:      NewAccountRepository(db, logger),
		RepositoryRepository:   NewRepositoryRepository(db, logger),
		OrganizationRepository: NewOrganizationRepository(db, logger),
		MetadataRepository:     NewMetadataRepository(db, logger),
		SyncRepository:         NewSyncRepository(db, logger),
		ClientStateRepository:  NewClientStateRepository(db, logger),
		UsageRepository:        NewUsageRepository(db, logger),
		QueryRepository:        NewQueryRepository(db, logger),
	}
}
