package service

import (
	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/validators"
)

type ClientServices struct {
	AuthService    AuthService
	RecordsService RecordsService
}

func NewClientServices(manager SessionManager, recordsAdapter adapter.RecordsAdapter, logger *logger.Logger) *ClientServices {
	validator := validators.NewRecordsValidator()

	return &ClientServices{
		AuthService:    NewClientAuthService(manager, validator, logger),
		RecordsService: NewClientRecordsService(manager, recordsAdapter, validator),
	}
}
