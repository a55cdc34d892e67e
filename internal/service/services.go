package service

import (
	"github.com/taletique/tailor-portal/internal/repository"
)

type Services struct {
	User        *UserService
	Order       *OrderService
	Measurement *MeasurementService
	Admin       *AdminService
	Contact     *ContactService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		User:        NewUserService(repos.User),
		Order:       NewOrderService(repos.Order, repos.User),
		Measurement: NewMeasurementService(repos.Measurement, repos.User),
		Admin:       NewAdminService(repos.User, repos.Order, repos.Contact),
		Contact:     NewContactService(repos.Contact),
	}
}
