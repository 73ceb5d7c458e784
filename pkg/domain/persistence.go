package domain

import "context"

// Store is the persistence contract every backend must satisfy. List results
// come back ordered by the module's date column, most recent first, matching
// the portal's listing order. Create and Update run atomically: a failed
// write leaves the store unchanged.
type Store interface {
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, in TaskInput) (Task, error)
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	ListContacts(ctx context.Context) ([]Contact, error)
	CreateContact(ctx context.Context, in ContactInput) (Contact, error)
	UpdateContact(ctx context.Context, id string, in ContactInput) (Contact, error)

	ListMinutes(ctx context.Context) ([]Minute, error)
	CreateMinute(ctx context.Context, in MinuteInput) (Minute, error)
	UpdateMinute(ctx context.Context, id string, in MinuteInput) (Minute, error)

	ListSales(ctx context.Context) ([]Sale, error)
	CreateSale(ctx context.Context, in SaleInput) (Sale, error)
	UpdateSale(ctx context.Context, id string, in SaleInput) (Sale, error)

	FindUserByEmail(ctx context.Context, email string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)

	Close() error
}
