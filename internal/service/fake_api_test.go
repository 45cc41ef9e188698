package service

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
)

// fakeAPI is an in-memory stand-in for api.Client. Each *Err field makes the
// matching call fail.
type fakeAPI struct {
	mu sync.Mutex

	drinks    []domain.Drink
	locations []domain.StorageLocation
	users     []domain.User
	stockPage *api.StockPage
	logPage   *api.LogPage
	session   *api.Session

	drinksErr    error
	locationsErr error
	usersErr     error
	stocksErr    error
	logsErr      error
	exportErr    error
	writeErr     error

	calls         []string
	createdDrinks []api.CreateDrinkRequest
	createdLocs   []api.CreateLocationRequest
	movements     []api.StockMovement
	thresholds    map[int64]int
	stockQueries  [][2]int
	logQueries    []url.Values
	exportQueries []url.Values
	roleChanges   map[int64]domain.Role
	deletedUsers  []int64
	deletedDrinks []int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		thresholds:  make(map[int64]int),
		roleChanges: make(map[int64]domain.Role),
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Login(_ context.Context, email, _ string) (*api.Session, error) {
	f.record("login")
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &api.Session{User: domain.User{ID: 1, Email: email, Role: domain.RoleStaff}, Token: "tok"}, nil
}

func (f *fakeAPI) Register(_ context.Context, r api.RegisterRequest) (*api.Session, error) {
	f.record("register")
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &api.Session{User: domain.User{ID: 2, Email: r.Email, Name: r.Name, Role: r.Role}, Token: "tok"}, nil
}

func (f *fakeAPI) ListDrinks(context.Context) ([]domain.Drink, error) {
	f.record("drinks")
	return f.drinks, f.drinksErr
}

func (f *fakeAPI) CreateDrink(_ context.Context, r api.CreateDrinkRequest) error {
	f.record("create-drink")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.createdDrinks = append(f.createdDrinks, r)
	return nil
}

func (f *fakeAPI) DeleteDrink(_ context.Context, id int64) error {
	f.record("delete-drink")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deletedDrinks = append(f.deletedDrinks, id)
	return nil
}

func (f *fakeAPI) ListLocations(context.Context) ([]domain.StorageLocation, error) {
	f.record("locations")
	return f.locations, f.locationsErr
}

func (f *fakeAPI) CreateLocation(_ context.Context, r api.CreateLocationRequest) error {
	f.record("create-location")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.createdLocs = append(f.createdLocs, r)
	return nil
}

func (f *fakeAPI) ListStocks(_ context.Context, page, limit int) (*api.StockPage, error) {
	f.record("stocks")
	f.stockQueries = append(f.stockQueries, [2]int{page, limit})
	if f.stocksErr != nil {
		return nil, f.stocksErr
	}
	return f.stockPage, nil
}

func (f *fakeAPI) UpdateThreshold(_ context.Context, id int64, threshold int) error {
	f.record("threshold")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.thresholds[id] = threshold
	return nil
}

func (f *fakeAPI) RecordStock(_ context.Context, action domain.StockAction, m api.StockMovement) error {
	f.record("stock-" + string(action))
	if f.writeErr != nil {
		return f.writeErr
	}
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeAPI) ListStockLogs(_ context.Context, q url.Values) (*api.LogPage, error) {
	f.record("logs")
	f.logQueries = append(f.logQueries, q)
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	return f.logPage, nil
}

func (f *fakeAPI) ExportStockLogs(_ context.Context, format string, q url.Values) (*api.Export, error) {
	f.record("export-" + format)
	f.exportQueries = append(f.exportQueries, q)
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return &api.Export{Body: io.NopCloser(strings.NewReader("data")), ContentType: "text/csv"}, nil
}

func (f *fakeAPI) ListUsers(context.Context) ([]domain.User, error) {
	f.record("users")
	return f.users, f.usersErr
}

func (f *fakeAPI) ChangeUserRole(_ context.Context, id int64, role domain.Role) error {
	f.record("change-role")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.roleChanges[id] = role
	return nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.record("delete-user")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deletedUsers = append(f.deletedUsers, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
